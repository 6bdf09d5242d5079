package utils

import (
	"fmt"

	"flatmates_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers transactional mail over SMTP.
type EmailSender interface {
	Send(to, subject, body string) error
	SendReferralInvitation(to, referrerName, link string) error
}

type smtpEmailSender struct {
	cfg *config.Config
}

func NewEmailSender(cfg *config.Config) EmailSender {
	return &smtpEmailSender{cfg: cfg}
}

func (e *smtpEmailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(e.cfg.Email.FromEmail, e.cfg.Email.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		e.cfg.Email.SMTPHost,
		e.cfg.Email.SMTPPort,
		e.cfg.Email.SMTPUsername,
		e.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

func (e *smtpEmailSender) SendReferralInvitation(to, referrerName, link string) error {
	subject := "Join FlatMates - Find Your Perfect Home!"
	body := fmt.Sprintf(
		`<p>Hi there!</p>
<p>%s invited you to FlatMates, a marketplace for finding flats and flatmates.</p>
<p>Sign up with this link and get %d free credits to unlock property contacts:</p>
<p><a href="%s">%s</a></p>
<p>Happy house hunting!</p>`,
		referrerName, e.cfg.Credits.StartingBalance, link, link,
	)
	return e.Send(to, subject, body)
}
