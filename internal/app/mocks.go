package app

// MockEmailSender is used in tests and when SMTP is not configured.
type MockEmailSender struct{}

func (m *MockEmailSender) Send(to, subject, body string) error { return nil }
func (m *MockEmailSender) SendReferralInvitation(to, referrerName, link string) error {
	return nil
}
