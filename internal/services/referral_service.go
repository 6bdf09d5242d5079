package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"flatmates_backend/internal/config"
	"flatmates_backend/internal/logger"
	"flatmates_backend/internal/models"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/internal/utils"
	"flatmates_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	referralCodeLength   = 8
	referralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O, 1/I
	codeGenMaxAttempts   = 5
)

type ReferralService interface {
	// CreateReferral records the invitation and sends the referral
	// link to the invited address. Inviting yourself or the same
	// address twice is rejected.
	CreateReferral(db *gorm.DB, referrerID string, req *dto.CreateReferralRequest) (*dto.ReferralDTO, error)

	// CompleteReferral marks the referral matched by code as completed
	// and pays the referrer. Completing an already completed referral
	// is a no-op.
	CompleteReferral(db *gorm.DB, code, referredUserID string) error

	GetReferralStats(db *gorm.DB, referrerID string) (*dto.ReferralStatsResponse, error)
}

type ReferralServiceImpl struct {
	referralRepo repositories.ReferralRepository
	userRepo     repositories.UserRepository
	creditSvc    CreditService
	emailSender  utils.EmailSender
	cfg          *config.Config
}

func NewReferralService(
	referralRepo repositories.ReferralRepository,
	userRepo repositories.UserRepository,
	creditSvc CreditService,
	emailSender utils.EmailSender,
	cfg *config.Config,
) ReferralService {
	return &ReferralServiceImpl{
		referralRepo: referralRepo,
		userRepo:     userRepo,
		creditSvc:    creditSvc,
		emailSender:  emailSender,
		cfg:          cfg,
	}
}

func (s *ReferralServiceImpl) CreateReferral(db *gorm.DB, referrerID string, req *dto.CreateReferralRequest) (*dto.ReferralDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	referrer, err := s.userRepo.FindByID(db, referrerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}

	if strings.EqualFold(referrer.Email, email) {
		return nil, apperrors.ErrSelfReferral
	}

	code, err := s.generateCode(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	referral := &models.Referral{
		ReferrerID:    referrerID,
		ReferredEmail: email,
		Status:        models.ReferralStatusPending,
		ReferralCode:  code,
	}
	if err := s.referralRepo.Create(db, referral); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReferral) {
			return nil, apperrors.ErrDuplicateReferral
		}
		return nil, apperrors.DatabaseError(err)
	}

	// The invitation email is best effort; the referral row is the
	// source of truth and the link can be re-shared from stats.
	referrerName := referrer.Email
	if referrer.Profile != nil && referrer.Profile.FullName != "" {
		referrerName = referrer.Profile.FullName
	}
	link := s.ReferralLink(code)
	if err := s.emailSender.SendReferralInvitation(email, referrerName, link); err != nil {
		logger.WithError(err).Warn("failed to send referral invitation", "email", email)
	}

	out := s.toDTO(referral)
	return &out, nil
}

func (s *ReferralServiceImpl) CompleteReferral(db *gorm.DB, code, referredUserID string) error {
	referral, err := s.referralRepo.FindByCode(db, code)
	if err != nil {
		if errors.Is(err, repositories.ErrReferralNotFound) {
			return apperrors.ErrInvalidReferralCode
		}
		return apperrors.DatabaseError(err)
	}

	// A code cannot complete against its own issuer.
	if referral.ReferrerID == referredUserID {
		return apperrors.ErrSelfReferral
	}

	reward := s.cfg.Credits.ReferralReward

	return db.Transaction(func(tx *gorm.DB) error {
		completed, err := s.referralRepo.Complete(tx, code, referredUserID, reward)
		if err != nil {
			if errors.Is(err, repositories.ErrReferralCompleted) {
				// Retried registration; the reward was already paid.
				return nil
			}
			if errors.Is(err, repositories.ErrReferralNotFound) {
				return apperrors.ErrInvalidReferralCode
			}
			return apperrors.DatabaseError(err)
		}

		description := fmt.Sprintf("Referral reward for inviting %s", completed.ReferredEmail)
		_, err = s.creditSvc.AwardCredits(tx, completed.ReferrerID, reward, models.CreditTxReferralReward, description, &completed.ID)
		return err
	})
}

func (s *ReferralServiceImpl) GetReferralStats(db *gorm.DB, referrerID string) (*dto.ReferralStatsResponse, error) {
	referrals, err := s.referralRepo.FindByReferrer(db, referrerID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	stats := &dto.ReferralStatsResponse{
		Referrals: make([]dto.ReferralDTO, 0, len(referrals)),
	}
	for i := range referrals {
		r := &referrals[i]
		stats.TotalSent++
		if r.Status == models.ReferralStatusCompleted {
			stats.TotalComplete++
			stats.CreditsEarned += r.CreditsAwarded
		}
		stats.Referrals = append(stats.Referrals, s.toDTO(r))
	}
	return stats, nil
}

// ReferralLink builds the public signup URL carrying the code.
func (s *ReferralServiceImpl) ReferralLink(code string) string {
	base := strings.TrimRight(s.cfg.Server.BaseURL, "/")
	return fmt.Sprintf("%s/auth?ref=%s", base, code)
}

func (s *ReferralServiceImpl) toDTO(r *models.Referral) dto.ReferralDTO {
	return dto.ReferralDTO{
		ID:             r.ID,
		ReferredEmail:  r.ReferredEmail,
		Status:         r.Status,
		ReferralCode:   r.ReferralCode,
		ReferralLink:   s.ReferralLink(r.ReferralCode),
		CreditsAwarded: r.CreditsAwarded,
		CreatedAt:      r.CreatedAt,
	}
}

// generateCode draws a random code and retries on the unlikely
// collision with an existing one.
func (s *ReferralServiceImpl) generateCode(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		buf := make([]byte, referralCodeLength)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for i := range buf {
			buf[i] = referralCodeAlphabet[int(buf[i])%len(referralCodeAlphabet)]
		}
		code := string(buf)

		exists, err := s.referralRepo.CodeExists(db, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique referral code")
}
