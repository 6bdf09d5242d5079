package repositories

import (
	"errors"
	"strings"

	"flatmates_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrReferralNotFound  = errors.New("referral not found")
	ErrDuplicateReferral = errors.New("referral for this email already exists")
	ErrReferralCodeTaken = errors.New("referral code already taken")
	ErrReferralCompleted = errors.New("referral already completed")
)

type ReferralRepository interface {
	Create(db *gorm.DB, referral *models.Referral) error
	FindByCode(db *gorm.DB, code string) (*models.Referral, error)
	FindByReferrer(db *gorm.DB, referrerID string) ([]models.Referral, error)
	ExistsForReferrerEmail(db *gorm.DB, referrerID, email string) (bool, error)
	CodeExists(db *gorm.DB, code string) (bool, error)

	// Complete marks the referral completed inside tx, binding the
	// referred user and the awarded amount. The row is locked FOR
	// UPDATE first; an already-completed referral returns
	// ErrReferralCompleted so the caller can make retries a no-op.
	Complete(db *gorm.DB, code, referredUserID string, creditsAwarded int) (*models.Referral, error)
}

type ReferralRepositoryImpl struct{}

func NewReferralRepository() ReferralRepository {
	return &ReferralRepositoryImpl{}
}

func (r *ReferralRepositoryImpl) Create(db *gorm.DB, referral *models.Referral) error {
	referral.ReferredEmail = strings.ToLower(strings.TrimSpace(referral.ReferredEmail))
	if err := db.Create(referral).Error; err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "referral_code") {
				return ErrReferralCodeTaken
			}
			return ErrDuplicateReferral
		}
		return err
	}
	return nil
}

func (r *ReferralRepositoryImpl) FindByCode(db *gorm.DB, code string) (*models.Referral, error) {
	var referral models.Referral
	err := db.Where("referral_code = ?", code).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

func (r *ReferralRepositoryImpl) FindByReferrer(db *gorm.DB, referrerID string) ([]models.Referral, error) {
	var referrals []models.Referral
	err := db.Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&referrals).Error
	return referrals, err
}

func (r *ReferralRepositoryImpl) ExistsForReferrerEmail(db *gorm.DB, referrerID, email string) (bool, error) {
	var count int64
	err := db.Model(&models.Referral{}).
		Where("referrer_id = ? AND referred_email = ?", referrerID, strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *ReferralRepositoryImpl) CodeExists(db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.Model(&models.Referral{}).
		Where("referral_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *ReferralRepositoryImpl) Complete(db *gorm.DB, code, referredUserID string, creditsAwarded int) (*models.Referral, error) {
	var referral models.Referral

	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("referral_code = ?", code).
		First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}

	if referral.Status == models.ReferralStatusCompleted {
		return &referral, ErrReferralCompleted
	}

	referral.Status = models.ReferralStatusCompleted
	referral.ReferredUserID = &referredUserID
	referral.CreditsAwarded = creditsAwarded

	if err := db.Model(&referral).Updates(map[string]interface{}{
		"status":           referral.Status,
		"referred_user_id": referral.ReferredUserID,
		"credits_awarded":  referral.CreditsAwarded,
	}).Error; err != nil {
		return nil, err
	}

	return &referral, nil
}
