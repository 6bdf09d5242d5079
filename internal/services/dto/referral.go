package dto

import (
	"time"

	"flatmates_backend/internal/models"
)

type CreateReferralRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ReferralDTO struct {
	ID             string                `json:"id"`
	ReferredEmail  string                `json:"referred_email"`
	Status         models.ReferralStatus `json:"status"`
	ReferralCode   string                `json:"referral_code"`
	ReferralLink   string                `json:"referral_link"`
	CreditsAwarded int                   `json:"credits_awarded"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ReferralStatsResponse summarises a user's referral activity.
type ReferralStatsResponse struct {
	TotalSent     int           `json:"total_sent"`
	TotalComplete int           `json:"total_completed"`
	CreditsEarned int           `json:"credits_earned"`
	Referrals     []ReferralDTO `json:"referrals"`
}
