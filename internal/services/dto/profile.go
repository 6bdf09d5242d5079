package dto

import (
	"time"

	"gorm.io/datatypes"

	"flatmates_backend/internal/models"
)

type UpdateProfileRequest struct {
	FullName          *string        `json:"full_name" binding:"omitempty,min=2,max=100"`
	PhoneNumber       *string        `json:"phone_number" binding:"omitempty,max=20"`
	City              *string        `json:"city" binding:"omitempty,max=100"`
	Age               *int           `json:"age" binding:"omitempty,min=16,max=120"`
	Profession        *string        `json:"profession" binding:"omitempty,max=100"`
	Bio               *string        `json:"bio" binding:"omitempty,max=2000"`
	ProfilePictureURL *string        `json:"profile_picture_url" binding:"omitempty,url"`
	Preferences       datatypes.JSON `json:"preferences,omitempty"`
	SocialLinks       datatypes.JSON `json:"social_links,omitempty"`
}

type ProfileDTO struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	FullName          string         `json:"full_name"`
	PhoneNumber       string         `json:"phone_number,omitempty"`
	City              string         `json:"city"`
	Age               int            `json:"age,omitempty"`
	Profession        string         `json:"profession,omitempty"`
	Bio               string         `json:"bio,omitempty"`
	ProfilePictureURL string         `json:"profile_picture_url,omitempty"`
	Preferences       datatypes.JSON `json:"preferences,omitempty"`
	SocialLinks       datatypes.JSON `json:"social_links,omitempty"`
	PhoneVerified     bool           `json:"phone_verified"`
	EmailVerified     bool           `json:"email_verified"`
	IsVerified        bool           `json:"is_verified"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func NewProfileDTO(p *models.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                p.ID,
		UserID:            p.UserID,
		FullName:          p.FullName,
		PhoneNumber:       p.PhoneNumber,
		City:              p.City,
		Age:               p.Age,
		Profession:        p.Profession,
		Bio:               p.Bio,
		ProfilePictureURL: p.ProfilePictureURL,
		Preferences:       p.Preferences,
		SocialLinks:       p.SocialLinks,
		PhoneVerified:     p.PhoneVerified,
		EmailVerified:     p.EmailVerified,
		IsVerified:        p.IsVerified,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
