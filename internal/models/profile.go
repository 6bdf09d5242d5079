package models

import (
	"gorm.io/datatypes"
)

// Profile mirrors a user's public identity on the marketplace.
type Profile struct {
	BaseModel
	UserID            string         `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName          string         `json:"full_name"`
	PhoneNumber       string         `json:"phone_number"`
	City              string         `json:"city"`
	Age               int            `json:"age"`
	Profession        string         `json:"profession"`
	Bio               string         `json:"bio"`
	ProfilePictureURL string         `json:"profile_picture_url"`
	Preferences       datatypes.JSON `json:"preferences,omitempty"`
	SocialLinks       datatypes.JSON `json:"social_links,omitempty"`
	PhoneVerified     bool           `gorm:"default:false" json:"phone_verified"`
	EmailVerified     bool           `gorm:"default:false" json:"email_verified"`
	IsVerified        bool           `gorm:"default:false" json:"is_verified"`
}
