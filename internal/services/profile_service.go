package services

import (
	"errors"

	"flatmates_backend/internal/models"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileDTO, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileDTO, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &ProfileServiceImpl{profileRepo: profileRepo}
}

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.ProfileDTO, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	out := dto.NewProfileDTO(profile)
	return &out, nil
}

func (s *ProfileServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileDTO, error) {
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			// Profiles are created at signup, but tolerate the gap.
			profile = &models.Profile{UserID: userID}
			if err := s.profileRepo.Create(db, profile); err != nil {
				return nil, apperrors.DatabaseError(err)
			}
		} else {
			return nil, apperrors.DatabaseError(err)
		}
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Profession != nil {
		profile.Profession = *req.Profession
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.ProfilePictureURL != nil {
		profile.ProfilePictureURL = *req.ProfilePictureURL
	}
	if req.Preferences != nil {
		profile.Preferences = req.Preferences
	}
	if req.SocialLinks != nil {
		profile.SocialLinks = req.SocialLinks
	}

	if err := s.profileRepo.Update(db, profile); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := dto.NewProfileDTO(profile)
	return &out, nil
}
