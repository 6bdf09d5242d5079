package repositories

import (
	"errors"

	"flatmates_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyFavorited = errors.New("listing already favorited")
)

type FavoriteRepository interface {
	Add(db *gorm.DB, userID, listingID string) error
	Remove(db *gorm.DB, userID, listingID string) error
	Exists(db *gorm.DB, userID, listingID string) (bool, error)
	FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.UserFavorite, int64, error)
}

type FavoriteRepositoryImpl struct{}

func NewFavoriteRepository() FavoriteRepository {
	return &FavoriteRepositoryImpl{}
}

func (r *FavoriteRepositoryImpl) Add(db *gorm.DB, userID, listingID string) error {
	favorite := &models.UserFavorite{
		UserID:    userID,
		ListingID: listingID,
	}
	if err := db.Create(favorite).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyFavorited
		}
		return err
	}
	return nil
}

func (r *FavoriteRepositoryImpl) Remove(db *gorm.DB, userID, listingID string) error {
	result := db.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&models.UserFavorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepositoryImpl) Exists(db *gorm.DB, userID, listingID string) (bool, error) {
	var count int64
	err := db.Model(&models.UserFavorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *FavoriteRepositoryImpl) FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.UserFavorite, int64, error) {
	var favorites []models.UserFavorite
	var total int64

	query := db.Model(&models.UserFavorite{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Listing").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&favorites).Error
	if err != nil {
		return nil, 0, err
	}
	return favorites, total, nil
}
