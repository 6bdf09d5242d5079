package repositories

import (
	"errors"
	"time"

	"flatmates_backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingSearchParams carries the optional filters for Search. Zero values
// mean "no filter" for that field.
type ListingSearchParams struct {
	City             string
	Area             string
	MinRent          float64
	MaxRent          float64
	PropertyTypes    []models.PropertyType
	MinBedrooms      int
	Furnished        *bool
	ParkingAvailable *bool
	PreferredGender  models.GenderPreference
	Amenities        []string
	Query            string
	Limit            int
	Offset           int
}

type ListingRepository interface {
	Create(db *gorm.DB, listing *models.FlatListing) error
	FindByID(db *gorm.DB, id string) (*models.FlatListing, error)
	FindActive(db *gorm.DB, limit, offset int) ([]models.FlatListing, int64, error)
	FindFeatured(db *gorm.DB, limit int) ([]models.FlatListing, error)
	FindByOwner(db *gorm.DB, ownerID string, limit, offset int) ([]models.FlatListing, int64, error)
	Search(db *gorm.DB, params ListingSearchParams) ([]models.FlatListing, int64, error)
	Update(db *gorm.DB, listing *models.FlatListing) error
	UpdateStatus(db *gorm.DB, listingID string, status models.ListingStatus) error
	IncrementViewCount(db *gorm.DB, listingID string) error
	Delete(db *gorm.DB, listingID string) error
}

type ListingRepositoryImpl struct{}

func NewListingRepository() ListingRepository {
	return &ListingRepositoryImpl{}
}

func (r *ListingRepositoryImpl) Create(db *gorm.DB, listing *models.FlatListing) error {
	return db.Create(listing).Error
}

func (r *ListingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.FlatListing, error) {
	var listing models.FlatListing
	err := db.First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepositoryImpl) FindActive(db *gorm.DB, limit, offset int) ([]models.FlatListing, int64, error) {
	var listings []models.FlatListing
	var total int64

	query := db.Model(&models.FlatListing{}).Where("status = ?", models.ListingStatusActive)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("is_featured DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *ListingRepositoryImpl) FindFeatured(db *gorm.DB, limit int) ([]models.FlatListing, error) {
	var listings []models.FlatListing
	err := db.
		Where("status = ? AND is_featured = ?", models.ListingStatusActive, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *ListingRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string, limit, offset int) ([]models.FlatListing, int64, error) {
	var listings []models.FlatListing
	var total int64

	query := db.Model(&models.FlatListing{}).Where("owner_id = ?", ownerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *ListingRepositoryImpl) Search(db *gorm.DB, params ListingSearchParams) ([]models.FlatListing, int64, error) {
	var listings []models.FlatListing
	var total int64

	query := db.Model(&models.FlatListing{}).Where("status = ?", models.ListingStatusActive)

	if params.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", params.City)
	}
	if params.Area != "" {
		query = query.Where("area ILIKE ?", "%"+params.Area+"%")
	}
	if params.MinRent > 0 {
		query = query.Where("monthly_rent >= ?", params.MinRent)
	}
	if params.MaxRent > 0 {
		query = query.Where("monthly_rent <= ?", params.MaxRent)
	}
	if len(params.PropertyTypes) > 0 {
		query = query.Where("property_type IN ?", params.PropertyTypes)
	}
	if params.MinBedrooms > 0 {
		query = query.Where("bedrooms >= ?", params.MinBedrooms)
	}
	if params.Furnished != nil {
		query = query.Where("is_furnished = ?", *params.Furnished)
	}
	if params.ParkingAvailable != nil {
		query = query.Where("parking_available = ?", *params.ParkingAvailable)
	}
	if params.PreferredGender != "" && params.PreferredGender != models.GenderPreferenceAny {
		// "any" listings match every seeker filter.
		query = query.Where("preferred_gender IN ?", []models.GenderPreference{params.PreferredGender, models.GenderPreferenceAny})
	}
	if len(params.Amenities) > 0 {
		query = query.Where("amenities @> ?", pq.StringArray(params.Amenities))
	}
	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR address_line1 ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("is_featured DESC, created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *ListingRepositoryImpl) Update(db *gorm.DB, listing *models.FlatListing) error {
	result := db.Save(listing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) UpdateStatus(db *gorm.DB, listingID string, status models.ListingStatus) error {
	result := db.Model(&models.FlatListing{}).Where("id = ?", listingID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) IncrementViewCount(db *gorm.DB, listingID string) error {
	return db.Model(&models.FlatListing{}).
		Where("id = ?", listingID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ListingRepositoryImpl) Delete(db *gorm.DB, listingID string) error {
	result := db.Where("id = ?", listingID).Delete(&models.FlatListing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}
