package dto

import (
	"time"

	"flatmates_backend/internal/models"
)

type CreateListingRequest struct {
	Title       string `json:"title" binding:"required,min=5,max=200"`
	Description string `json:"description" binding:"max=5000"`

	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	Landmark     string `json:"landmark"`
	City         string `json:"city" binding:"required"`
	Area         string `json:"area"`

	PropertyType     models.PropertyType `json:"property_type" binding:"required,is-property-type"`
	Bedrooms         int                 `json:"bedrooms" binding:"required,min=1,max=20"`
	Bathrooms        int                 `json:"bathrooms" binding:"required,min=1,max=20"`
	IsFurnished      bool                `json:"is_furnished"`
	ParkingAvailable bool                `json:"parking_available"`

	MonthlyRent     float64    `json:"monthly_rent" binding:"required,gt=0"`
	SecurityDeposit float64    `json:"security_deposit" binding:"omitempty,gte=0"`
	RentIncludes    []string   `json:"rent_includes"`
	AvailableFrom   *time.Time `json:"available_from"`

	Amenities []string `json:"amenities"`
	Images    []string `json:"images" binding:"omitempty,dive,url"`

	PreferredGender      models.GenderPreference `json:"preferred_gender" binding:"omitempty,is-gender-preference"`
	PreferredProfessions []string                `json:"preferred_professions"`
	LifestylePreferences []string                `json:"lifestyle_preferences"`

	ContactPhone    *bool `json:"contact_phone"`
	ContactWhatsapp *bool `json:"contact_whatsapp"`
	ContactEmail    *bool `json:"contact_email"`
}

// UpdateListingRequest uses pointers so "absent" and "zero" stay
// distinguishable; only present fields are applied.
type UpdateListingRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=5,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`

	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	Landmark     *string `json:"landmark"`
	City         *string `json:"city"`
	Area         *string `json:"area"`

	PropertyType     *models.PropertyType `json:"property_type" binding:"omitempty,is-property-type"`
	Bedrooms         *int                 `json:"bedrooms" binding:"omitempty,min=1,max=20"`
	Bathrooms        *int                 `json:"bathrooms" binding:"omitempty,min=1,max=20"`
	IsFurnished      *bool                `json:"is_furnished"`
	ParkingAvailable *bool                `json:"parking_available"`

	MonthlyRent     *float64   `json:"monthly_rent" binding:"omitempty,gt=0"`
	SecurityDeposit *float64   `json:"security_deposit" binding:"omitempty,gte=0"`
	RentIncludes    *[]string  `json:"rent_includes"`
	AvailableFrom   *time.Time `json:"available_from"`

	Amenities *[]string `json:"amenities"`
	Images    *[]string `json:"images" binding:"omitempty,dive,url"`

	PreferredGender      *models.GenderPreference `json:"preferred_gender" binding:"omitempty,is-gender-preference"`
	PreferredProfessions *[]string                `json:"preferred_professions"`
	LifestylePreferences *[]string                `json:"lifestyle_preferences"`

	ContactPhone    *bool `json:"contact_phone"`
	ContactWhatsapp *bool `json:"contact_whatsapp"`
	ContactEmail    *bool `json:"contact_email"`
}

type UpdateListingStatusRequest struct {
	Status models.ListingStatus `json:"status" binding:"required,is-listing-status"`
}

type SearchListingsRequest struct {
	Pagination
	City          string   `form:"city"`
	Area          string   `form:"area"`
	MinRent       float64  `form:"min_rent" binding:"omitempty,gte=0"`
	MaxRent       float64  `form:"max_rent" binding:"omitempty,gte=0"`
	PropertyTypes []string `form:"property_type" binding:"omitempty,dive,is-property-type"`
	MinBedrooms   int      `form:"min_bedrooms" binding:"omitempty,min=1"`
	Furnished     *bool    `form:"furnished"`
	Parking       *bool    `form:"parking"`
	Gender        string   `form:"gender" binding:"omitempty,is-gender-preference"`
	Amenities     []string `form:"amenity"`
	Query         string   `form:"q" binding:"omitempty,max=200"`
}

// ListingDTO is the public projection of a listing. It never carries
// the owner's contact details; those go through the unlock flow.
type ListingDTO struct {
	ID          string               `json:"id"`
	OwnerID     string               `json:"owner_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ListingStatus `json:"status"`

	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	City         string `json:"city"`
	Area         string `json:"area,omitempty"`

	PropertyType     models.PropertyType `json:"property_type"`
	Bedrooms         int                 `json:"bedrooms"`
	Bathrooms        int                 `json:"bathrooms"`
	IsFurnished      bool                `json:"is_furnished"`
	ParkingAvailable bool                `json:"parking_available"`

	MonthlyRent     float64    `json:"monthly_rent"`
	SecurityDeposit float64    `json:"security_deposit"`
	RentIncludes    []string   `json:"rent_includes"`
	AvailableFrom   *time.Time `json:"available_from,omitempty"`

	Amenities []string `json:"amenities"`
	Images    []string `json:"images"`

	PreferredGender      models.GenderPreference `json:"preferred_gender"`
	PreferredProfessions []string                `json:"preferred_professions"`
	LifestylePreferences []string                `json:"lifestyle_preferences"`

	ContactPhone    bool `json:"contact_phone"`
	ContactWhatsapp bool `json:"contact_whatsapp"`
	ContactEmail    bool `json:"contact_email"`

	IsFeatured bool      `json:"is_featured"`
	ViewCount  int       `json:"view_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewListingDTO(l *models.FlatListing) ListingDTO {
	return ListingDTO{
		ID:                   l.ID,
		OwnerID:              l.OwnerID,
		Title:                l.Title,
		Description:          l.Description,
		Status:               l.Status,
		AddressLine1:         l.AddressLine1,
		AddressLine2:         l.AddressLine2,
		Landmark:             l.Landmark,
		City:                 l.City,
		Area:                 l.Area,
		PropertyType:         l.PropertyType,
		Bedrooms:             l.Bedrooms,
		Bathrooms:            l.Bathrooms,
		IsFurnished:          l.IsFurnished,
		ParkingAvailable:     l.ParkingAvailable,
		MonthlyRent:          l.MonthlyRent,
		SecurityDeposit:      l.SecurityDeposit,
		RentIncludes:         l.RentIncludes,
		AvailableFrom:        l.AvailableFrom,
		Amenities:            l.Amenities,
		Images:               l.Images,
		PreferredGender:      l.PreferredGender,
		PreferredProfessions: l.PreferredProfessions,
		LifestylePreferences: l.LifestylePreferences,
		ContactPhone:         l.ContactPhone,
		ContactWhatsapp:      l.ContactWhatsapp,
		ContactEmail:         l.ContactEmail,
		IsFeatured:           l.IsFeatured,
		ViewCount:            l.ViewCount,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

func NewListingDTOs(listings []models.FlatListing) []ListingDTO {
	out := make([]ListingDTO, 0, len(listings))
	for i := range listings {
		out = append(out, NewListingDTO(&listings[i]))
	}
	return out
}
