package models

import (
	"time"

	"github.com/lib/pq"
)

// FlatListing is a flat or flatmate listing. Contact channel flags
// control which details the contact gate is allowed to reveal.
type FlatListing struct {
	BaseModel
	OwnerID     string        `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	Status      ListingStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`

	// Location
	AddressLine1 string `gorm:"not null" json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	Landmark     string `json:"landmark"`
	City         string `gorm:"not null;index" json:"city"`
	Area         string `json:"area"`

	// Property
	PropertyType     PropertyType `gorm:"type:varchar(20);not null" json:"property_type"`
	Bedrooms         int          `gorm:"not null" json:"bedrooms"`
	Bathrooms        int          `gorm:"not null" json:"bathrooms"`
	IsFurnished      bool         `gorm:"default:false" json:"is_furnished"`
	ParkingAvailable bool         `gorm:"default:false" json:"parking_available"`

	// Rent terms
	MonthlyRent     float64        `gorm:"not null" json:"monthly_rent"`
	SecurityDeposit float64        `json:"security_deposit"`
	RentIncludes    pq.StringArray `gorm:"type:text[]" json:"rent_includes" swaggerignore:"true"`
	AvailableFrom   *time.Time     `json:"available_from,omitempty"`

	Amenities pq.StringArray `gorm:"type:text[]" json:"amenities" swaggerignore:"true"`
	Images    pq.StringArray `gorm:"type:text[]" json:"images" swaggerignore:"true"`

	// Flatmate preferences
	PreferredGender      GenderPreference `gorm:"type:varchar(10);default:'any'" json:"preferred_gender"`
	PreferredProfessions pq.StringArray   `gorm:"type:text[]" json:"preferred_professions" swaggerignore:"true"`
	LifestylePreferences pq.StringArray   `gorm:"type:text[]" json:"lifestyle_preferences" swaggerignore:"true"`

	// Channels the owner agreed to expose after an unlock. The actual
	// values come from the owner's profile at reveal time.
	ContactPhone    bool `gorm:"default:true" json:"contact_phone"`
	ContactWhatsapp bool `gorm:"default:false" json:"contact_whatsapp"`
	ContactEmail    bool `gorm:"default:false" json:"contact_email"`

	IsFeatured bool `gorm:"default:false;index" json:"is_featured"`
	ViewCount  int  `gorm:"default:0" json:"view_count"`
}
