package dto

import (
	"time"

	"flatmates_backend/internal/models"
)

type FavoriteDTO struct {
	ID        string      `json:"id"`
	ListingID string      `json:"listing_id"`
	Listing   *ListingDTO `json:"listing,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func NewFavoriteDTO(f *models.UserFavorite) FavoriteDTO {
	out := FavoriteDTO{
		ID:        f.ID,
		ListingID: f.ListingID,
		CreatedAt: f.CreatedAt,
	}
	if f.Listing != nil {
		listing := NewListingDTO(f.Listing)
		out.Listing = &listing
	}
	return out
}
