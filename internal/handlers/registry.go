package handlers

import (
	"flatmates_backend/internal/services"
	"flatmates_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	ProfileHandler  *ProfileHandler
	ListingHandler  *ListingHandler
	CreditHandler   *CreditHandler
	ReferralHandler *ReferralHandler
	FavoriteHandler *FavoriteHandler
}

func NewAppHandlers(v *validator.Validator, svc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:     NewAuthHandler(base, svc.AuthService),
		ProfileHandler:  NewProfileHandler(base, svc.ProfileService),
		ListingHandler:  NewListingHandler(base, svc.ListingService),
		CreditHandler:   NewCreditHandler(base, svc.CreditService, svc.ContactAccessService),
		ReferralHandler: NewReferralHandler(base, svc.ReferralService),
		FavoriteHandler: NewFavoriteHandler(base, svc.FavoriteService),
	}
}
