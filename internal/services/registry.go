package services

import (
	"flatmates_backend/internal/config"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/utils"
)

// ServiceContainer holds every application service.
type ServiceContainer struct {
	AuthService          AuthService
	ProfileService       ProfileService
	ListingService       ListingService
	CreditService        CreditService
	ReferralService      ReferralService
	ContactAccessService ContactAccessService
	FavoriteService      FavoriteService
}

// NewServiceContainer wires the services against a shared set of
// stateless repositories.
func NewServiceContainer(cfg *config.Config, emailSender utils.EmailSender) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	listingRepo := repositories.NewListingRepository()
	creditRepo := repositories.NewCreditRepository()
	referralRepo := repositories.NewReferralRepository()
	favoriteRepo := repositories.NewFavoriteRepository()

	creditSvc := NewCreditService(creditRepo, cfg)
	referralSvc := NewReferralService(referralRepo, userRepo, creditSvc, emailSender, cfg)

	return &ServiceContainer{
		AuthService:          NewAuthService(userRepo, profileRepo, creditSvc, referralSvc, emailSender, cfg),
		ProfileService:       NewProfileService(profileRepo),
		ListingService:       NewListingService(listingRepo),
		CreditService:        creditSvc,
		ReferralService:      referralSvc,
		ContactAccessService: NewContactAccessService(creditRepo, listingRepo, userRepo, cfg),
		FavoriteService:      NewFavoriteService(favoriteRepo, listingRepo),
	}
}
