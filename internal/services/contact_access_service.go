package services

import (
	"errors"

	"flatmates_backend/internal/config"
	"flatmates_backend/internal/models"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactAccessService interface {
	// UnlockContact charges the configured contact cost and reveals the
	// owner's enabled contact channels. Re-unlocking an already
	// unlocked pair returns the details again without charging.
	UnlockContact(db *gorm.DB, userID, listingID string) (*dto.UnlockContactResponse, error)

	// GetAccessStatus reports whether the pair is unlocked, never
	// charging anything.
	GetAccessStatus(db *gorm.DB, userID, listingID string) (*dto.AccessStatusResponse, error)
}

type ContactAccessServiceImpl struct {
	creditRepo  repositories.CreditRepository
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
	cfg         *config.Config
}

func NewContactAccessService(
	creditRepo repositories.CreditRepository,
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	cfg *config.Config,
) ContactAccessService {
	return &ContactAccessServiceImpl{
		creditRepo:  creditRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

func (s *ContactAccessServiceImpl) UnlockContact(db *gorm.DB, userID, listingID string) (*dto.UnlockContactResponse, error) {
	listing, err := s.listingRepo.FindByID(db, listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}

	// Owners see their own contact details without paying.
	if listing.OwnerID == userID {
		contact, err := s.buildContactDetails(db, listing)
		if err != nil {
			return nil, err
		}
		balance, err := s.currentBalance(db, userID)
		if err != nil {
			return nil, err
		}
		return &dto.UnlockContactResponse{
			Charged:        false,
			CreditsCharged: 0,
			Balance:        balance,
			Contact:        *contact,
		}, nil
	}

	if listing.Status != models.ListingStatusActive {
		has, err := s.creditRepo.HasAccess(db, userID, listingID)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		if has {
			// Past unlocks stay readable after the listing closes.
			return s.respondUnlocked(db, userID, listing, false)
		}
		return nil, apperrors.ErrInvalidOperation("listing", "listing is not active")
	}

	// Grant the starting balance before the first charge so new users
	// are never charged against a missing row.
	if _, _, err := s.creditRepo.GetOrCreate(db, userID, s.cfg.Credits.StartingBalance); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	charged, err := s.creditRepo.ConsumeForContact(db, userID, listingID, s.cfg.Credits.ContactCost)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientCredits) {
			return nil, apperrors.ErrInsufficientCredits
		}
		return nil, apperrors.DatabaseError(err)
	}

	return s.respondUnlocked(db, userID, listing, charged)
}

func (s *ContactAccessServiceImpl) GetAccessStatus(db *gorm.DB, userID, listingID string) (*dto.AccessStatusResponse, error) {
	log, err := s.creditRepo.FindAccessLog(db, userID, listingID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if log == nil {
		return &dto.AccessStatusResponse{HasAccess: false}, nil
	}
	return &dto.AccessStatusResponse{
		HasAccess:  true,
		AccessedAt: &log.AccessedAt,
	}, nil
}

func (s *ContactAccessServiceImpl) respondUnlocked(db *gorm.DB, userID string, listing *models.FlatListing, charged bool) (*dto.UnlockContactResponse, error) {
	contact, err := s.buildContactDetails(db, listing)
	if err != nil {
		return nil, err
	}
	balance, err := s.currentBalance(db, userID)
	if err != nil {
		return nil, err
	}

	creditsCharged := 0
	if charged {
		creditsCharged = s.cfg.Credits.ContactCost
	}
	return &dto.UnlockContactResponse{
		Charged:        charged,
		CreditsCharged: creditsCharged,
		Balance:        balance,
		Contact:        *contact,
	}, nil
}

// buildContactDetails assembles the reveal payload from the owner's
// profile, filtered to the channels the listing enables.
func (s *ContactAccessServiceImpl) buildContactDetails(db *gorm.DB, listing *models.FlatListing) (*dto.ContactDetails, error) {
	owner, err := s.userRepo.FindByID(db, listing.OwnerID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	contact := &dto.ContactDetails{}
	if owner.Profile != nil {
		contact.OwnerName = owner.Profile.FullName
		if listing.ContactPhone {
			contact.PhoneNumber = owner.Profile.PhoneNumber
		}
		if listing.ContactWhatsapp {
			contact.WhatsappPhone = owner.Profile.PhoneNumber
		}
	}
	if listing.ContactEmail {
		contact.Email = owner.Email
	}
	return contact, nil
}

func (s *ContactAccessServiceImpl) currentBalance(db *gorm.DB, userID string) (int, error) {
	credits, _, err := s.creditRepo.GetOrCreate(db, userID, s.cfg.Credits.StartingBalance)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return credits.Credits, nil
}
