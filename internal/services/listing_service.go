package services

import (
	"errors"

	"flatmates_backend/internal/models"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/pkg/apperrors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListingService interface {
	CreateListing(db *gorm.DB, ownerID string, req *dto.CreateListingRequest) (*dto.ListingDTO, error)
	GetListing(db *gorm.DB, listingID string, countView bool) (*dto.ListingDTO, error)
	GetActiveListings(db *gorm.DB, limit, offset int) (*dto.PagedResponse[dto.ListingDTO], error)
	GetFeaturedListings(db *gorm.DB, limit int) ([]dto.ListingDTO, error)
	GetMyListings(db *gorm.DB, ownerID string, limit, offset int) (*dto.PagedResponse[dto.ListingDTO], error)
	SearchListings(db *gorm.DB, req *dto.SearchListingsRequest) (*dto.PagedResponse[dto.ListingDTO], error)
	UpdateListing(db *gorm.DB, ownerID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingDTO, error)
	UpdateListingStatus(db *gorm.DB, ownerID, listingID string, status models.ListingStatus) error
	DeleteListing(db *gorm.DB, ownerID, listingID string) error
}

type ListingServiceImpl struct {
	listingRepo repositories.ListingRepository
}

func NewListingService(listingRepo repositories.ListingRepository) ListingService {
	return &ListingServiceImpl{listingRepo: listingRepo}
}

func (s *ListingServiceImpl) CreateListing(db *gorm.DB, ownerID string, req *dto.CreateListingRequest) (*dto.ListingDTO, error) {
	gender := req.PreferredGender
	if gender == "" {
		gender = models.GenderPreferenceAny
	}

	listing := &models.FlatListing{
		OwnerID:              ownerID,
		Title:                req.Title,
		Description:          req.Description,
		Status:               models.ListingStatusActive,
		AddressLine1:         req.AddressLine1,
		AddressLine2:         req.AddressLine2,
		Landmark:             req.Landmark,
		City:                 req.City,
		Area:                 req.Area,
		PropertyType:         req.PropertyType,
		Bedrooms:             req.Bedrooms,
		Bathrooms:            req.Bathrooms,
		IsFurnished:          req.IsFurnished,
		ParkingAvailable:     req.ParkingAvailable,
		MonthlyRent:          req.MonthlyRent,
		SecurityDeposit:      req.SecurityDeposit,
		RentIncludes:         pq.StringArray(req.RentIncludes),
		AvailableFrom:        req.AvailableFrom,
		Amenities:            pq.StringArray(req.Amenities),
		Images:               pq.StringArray(req.Images),
		PreferredGender:      gender,
		PreferredProfessions: pq.StringArray(req.PreferredProfessions),
		LifestylePreferences: pq.StringArray(req.LifestylePreferences),
		ContactPhone:         true,
	}
	if req.ContactPhone != nil {
		listing.ContactPhone = *req.ContactPhone
	}
	if req.ContactWhatsapp != nil {
		listing.ContactWhatsapp = *req.ContactWhatsapp
	}
	if req.ContactEmail != nil {
		listing.ContactEmail = *req.ContactEmail
	}

	if err := s.listingRepo.Create(db, listing); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := dto.NewListingDTO(listing)
	return &out, nil
}

func (s *ListingServiceImpl) GetListing(db *gorm.DB, listingID string, countView bool) (*dto.ListingDTO, error) {
	listing, err := s.listingRepo.FindByID(db, listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}

	if countView {
		if err := s.listingRepo.IncrementViewCount(db, listingID); err == nil {
			listing.ViewCount++
		}
	}

	out := dto.NewListingDTO(listing)
	return &out, nil
}

func (s *ListingServiceImpl) GetActiveListings(db *gorm.DB, limit, offset int) (*dto.PagedResponse[dto.ListingDTO], error) {
	listings, total, err := s.listingRepo.FindActive(db, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.PagedResponse[dto.ListingDTO]{
		Items:  dto.NewListingDTOs(listings),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *ListingServiceImpl) GetFeaturedListings(db *gorm.DB, limit int) ([]dto.ListingDTO, error) {
	listings, err := s.listingRepo.FindFeatured(db, limit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewListingDTOs(listings), nil
}

func (s *ListingServiceImpl) GetMyListings(db *gorm.DB, ownerID string, limit, offset int) (*dto.PagedResponse[dto.ListingDTO], error) {
	listings, total, err := s.listingRepo.FindByOwner(db, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.PagedResponse[dto.ListingDTO]{
		Items:  dto.NewListingDTOs(listings),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *ListingServiceImpl) SearchListings(db *gorm.DB, req *dto.SearchListingsRequest) (*dto.PagedResponse[dto.ListingDTO], error) {
	if req.MinRent > 0 && req.MaxRent > 0 && req.MinRent > req.MaxRent {
		return nil, apperrors.ErrInvalidOperation("listing", "min_rent cannot exceed max_rent")
	}

	types := make([]models.PropertyType, 0, len(req.PropertyTypes))
	for _, t := range req.PropertyTypes {
		types = append(types, models.PropertyType(t))
	}

	params := repositories.ListingSearchParams{
		City:             req.City,
		Area:             req.Area,
		MinRent:          req.MinRent,
		MaxRent:          req.MaxRent,
		PropertyTypes:    types,
		MinBedrooms:      req.MinBedrooms,
		Furnished:        req.Furnished,
		ParkingAvailable: req.Parking,
		PreferredGender:  models.GenderPreference(req.Gender),
		Amenities:        req.Amenities,
		Query:            req.Query,
		Limit:            req.Limit,
		Offset:           req.Offset,
	}

	listings, total, err := s.listingRepo.Search(db, params)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.PagedResponse[dto.ListingDTO]{
		Items:  dto.NewListingDTOs(listings),
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}, nil
}

func (s *ListingServiceImpl) UpdateListing(db *gorm.DB, ownerID, listingID string, req *dto.UpdateListingRequest) (*dto.ListingDTO, error) {
	listing, err := s.findOwned(db, ownerID, listingID)
	if err != nil {
		return nil, err
	}

	applyListingUpdate(listing, req)

	if err := s.listingRepo.Update(db, listing); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	out := dto.NewListingDTO(listing)
	return &out, nil
}

func (s *ListingServiceImpl) UpdateListingStatus(db *gorm.DB, ownerID, listingID string, status models.ListingStatus) error {
	if _, err := s.findOwned(db, ownerID, listingID); err != nil {
		return err
	}
	if err := s.listingRepo.UpdateStatus(db, listingID, status); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *ListingServiceImpl) DeleteListing(db *gorm.DB, ownerID, listingID string) error {
	if _, err := s.findOwned(db, ownerID, listingID); err != nil {
		return err
	}
	if err := s.listingRepo.Delete(db, listingID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *ListingServiceImpl) findOwned(db *gorm.DB, ownerID, listingID string) (*models.FlatListing, error) {
	listing, err := s.listingRepo.FindByID(db, listingID)
	if err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.DatabaseError(err)
	}
	if listing.OwnerID != ownerID {
		return nil, apperrors.ErrNotListingOwner
	}
	return listing, nil
}

func applyListingUpdate(l *models.FlatListing, req *dto.UpdateListingRequest) {
	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.AddressLine1 != nil {
		l.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		l.AddressLine2 = *req.AddressLine2
	}
	if req.Landmark != nil {
		l.Landmark = *req.Landmark
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.Area != nil {
		l.Area = *req.Area
	}
	if req.PropertyType != nil {
		l.PropertyType = *req.PropertyType
	}
	if req.Bedrooms != nil {
		l.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		l.Bathrooms = *req.Bathrooms
	}
	if req.IsFurnished != nil {
		l.IsFurnished = *req.IsFurnished
	}
	if req.ParkingAvailable != nil {
		l.ParkingAvailable = *req.ParkingAvailable
	}
	if req.MonthlyRent != nil {
		l.MonthlyRent = *req.MonthlyRent
	}
	if req.SecurityDeposit != nil {
		l.SecurityDeposit = *req.SecurityDeposit
	}
	if req.RentIncludes != nil {
		l.RentIncludes = pq.StringArray(*req.RentIncludes)
	}
	if req.AvailableFrom != nil {
		l.AvailableFrom = req.AvailableFrom
	}
	if req.Amenities != nil {
		l.Amenities = pq.StringArray(*req.Amenities)
	}
	if req.Images != nil {
		l.Images = pq.StringArray(*req.Images)
	}
	if req.PreferredGender != nil {
		l.PreferredGender = *req.PreferredGender
	}
	if req.PreferredProfessions != nil {
		l.PreferredProfessions = pq.StringArray(*req.PreferredProfessions)
	}
	if req.LifestylePreferences != nil {
		l.LifestylePreferences = pq.StringArray(*req.LifestylePreferences)
	}
	if req.ContactPhone != nil {
		l.ContactPhone = *req.ContactPhone
	}
	if req.ContactWhatsapp != nil {
		l.ContactWhatsapp = *req.ContactWhatsapp
	}
	if req.ContactEmail != nil {
		l.ContactEmail = *req.ContactEmail
	}
}
