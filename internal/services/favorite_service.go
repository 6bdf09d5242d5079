package services

import (
	"errors"

	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type FavoriteService interface {
	AddFavorite(db *gorm.DB, userID, listingID string) error
	RemoveFavorite(db *gorm.DB, userID, listingID string) error
	GetFavorites(db *gorm.DB, userID string, limit, offset int) (*dto.PagedResponse[dto.FavoriteDTO], error)
	IsFavorite(db *gorm.DB, userID, listingID string) (bool, error)
}

type FavoriteServiceImpl struct {
	favoriteRepo repositories.FavoriteRepository
	listingRepo  repositories.ListingRepository
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, listingRepo repositories.ListingRepository) FavoriteService {
	return &FavoriteServiceImpl{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
	}
}

func (s *FavoriteServiceImpl) AddFavorite(db *gorm.DB, userID, listingID string) error {
	if _, err := s.listingRepo.FindByID(db, listingID); err != nil {
		if errors.Is(err, repositories.ErrListingNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}

	if err := s.favoriteRepo.Add(db, userID, listingID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFavorited) {
			// Saving twice is a no-op, not an error.
			return nil
		}
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *FavoriteServiceImpl) RemoveFavorite(db *gorm.DB, userID, listingID string) error {
	if err := s.favoriteRepo.Remove(db, userID, listingID); err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *FavoriteServiceImpl) GetFavorites(db *gorm.DB, userID string, limit, offset int) (*dto.PagedResponse[dto.FavoriteDTO], error) {
	favorites, total, err := s.favoriteRepo.FindByUser(db, userID, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]dto.FavoriteDTO, 0, len(favorites))
	for i := range favorites {
		items = append(items, dto.NewFavoriteDTO(&favorites[i]))
	}
	return &dto.PagedResponse[dto.FavoriteDTO]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *FavoriteServiceImpl) IsFavorite(db *gorm.DB, userID, listingID string) (bool, error) {
	isFav, err := s.favoriteRepo.Exists(db, userID, listingID)
	if err != nil {
		return false, apperrors.DatabaseError(err)
	}
	return isFav, nil
}
