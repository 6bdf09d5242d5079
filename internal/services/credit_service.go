package services

import (
	"flatmates_backend/internal/config"
	"flatmates_backend/internal/models"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CreditService interface {
	// GetBalance returns the user's balance, granting the starting
	// balance first if no row exists yet.
	GetBalance(db *gorm.DB, userID string) (*dto.BalanceResponse, error)

	// AwardCredits adds credits and records the audit row; admin and
	// referral flows go through here.
	AwardCredits(db *gorm.DB, userID string, amount int, txType models.CreditTransactionType, description string, relatedID *string) (int, error)

	GetTransactions(db *gorm.DB, userID string, limit, offset int) (*dto.PagedResponse[dto.CreditTransactionDTO], error)
}

type CreditServiceImpl struct {
	creditRepo repositories.CreditRepository
	cfg        *config.Config
}

func NewCreditService(creditRepo repositories.CreditRepository, cfg *config.Config) CreditService {
	return &CreditServiceImpl{
		creditRepo: creditRepo,
		cfg:        cfg,
	}
}

func (s *CreditServiceImpl) GetBalance(db *gorm.DB, userID string) (*dto.BalanceResponse, error) {
	credits, _, err := s.creditRepo.GetOrCreate(db, userID, s.cfg.Credits.StartingBalance)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return &dto.BalanceResponse{Credits: credits.Credits}, nil
}

func (s *CreditServiceImpl) AwardCredits(db *gorm.DB, userID string, amount int, txType models.CreditTransactionType, description string, relatedID *string) (int, error) {
	if amount <= 0 {
		return 0, apperrors.ErrInvalidOperation("credits", "award amount must be positive")
	}

	// Make sure the balance row exists before the increment.
	if _, _, err := s.creditRepo.GetOrCreate(db, userID, s.cfg.Credits.StartingBalance); err != nil {
		return 0, apperrors.DatabaseError(err)
	}

	balance, err := s.creditRepo.Award(db, userID, amount, txType, description, relatedID)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return balance, nil
}

func (s *CreditServiceImpl) GetTransactions(db *gorm.DB, userID string, limit, offset int) (*dto.PagedResponse[dto.CreditTransactionDTO], error) {
	transactions, total, err := s.creditRepo.FindTransactions(db, userID, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	items := make([]dto.CreditTransactionDTO, 0, len(transactions))
	for i := range transactions {
		items = append(items, dto.NewCreditTransactionDTO(&transactions[i]))
	}

	return &dto.PagedResponse[dto.CreditTransactionDTO]{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
