package repositories

import (
	"errors"

	"flatmates_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrAlreadyUnlocked     = errors.New("contact already unlocked")
	ErrCreditsNotFound     = errors.New("credits record not found")
)

type CreditRepository interface {
	// GetOrCreate returns the balance row for the user, creating it
	// with startingBalance when absent. Safe under concurrent first
	// reads: the insert is ON CONFLICT DO NOTHING on the user_id
	// unique index, so exactly one row ever exists per user.
	GetOrCreate(db *gorm.DB, userID string, startingBalance int) (*models.UserCredits, bool, error)

	// ConsumeForContact performs the whole unlock as one transaction:
	// existing log row short-circuits to success, otherwise the
	// conditional decrement and the log insert commit together or not
	// at all. Returns ErrInsufficientCredits when the balance cannot
	// cover the cost. A concurrent winner of the same pair surfaces as
	// success (the pair is unlocked either way, charged exactly once).
	ConsumeForContact(db *gorm.DB, userID, listingID string, cost int) (charged bool, err error)

	// Award atomically increments the balance and writes the audit
	// row; returns the new balance.
	Award(db *gorm.DB, userID string, amount int, txType models.CreditTransactionType, description string, relatedID *string) (int, error)

	HasAccess(db *gorm.DB, userID, listingID string) (bool, error)
	FindAccessLog(db *gorm.DB, userID, listingID string) (*models.ContactAccessLog, error)
	FindTransactions(db *gorm.DB, userID string, limit, offset int) ([]models.CreditTransaction, int64, error)
}

type CreditRepositoryImpl struct{}

func NewCreditRepository() CreditRepository {
	return &CreditRepositoryImpl{}
}

func (r *CreditRepositoryImpl) GetOrCreate(db *gorm.DB, userID string, startingBalance int) (*models.UserCredits, bool, error) {
	created := false

	err := db.Transaction(func(tx *gorm.DB) error {
		row := models.UserCredits{UserID: userID, Credits: startingBalance}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected == 1

		if created {
			// The signup bonus is part of the same transaction, so a
			// failed audit write also rolls back the row creation.
			audit := models.CreditTransaction{
				UserID:        userID,
				Amount:        startingBalance,
				BalanceBefore: 0,
				BalanceAfter:  startingBalance,
				Type:          models.CreditTxSignupBonus,
				Description:   "Welcome credits",
			}
			if err := tx.Create(&audit).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	var credits models.UserCredits
	if err := db.Where("user_id = ?", userID).First(&credits).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrCreditsNotFound
		}
		return nil, false, err
	}
	return &credits, created, nil
}

func (r *CreditRepositoryImpl) ConsumeForContact(db *gorm.DB, userID, listingID string, cost int) (bool, error) {
	charged := false

	err := db.Transaction(func(tx *gorm.DB) error {
		// Idempotent re-access: an existing row means the pair is
		// already unlocked and nothing may be charged.
		var existing int64
		if err := tx.Model(&models.ContactAccessLog{}).
			Where("user_id = ? AND listing_id = ?", userID, listingID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		// Conditional decrement: the WHERE clause is the balance
		// floor. Two racing requests for different listings serialize
		// on the row; the one that would go negative affects 0 rows.
		res := tx.Model(&models.UserCredits{}).
			Where("user_id = ? AND credits >= ?", userID, cost).
			UpdateColumn("credits", gorm.Expr("credits - ?", cost))
		if res.Error != nil {
			if isCheckViolation(res.Error) {
				return ErrInsufficientCredits
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientCredits
		}

		// The pair unique index catches the remaining race: two
		// first-time unlocks for the same pair both pass the count
		// above, but only one insert succeeds, the loser's decrement
		// rolls back with its transaction.
		logRow := models.ContactAccessLog{
			UserID:      userID,
			ListingID:   listingID,
			CreditsUsed: cost,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyUnlocked
			}
			return err
		}

		var after models.UserCredits
		if err := tx.Where("user_id = ?", userID).First(&after).Error; err != nil {
			return err
		}

		audit := models.CreditTransaction{
			UserID:        userID,
			Amount:        -cost,
			BalanceBefore: after.Credits + cost,
			BalanceAfter:  after.Credits,
			Type:          models.CreditTxContactUnlock,
			Description:   "Contact details unlocked",
			RelatedID:     &listingID,
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}

		charged = true
		return nil
	})

	if errors.Is(err, ErrAlreadyUnlocked) {
		// Lost the insert race: someone else just unlocked this pair.
		// The pair is unlocked and this caller was not charged.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return charged, nil
}

func (r *CreditRepositoryImpl) Award(db *gorm.DB, userID string, amount int, txType models.CreditTransactionType, description string, relatedID *string) (int, error) {
	var balanceAfter int

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserCredits{}).
			Where("user_id = ?", userID).
			UpdateColumn("credits", gorm.Expr("credits + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCreditsNotFound
		}

		var after models.UserCredits
		if err := tx.Where("user_id = ?", userID).First(&after).Error; err != nil {
			return err
		}
		balanceAfter = after.Credits

		audit := models.CreditTransaction{
			UserID:        userID,
			Amount:        amount,
			BalanceBefore: after.Credits - amount,
			BalanceAfter:  after.Credits,
			Type:          txType,
			Description:   description,
			RelatedID:     relatedID,
		}
		return tx.Create(&audit).Error
	})
	if err != nil {
		return 0, err
	}
	return balanceAfter, nil
}

func (r *CreditRepositoryImpl) HasAccess(db *gorm.DB, userID, listingID string) (bool, error) {
	var count int64
	err := db.Model(&models.ContactAccessLog{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}

func (r *CreditRepositoryImpl) FindAccessLog(db *gorm.DB, userID, listingID string) (*models.ContactAccessLog, error) {
	var row models.ContactAccessLog
	err := db.Where("user_id = ? AND listing_id = ?", userID, listingID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *CreditRepositoryImpl) FindTransactions(db *gorm.DB, userID string, limit, offset int) ([]models.CreditTransaction, int64, error) {
	var total int64
	if err := db.Model(&models.CreditTransaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txs []models.CreditTransaction
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&txs).Error
	return txs, total, err
}
