package database

import (
	"fmt"

	"flatmates_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectGorm opens a GORM connection and verifies it with a ping.
func ConnectGorm(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every model. The
// uuid-ossp extension backs the uuid_generate_v4 column defaults.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.FlatListing{},
		&models.UserCredits{},
		&models.CreditTransaction{},
		&models.Referral{},
		&models.ContactAccessLog{},
		&models.UserFavorite{},
	)
}
