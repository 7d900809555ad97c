package database

import (
	"fmt"

	"github.com/HarshaLokesh/phronetic-ai/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Budget{},
		&models.UserPreference{},
		&models.RevokedToken{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
