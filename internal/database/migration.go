package database

import (
	"fmt"

	"company-finance-backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Department{},
		&models.User{},
		&models.RefreshToken{},
		&models.Budget{},
		&models.Transaction{},
		&models.Payroll{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
