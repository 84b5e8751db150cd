package repositories

import (
	"fmt"

	"omareats/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables used by the GORM repositories.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&CartEntry{}, &models.Order{}, &models.StaffUser{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
