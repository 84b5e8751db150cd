package repositories

import "omareats/internal/models"

// StaffRepository stores kitchen staff accounts.
type StaffRepository interface {
	Create(staff *models.StaffUser) error
	FindByUsername(username string) (*models.StaffUser, error)
	FindByEmail(email string) (*models.StaffUser, error)
}
