package repositories

import (
	"errors"
	"fmt"

	"omareats/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStaffRepository is a GORM implementation of StaffRepository.
type GORMStaffRepository struct {
	db *gorm.DB
}

// NewGORMStaffRepository creates a new instance of GORMStaffRepository.
func NewGORMStaffRepository(db *gorm.DB) *GORMStaffRepository {
	return &GORMStaffRepository{
		db: db,
	}
}

// Create stores a staff account; an empty ID is filled with a fresh UUID.
func (r *GORMStaffRepository) Create(staff *models.StaffUser) error {
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}
	if err := r.db.Create(staff).Error; err != nil {
		return fmt.Errorf("failed to create staff account %s: %w", staff.Username, err)
	}
	return nil
}

// FindByUsername looks a staff account up by its login name.
func (r *GORMStaffRepository) FindByUsername(username string) (*models.StaffUser, error) {
	return r.findOne("username", username)
}

// FindByEmail looks a staff account up by its email address.
func (r *GORMStaffRepository) FindByEmail(email string) (*models.StaffUser, error) {
	return r.findOne("email", email)
}

func (r *GORMStaffRepository) findOne(column, value string) (*models.StaffUser, error) {
	var staff models.StaffUser
	err := r.db.Where(column+" = ?", value).First(&staff).Error
	switch {
	case err == nil:
		return &staff, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("staff %s %s: %w", column, value, ErrStaffNotFound)
	default:
		return nil, fmt.Errorf("failed to find staff by %s: %w", column, err)
	}
}
