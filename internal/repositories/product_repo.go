package repositories

import (
	"omareats/internal/models"
)

// ProductRepository defines the interface for menu data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
}
