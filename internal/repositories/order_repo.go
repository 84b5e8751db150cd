package repositories

import (
	"omareats/internal/models"
)

// OrderRepository defines the interface for received order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
}
