package repositories

import (
	"fmt"
	"sync"
	"time"

	"omareats/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository keeps received orders in memory, in arrival order.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
	byID   map[string]int // index into orders
	now    func() time.Time
}

// NewMemoryOrderRepository creates an empty MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		byID: make(map[string]int),
		now:  time.Now,
	}
}

// GetAll returns a copy of every order, oldest first.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Order(nil), r.orders...), nil
}

// GetByID returns a copy of the order with the given ID.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	order := r.orders[i]
	return &order, nil
}

// Create appends an order, assigning an ID and timestamps.
// Re-using an existing ID is an error.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if _, exists := r.byID[order.ID]; exists {
		return fmt.Errorf("failed to create order: duplicate ID %s", order.ID)
	}
	order.CreatedAt = r.now()
	order.UpdatedAt = order.CreatedAt

	r.byID[order.ID] = len(r.orders)
	r.orders = append(r.orders, *order)
	return nil
}

// UpdateStatus moves an order to status.
func (r *MemoryOrderRepository) UpdateStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	r.orders[i].Status = status
	r.orders[i].UpdatedAt = r.now()
	return nil
}
