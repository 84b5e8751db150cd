package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"omareats/internal/metrics"
	"omareats/internal/models"
	"omareats/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrder  = errors.New("invalid order")
	ErrInvalidStatus = errors.New("invalid order status")
)

// OrderReceivedRoutingKey is the routing key of events published for accepted orders.
const OrderReceivedRoutingKey = "order.received"

// EventPublisher publishes a message body under a routing key.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles orders arriving at the order endpoint.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher // nil disables event publishing
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// GetAllOrders retrieves all received orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// AcceptOrder validates an incoming order payload and records it.
// The stored total is recomputed from the lines; the client's total is informational.
func (s *OrderService) AcceptOrder(payload models.OrderPayload) (*models.Order, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	seen := make(map[string]bool, len(payload.Items))
	for _, item := range payload.Items {
		if seen[item.ID] {
			return nil, fmt.Errorf("%w: product %s appears on more than one line", ErrInvalidOrder, item.ID)
		}
		seen[item.ID] = true
	}

	placedAt, err := time.Parse(time.RFC3339, payload.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp %q is not ISO-8601", ErrInvalidOrder, payload.Timestamp)
	}

	total := models.Cart(payload.Items).Total()
	if !total.Equal(decimal.NewFromFloat(payload.Total).Round(2)) {
		log.Printf("Order total mismatch: client sent %.2f, computed %s", payload.Total, total.StringFixed(2))
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		CustomerName:    payload.Customer.Name,
		CustomerEmail:   payload.Customer.Email,
		CustomerPhone:   payload.Customer.Phone,
		CustomerAddress: payload.Customer.Address,
		Items:           payload.Items,
		TotalAmount:     total.InexactFloat64(),
		Status:          models.OrderStatusReceived,
		PlacedAt:        placedAt.UTC(),
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}
	metrics.OrdersAccepted.Inc()
	log.Printf("New order received: %s from %s (%s)", order.ID, order.CustomerName, total.StringFixed(2))

	s.publishReceived(order)
	return order, nil
}

func (s *OrderService) publishReceived(order *models.Order) {
	if s.publisher == nil {
		log.Println("No event publisher configured. Skipping order event.")
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"orderID":  order.ID,
		"customer": order.CustomerName,
		"status":   order.Status,
		"total":    order.TotalAmount,
		"items":    order.Items,
	})
	if err != nil {
		log.Printf("Failed to marshal order %s to JSON: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish(OrderReceivedRoutingKey, body); err != nil {
		log.Printf("Warning: Failed to publish order received event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Successfully published order received event for order %s", order.ID)
}

var validStatuses = map[string]bool{
	models.OrderStatusReceived:  true,
	models.OrderStatusPreparing: true,
	models.OrderStatusReady:     true,
	models.OrderStatusCompleted: true,
	models.OrderStatusCancelled: true,
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}
