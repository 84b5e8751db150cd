package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses used by the kitchen.
const (
	OrderStatusReceived  = "received"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// CustomerInfo holds the contact fields entered at checkout.
type CustomerInfo struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// OrderPayload is the JSON body posted to the order endpoint.
type OrderPayload struct {
	Customer  CustomerInfo `json:"customer"`
	Items     []CartLine   `json:"items" validate:"required,min=1,dive"`
	Total     float64      `json:"total" validate:"gte=0"`
	Timestamp string       `json:"timestamp" validate:"required"`
}

// OrderResult is the response of the order endpoint and the outcome of a checkout.
type OrderResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Order represents an order received by the restaurant.
type Order struct {
	ID              string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone,omitempty"`
	CustomerAddress string         `json:"customer_address,omitempty"`
	Items           []CartLine     `json:"items" gorm:"serializer:json;type:text"`
	TotalAmount     float64        `json:"total_amount"`
	Status          string         `json:"status" gorm:"index"` // received, preparing, ready, completed, cancelled
	PlacedAt        time.Time      `json:"placed_at"`           // client-side submission timestamp
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}
