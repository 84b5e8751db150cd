package models

// Product represents a dish on the restaurant menu.
type Product struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name" validate:"required,max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=500"`
}
