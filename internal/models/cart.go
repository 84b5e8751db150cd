package models

import "github.com/shopspring/decimal"

// CartLine is one product's entry in the cart together with its quantity.
// It is serialized flat: the product fields followed by "quantity".
type CartLine struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity" validate:"gte=1"`
}

// NewCartLine creates a cart line for the given product with quantity 1.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Quantity:    1,
	}
}

// Subtotal returns price x quantity for the line.
func (l CartLine) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered list of lines in a shopping cart.
// At most one line exists per product ID.
type Cart []CartLine

// Find returns the index of the line for productID, or -1.
func (c Cart) Find(productID string) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

// ItemCount returns the sum of quantities across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, line := range c {
		count += line.Quantity
	}
	return count
}

// Total returns the sum of price x quantity, rounded to cents.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c {
		total = total.Add(line.Subtotal())
	}
	return total.Round(2)
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}
