package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"omareats/internal/models"
)

// KitchenTicket is the order.received event as the kitchen reads it.
type KitchenTicket struct {
	OrderID  string            `json:"orderID"`
	Customer string            `json:"customer"`
	Status   string            `json:"status"`
	Total    float64           `json:"total"`
	Items    []models.CartLine `json:"items"`
}

// ParseKitchenTicket decodes an order.received event body.
func ParseKitchenTicket(body []byte) (KitchenTicket, error) {
	var ticket KitchenTicket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return KitchenTicket{}, fmt.Errorf("failed to decode kitchen ticket: %w", err)
	}
	if ticket.OrderID == "" {
		return KitchenTicket{}, fmt.Errorf("kitchen ticket without order ID")
	}
	return ticket, nil
}

// String renders the ticket as a single line, e.g. "a1b2 Omar: 2x Shawarma Wrap, 1x Baklava".
func (t KitchenTicket) String() string {
	lines := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		lines = append(lines, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	return fmt.Sprintf("%s %s: %s", t.OrderID, t.Customer, strings.Join(lines, ", "))
}

// HandleKitchenTicket prints a received order for the kitchen.
func HandleKitchenTicket(body []byte) error {
	ticket, err := ParseKitchenTicket(body)
	if err != nil {
		return err
	}
	log.Printf("Kitchen ticket: %s", ticket)
	return nil
}
