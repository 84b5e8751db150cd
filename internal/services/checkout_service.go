package services

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"omareats/internal/metrics"
	"omareats/internal/models"

	"github.com/go-playground/validator/v10"
)

// Messages returned to the customer in OrderResult.Error.
const (
	MsgCartEmpty         = "Winkelwagen is leeg"
	MsgUnknownError      = "Onbekende fout opgetreden"
	MsgAlreadySubmitting = "Bestelling wordt al verzonden"
	MsgNameRequired      = "Naam is verplicht"
	MsgEmailRequired     = "E-mailadres is verplicht"
	MsgEmailInvalid      = "Ongeldig e-mailadres"
	MsgInvalidCustomer   = "Ongeldige klantgegevens"
)

// timestampLayout matches ISO-8601 with millisecond precision in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// OrderPoster posts a JSON body to the order endpoint and decodes the JSON
// response into out.
type OrderPoster interface {
	PostJSON(ctx context.Context, body any, out any) error
}

// CheckoutService turns the current cart into an order at the remote endpoint.
type CheckoutService struct {
	cart       *CartService
	poster     OrderPoster
	validate   *validator.Validate
	now        func() time.Time
	submitting atomic.Bool
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(cart *CartService, poster OrderPoster) *CheckoutService {
	return &CheckoutService{
		cart:     cart,
		poster:   poster,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Submit sends the current cart together with the customer's contact fields
// as a single order. It never returns an error: every failure is reported in
// the result. The cart is cleared only when the endpoint reports success.
// There is no retry; calling Submit again after a failure places a new order attempt.
func (s *CheckoutService) Submit(ctx context.Context, info models.CustomerInfo) models.OrderResult {
	if !s.submitting.CompareAndSwap(false, true) {
		metrics.CheckoutSubmissions.WithLabelValues("busy").Inc()
		return failure(MsgAlreadySubmitting)
	}
	defer s.submitting.Store(false)

	cart := s.cart.Cart(ctx)
	if len(cart) == 0 {
		metrics.CheckoutSubmissions.WithLabelValues("empty").Inc()
		return failure(MsgCartEmpty)
	}

	if err := s.validate.Struct(info); err != nil {
		metrics.CheckoutSubmissions.WithLabelValues("invalid").Inc()
		return failure(customerErrorMessage(err))
	}

	payload := models.OrderPayload{
		Customer:  info,
		Items:     cart,
		Total:     cart.Total().InexactFloat64(),
		Timestamp: s.now().UTC().Format(timestampLayout),
	}

	var result models.OrderResult
	if err := s.poster.PostJSON(ctx, payload, &result); err != nil {
		log.Printf("Error submitting order: %v", err)
		metrics.CheckoutSubmissions.WithLabelValues("failed").Inc()
		msg := err.Error()
		if msg == "" {
			msg = MsgUnknownError
		}
		return failure(msg)
	}

	if !result.Success {
		log.Printf("Order rejected by endpoint: %q", result.Error)
		metrics.CheckoutSubmissions.WithLabelValues("rejected").Inc()
		return result
	}

	s.cart.Clear(ctx)
	metrics.CheckoutSubmissions.WithLabelValues("accepted").Inc()
	log.Printf("Order %s placed (%d items)", result.OrderID, cart.ItemCount())
	return result
}

func failure(msg string) models.OrderResult {
	return models.OrderResult{Success: false, Error: msg}
}

// customerErrorMessage maps the first validation failure to a customer-facing message.
func customerErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return MsgInvalidCustomer
	}
	e := validationErrors[0]
	switch {
	case e.Field() == "Name":
		return MsgNameRequired
	case e.Field() == "Email" && e.Tag() == "required":
		return MsgEmailRequired
	case e.Field() == "Email":
		return MsgEmailInvalid
	}
	return MsgInvalidCustomer
}
