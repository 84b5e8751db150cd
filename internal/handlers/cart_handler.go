package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"omareats/internal/models"
	"omareats/internal/repositories"
	"omareats/internal/services"

	"github.com/gofiber/fiber/v2"
)

// keepAliveInterval bounds how long a disconnected event stream lingers.
const keepAliveInterval = 15 * time.Second

// CartView is the JSON representation of the cart.
type CartView struct {
	Items        models.Cart `json:"items"`
	Count        int         `json:"count"`
	Total        float64     `json:"total"`
	TotalDisplay string      `json:"totalDisplay"`
}

func newCartView(cart models.Cart) CartView {
	if cart == nil {
		cart = models.Cart{}
	}
	total := cart.Total()
	return CartView{
		Items:        cart,
		Count:        cart.ItemCount(),
		Total:        total.InexactFloat64(),
		TotalDisplay: total.StringFixed(2),
	}
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId"`
}

// CartHandler handles HTTP requests for the cart and checkout.
type CartHandler struct {
	cart     *services.CartService
	checkout *services.CheckoutService

	streamsDone chan struct{}
	closeOnce   sync.Once
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *services.CartService, checkout *services.CheckoutService) *CartHandler {
	return &CartHandler{
		cart:        cart,
		checkout:    checkout,
		streamsDone: make(chan struct{}),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Get("/events", h.HandleCartEvents)
	cartRoutes.Post("/checkout", h.HandleCheckout)
}

// HandleGetCart returns the current cart with its count and total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(newCartView(h.cart.Cart(c.UserContext())))
}

// HandleAddItem adds one unit of a catalog product.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "productId is required",
		})
	}

	cart, err := h.cart.AddProductByID(c.UserContext(), req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", req.ProductID),
			})
		}
		log.Printf("Error adding product %s: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(newCartView(cart))
}

// HandleRemoveItem removes one unit of a product; unknown IDs are a no-op.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart := h.cart.RemoveItem(c.UserContext(), c.Params("id"))
	return c.JSON(newCartView(cart))
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.cart.Clear(c.UserContext())
	return c.JSON(newCartView(models.Cart{}))
}

// HandleCheckout submits the cart as an order.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	var info models.CustomerInfo
	if err := c.BodyParser(&info); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(models.OrderResult{
			Success: false,
			Error:   services.MsgInvalidCustomer,
		})
	}

	result := h.checkout.Submit(c.UserContext(), info)
	return c.Status(checkoutStatus(result)).JSON(result)
}

func checkoutStatus(result models.OrderResult) int {
	if result.Success {
		return fiber.StatusOK
	}
	switch result.Error {
	case services.MsgCartEmpty, services.MsgNameRequired, services.MsgEmailRequired,
		services.MsgEmailInvalid, services.MsgInvalidCustomer:
		return fiber.StatusBadRequest
	case services.MsgAlreadySubmitting:
		return fiber.StatusConflict
	}
	return fiber.StatusBadGateway
}

// CloseStreams ends every open and future cart event stream. The server
// cannot shut down while a stream is still being written.
func (h *CartHandler) CloseStreams() {
	h.closeOnce.Do(func() { close(h.streamsDone) })
}

// HandleCartEvents streams cart changes as server-sent events. The stream
// opens with a "snapshot" event of the current cart, followed by one
// "cartUpdated" event per save. Events a slow reader cannot keep up with are dropped.
func (h *CartHandler) HandleCartEvents(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")

	events := make(chan models.Cart, 16)
	unsubscribe := h.cart.Subscribe(func(cart models.Cart) {
		select {
		case events <- cart:
		default:
		}
	})
	snapshot := h.cart.Cart(c.UserContext())

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		if err := writeEvent(w, "snapshot", newCartView(snapshot)); err != nil {
			return
		}

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-h.streamsDone:
				return
			case cart := <-events:
				if err := writeEvent(w, "cartUpdated", newCartView(cart)); err != nil {
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, event string, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, body); err != nil {
		return err
	}
	return w.Flush()
}
