package handlers

import (
	"errors"
	"fmt"
	"log"

	"omareats/internal/models"
	"omareats/internal/repositories"
	"omareats/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for received orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterPublicRoutes registers the order endpoint the storefront posts to.
func (h *OrderHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Post("/order", h.HandleAcceptOrder)
}

// RegisterRoutes registers the staff order routes on an /orders router that
// already carries the authentication middleware.
func (h *OrderHandler) RegisterRoutes(orderRoutes fiber.Router) {
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleAcceptOrder records an order posted by the storefront and answers
// with the {success, orderId, error} shape the checkout expects.
func (h *OrderHandler) HandleAcceptOrder(c *fiber.Ctx) error {
	var payload models.OrderPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing order body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(models.OrderResult{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	order, err := h.service.AcceptOrder(payload)
	if err != nil {
		log.Printf("Error accepting order: %v", err)
		if errors.Is(err, services.ErrInvalidOrder) {
			return c.Status(fiber.StatusBadRequest).JSON(models.OrderResult{
				Success: false,
				Error:   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.OrderResult{
			Success: false,
			Error:   "Could not accept order",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orderId": order.ID,
		"message": "Order received successfully",
	})
}

// HandleGetOrders retrieves all received orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleUpdateOrderStatus moves an order to another kitchen status.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	err := h.service.UpdateOrderStatus(orderID, updateData.Status)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Order update failed: %v", err),
		})
	case errors.Is(err, repositories.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", orderID),
		})
	default:
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, updateData.Status),
	})
}
