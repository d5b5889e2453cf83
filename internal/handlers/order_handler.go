package handlers

import (
	"log"

	"kedai/internal/middleware"
	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders: the checkout submission
// boundary, order lookups, and the admin order-management dashboard.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer-facing order routes. The router must
// carry OptionalAuth so checkout works for guests and token holders alike.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Get("/", h.HandleListOwnOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// RegisterAdminRoutes registers the dashboard routes. The router must already
// carry the auth and admin middleware.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleListAllOrders)
	orderRoutes.Get("/stats", h.HandleOrderStats)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// CheckoutRequest is the checkout submission payload: the cart lines at
// submission time plus the customer's contact and delivery details.
type CheckoutRequest struct {
	Lines    []models.CartLine   `json:"lines" validate:"required,min=1,dive"`
	Customer models.CustomerInfo `json:"customer" validate:"required"`
}

// HandleCheckout prices the submitted cart and creates a pending order.
// Unauthenticated callers get a guest order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	order, err := h.service.Checkout(req.Lines, req.Customer, middleware.ActorFrom(c))
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order": order,
	})
}

// HandleListOwnOrders lists the authenticated caller's orders.
func (h *OrderHandler) HandleListOwnOrders(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authorization header is required",
		})
	}

	orders, err := h.service.ListForOwner(actor.ID)
	if err != nil {
		log.Printf("Error listing orders for %s: %v", actor.ID, err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetByID(orderID, middleware.ActorFrom(c))
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleListAllOrders lists every order for the dashboard.
func (h *OrderHandler) HandleListAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAll(middleware.ActorFrom(c))
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleOrderStats returns per-status order counts for the dashboard.
func (h *OrderHandler) HandleOrderStats(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats(middleware.ActorFrom(c))
	if err != nil {
		log.Printf("Error computing order stats: %v", err)
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// HandleUpdateOrderStatus transitions an order to a new status.
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

	order, err := h.service.TransitionStatus(orderID, updateData.Status, middleware.ActorFrom(c))
	if err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		return respondError(c, err)
	}

	return c.JSON(order)
}
