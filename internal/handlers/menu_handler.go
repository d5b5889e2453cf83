package handlers

import (
	"log"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for menu items. Reads are public; writes
// are registered behind the admin gate.
type MenuHandler struct {
	service  *services.MenuService
	validate *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public menu routes.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Get("/", h.HandleGetItems)
	menuRoutes.Get("/:id", h.HandleGetItemByID)
}

// RegisterAdminRoutes registers the CMS write routes. The router must already
// carry the auth and admin middleware.
func (h *MenuHandler) RegisterAdminRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Post("/", h.HandleCreateItem)
	menuRoutes.Put("/:id", h.HandleUpdateItem)
	menuRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleGetItems retrieves all menu items.
func (h *MenuHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		log.Printf("Error getting menu items: %v", err)
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single menu item by its ID.
func (h *MenuHandler) HandleGetItemByID(c *fiber.Ctx) error {
	item, err := h.service.GetItemByID(c.Params("id"))
	if err != nil {
		log.Printf("Error getting menu item %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(item)
}

// HandleCreateItem creates a new menu item.
func (h *MenuHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(item); err != nil {
		return respondValidation(c, err)
	}

	if err := h.service.CreateItem(&item); err != nil {
		log.Printf("Error creating menu item: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates an existing menu item.
func (h *MenuHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = c.Params("id")
	if err := h.validate.Struct(item); err != nil {
		return respondValidation(c, err)
	}

	if err := h.service.UpdateItem(&item); err != nil {
		log.Printf("Error updating menu item %s: %v", item.ID, err)
		return respondError(c, err)
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes a menu item.
func (h *MenuHandler) HandleDeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.Params("id")); err != nil {
		log.Printf("Error deleting menu item %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Menu item deleted successfully",
	})
}
