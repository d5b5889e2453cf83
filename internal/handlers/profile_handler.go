package handlers

import (
	"log"

	"kedai/internal/middleware"
	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for the signed-in customer's profile
// and address book.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the profile routes. The router must carry
// AuthRequired.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
	profileRoutes.Get("/addresses", h.HandleListAddresses)
	profileRoutes.Post("/addresses", h.HandleAddAddress)
	profileRoutes.Delete("/addresses/:id", h.HandleRemoveAddress)
}

// HandleGetProfile returns the caller's account.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.service.GetProfile(middleware.ActorFrom(c))
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateProfile updates display name and phone.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name" validate:"omitempty,max=100"`
		Phone    string `json:"phone" validate:"omitempty,max=30"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.service.UpdateProfile(middleware.ActorFrom(c), req.FullName, req.Phone)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleListAddresses returns the caller's saved addresses.
func (h *ProfileHandler) HandleListAddresses(c *fiber.Ctx) error {
	addresses, err := h.service.ListAddresses(middleware.ActorFrom(c))
	if err != nil {
		log.Printf("Error listing addresses: %v", err)
		return respondError(c, err)
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	return c.JSON(addresses)
}

// HandleAddAddress saves a new address.
func (h *ProfileHandler) HandleAddAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(address); err != nil {
		return respondValidation(c, err)
	}

	if err := h.service.AddAddress(middleware.ActorFrom(c), &address); err != nil {
		log.Printf("Error saving address: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleRemoveAddress deletes a saved address.
func (h *ProfileHandler) HandleRemoveAddress(c *fiber.Ctx) error {
	if err := h.service.RemoveAddress(middleware.ActorFrom(c), c.Params("id")); err != nil {
		log.Printf("Error deleting address: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Address deleted successfully",
	})
}
