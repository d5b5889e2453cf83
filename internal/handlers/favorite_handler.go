package handlers

import (
	"log"

	"kedai/internal/middleware"
	"kedai/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FavoriteHandler handles HTTP requests for favorites. Guests identify their
// session with the X-Guest-ID header; signed-in users are identified by their
// token.
type FavoriteHandler struct {
	service *services.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		service: service,
	}
}

// RegisterRoutes registers the favorite routes. The router must carry
// OptionalAuth.
func (h *FavoriteHandler) RegisterRoutes(router fiber.Router) {
	favRoutes := router.Group("/favorites")
	favRoutes.Get("/", h.HandleGetFavorites)
	favRoutes.Post("/sync", h.HandleSyncFavorites) // fixed path before the :itemID wildcard
	favRoutes.Post("/:itemID", h.HandleAddFavorite)
	favRoutes.Delete("/:itemID", h.HandleRemoveFavorite)
}

// HandleGetFavorites returns the caller's favorited item ids.
func (h *FavoriteHandler) HandleGetFavorites(c *fiber.Ctx) error {
	items, err := h.service.GetAll(middleware.ActorFrom(c), c.Get("X-Guest-ID"))
	if err != nil {
		log.Printf("Error loading favorites: %v", err)
		return respondError(c, err)
	}
	if items == nil {
		items = []string{}
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleAddFavorite stars a menu item.
func (h *FavoriteHandler) HandleAddFavorite(c *fiber.Ctx) error {
	if err := h.service.Add(middleware.ActorFrom(c), c.Get("X-Guest-ID"), c.Params("itemID")); err != nil {
		log.Printf("Error adding favorite: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Favorite added",
	})
}

// HandleRemoveFavorite un-stars a menu item.
func (h *FavoriteHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	if err := h.service.Remove(middleware.ActorFrom(c), c.Get("X-Guest-ID"), c.Params("itemID")); err != nil {
		log.Printf("Error removing favorite: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Favorite removed",
	})
}

// HandleSyncFavorites merges guest favorites into the signed-in account.
// Called once by the client on the sign-in transition.
func (h *FavoriteHandler) HandleSyncFavorites(c *fiber.Ctx) error {
	if err := h.service.Reconcile(middleware.ActorFrom(c), c.Get("X-Guest-ID")); err != nil {
		log.Printf("Error syncing favorites: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Favorites synced",
	})
}
