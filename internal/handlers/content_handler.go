package handlers

import (
	"log"

	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles HTTP requests for CMS content: marketing pages and
// the hero carousel. Reads are public; writes sit behind the admin gate.
type ContentHandler struct {
	service  *services.ContentService
	validate *validator.Validate
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(service *services.ContentService) *ContentHandler {
	return &ContentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public content routes.
func (h *ContentHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/pages", h.HandleListPages)
	router.Get("/pages/:slug", h.HandleGetPage)
	router.Get("/hero", h.HandleListHeroSlides)
}

// RegisterAdminRoutes registers the CMS write routes. The router must already
// carry the auth and admin middleware.
func (h *ContentHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Put("/pages/:slug", h.HandleSavePage)
	router.Delete("/pages/:slug", h.HandleDeletePage)
	router.Put("/hero", h.HandleSaveHeroSlide)
	router.Delete("/hero/:id", h.HandleDeleteHeroSlide)
}

// HandleListPages returns all pages.
func (h *ContentHandler) HandleListPages(c *fiber.Ctx) error {
	pages, err := h.service.ListPages()
	if err != nil {
		log.Printf("Error listing pages: %v", err)
		return respondError(c, err)
	}
	return c.JSON(pages)
}

// HandleGetPage returns a page by slug.
func (h *ContentHandler) HandleGetPage(c *fiber.Ctx) error {
	page, err := h.service.GetPage(c.Params("slug"))
	if err != nil {
		log.Printf("Error getting page %s: %v", c.Params("slug"), err)
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleSavePage creates or replaces a page.
func (h *ContentHandler) HandleSavePage(c *fiber.Ctx) error {
	var page models.Page
	if err := c.BodyParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	page.Slug = c.Params("slug")
	if err := h.validate.Struct(page); err != nil {
		return respondValidation(c, err)
	}

	if err := h.service.SavePage(&page); err != nil {
		log.Printf("Error saving page %s: %v", page.Slug, err)
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleDeletePage removes a page.
func (h *ContentHandler) HandleDeletePage(c *fiber.Ctx) error {
	if err := h.service.DeletePage(c.Params("slug")); err != nil {
		log.Printf("Error deleting page %s: %v", c.Params("slug"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Page deleted successfully",
	})
}

// HandleListHeroSlides returns the carousel slides in display order.
func (h *ContentHandler) HandleListHeroSlides(c *fiber.Ctx) error {
	slides, err := h.service.ListHeroSlides()
	if err != nil {
		log.Printf("Error listing hero slides: %v", err)
		return respondError(c, err)
	}
	return c.JSON(slides)
}

// HandleSaveHeroSlide creates or replaces a carousel slide.
func (h *ContentHandler) HandleSaveHeroSlide(c *fiber.Ctx) error {
	var slide models.HeroSlide
	if err := c.BodyParser(&slide); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(slide); err != nil {
		return respondValidation(c, err)
	}

	if err := h.service.SaveHeroSlide(&slide); err != nil {
		log.Printf("Error saving hero slide: %v", err)
		return respondError(c, err)
	}
	return c.JSON(slide)
}

// HandleDeleteHeroSlide removes a carousel slide.
func (h *ContentHandler) HandleDeleteHeroSlide(c *fiber.Ctx) error {
	if err := h.service.DeleteHeroSlide(c.Params("id")); err != nil {
		log.Printf("Error deleting hero slide %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Hero slide deleted successfully",
	})
}
