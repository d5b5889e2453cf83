package services

import (
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// ContentService handles the CMS-managed marketing content: pages and the
// hero carousel.
type ContentService struct {
	pages repositories.PageRepository
	hero  repositories.HeroRepository
}

// NewContentService creates a new ContentService.
func NewContentService(pages repositories.PageRepository, hero repositories.HeroRepository) *ContentService {
	return &ContentService{
		pages: pages,
		hero:  hero,
	}
}

// ListPages retrieves all pages.
func (s *ContentService) ListPages() ([]models.Page, error) {
	return s.pages.List()
}

// GetPage retrieves a page by its slug.
func (s *ContentService) GetPage(slug string) (*models.Page, error) {
	return s.pages.GetBySlug(slug)
}

// SavePage creates or replaces a page.
func (s *ContentService) SavePage(page *models.Page) error {
	return s.pages.Upsert(page)
}

// DeletePage removes a page by its slug.
func (s *ContentService) DeletePage(slug string) error {
	return s.pages.Delete(slug)
}

// ListHeroSlides retrieves the carousel slides in display order.
func (s *ContentService) ListHeroSlides() ([]models.HeroSlide, error) {
	return s.hero.List()
}

// SaveHeroSlide creates or replaces a carousel slide.
func (s *ContentService) SaveHeroSlide(slide *models.HeroSlide) error {
	return s.hero.Save(slide)
}

// DeleteHeroSlide removes a carousel slide by its ID.
func (s *ContentService) DeleteHeroSlide(id string) error {
	return s.hero.Delete(id)
}
