package repositories

import "kedai/internal/models"

// PageRepository defines the interface for CMS page data access.
type PageRepository interface {
	List() ([]models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	Upsert(page *models.Page) error
	Delete(slug string) error
}

// HeroRepository defines the interface for hero carousel slide data access.
type HeroRepository interface {
	List() ([]models.HeroSlide, error)
	Save(slide *models.HeroSlide) error
	Delete(id string) error
}
