package repositories

import (
	"fmt"

	"kedai/internal/apperr"
	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMPageRepository is a GORM implementation of PageRepository.
type GORMPageRepository struct {
	db *gorm.DB
}

// NewGORMPageRepository creates a new instance of GORMPageRepository.
func NewGORMPageRepository(db *gorm.DB) *GORMPageRepository {
	return &GORMPageRepository{
		db: db,
	}
}

// List retrieves all pages.
func (r *GORMPageRepository) List() ([]models.Page, error) {
	var pages []models.Page
	if err := r.db.Find(&pages).Error; err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// GetBySlug retrieves a page by its slug.
func (r *GORMPageRepository) GetBySlug(slug string) (*models.Page, error) {
	var page models.Page
	if err := r.db.First(&page, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFoundf("page with slug %s not found", slug)
		}
		return nil, fmt.Errorf("failed to get page by slug %s: %w", slug, err)
	}
	return &page, nil
}

// Upsert creates the page or replaces its content if the slug exists.
func (r *GORMPageRepository) Upsert(page *models.Page) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "body", "updated_at"}),
	}).Create(page).Error
	if err != nil {
		return fmt.Errorf("failed to upsert page %s: %w", page.Slug, err)
	}
	return nil
}

// Delete removes a page by its slug.
func (r *GORMPageRepository) Delete(slug string) error {
	res := r.db.Delete(&models.Page{}, "slug = ?", slug)
	if res.Error != nil {
		return fmt.Errorf("failed to delete page: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("page with slug %s not found for deletion", slug)
	}
	return nil
}

// GORMHeroRepository is a GORM implementation of HeroRepository.
type GORMHeroRepository struct {
	db *gorm.DB
}

// NewGORMHeroRepository creates a new instance of GORMHeroRepository.
func NewGORMHeroRepository(db *gorm.DB) *GORMHeroRepository {
	return &GORMHeroRepository{
		db: db,
	}
}

// List retrieves all slides, ordered by position.
func (r *GORMHeroRepository) List() ([]models.HeroSlide, error) {
	var slides []models.HeroSlide
	if err := r.db.Order("position ASC").Find(&slides).Error; err != nil {
		return nil, fmt.Errorf("failed to list hero slides: %w", err)
	}
	return slides, nil
}

// Save creates a slide, or replaces it when the ID already exists.
func (r *GORMHeroRepository) Save(slide *models.HeroSlide) error {
	if slide.ID == "" {
		slide.ID = uuid.New().String()
	}
	if err := r.db.Save(slide).Error; err != nil {
		return fmt.Errorf("failed to save hero slide: %w", err)
	}
	return nil
}

// Delete removes a slide by its ID.
func (r *GORMHeroRepository) Delete(id string) error {
	res := r.db.Delete(&models.HeroSlide{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete hero slide: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("hero slide with ID %s not found for deletion", id)
	}
	return nil
}
