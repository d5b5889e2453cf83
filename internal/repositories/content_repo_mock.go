package repositories

import (
	"sort"
	"sync"

	"kedai/internal/apperr"
	"kedai/internal/models"

	"github.com/google/uuid"
)

// MockPageRepository is an in-memory implementation of PageRepository.
type MockPageRepository struct {
	pages map[string]models.Page
	mu    sync.RWMutex
}

// NewMockPageRepository creates a new instance of MockPageRepository.
func NewMockPageRepository() *MockPageRepository {
	return &MockPageRepository{
		pages: make(map[string]models.Page),
	}
}

// List returns all pages.
func (r *MockPageRepository) List() ([]models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pageList := make([]models.Page, 0, len(r.pages))
	for _, p := range r.pages {
		pageList = append(pageList, p)
	}
	return pageList, nil
}

// GetBySlug returns a page by its slug.
func (r *MockPageRepository) GetBySlug(slug string) (*models.Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.pages[slug]
	if !ok {
		return nil, apperr.NotFoundf("page with slug %s not found", slug)
	}
	return &page, nil
}

// Upsert creates or replaces a page.
func (r *MockPageRepository) Upsert(page *models.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pages[page.Slug] = *page
	return nil
}

// Delete removes a page by its slug.
func (r *MockPageRepository) Delete(slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[slug]; !ok {
		return apperr.NotFoundf("page with slug %s not found for deletion", slug)
	}
	delete(r.pages, slug)
	return nil
}

// MockHeroRepository is an in-memory implementation of HeroRepository.
type MockHeroRepository struct {
	slides map[string]models.HeroSlide
	mu     sync.RWMutex
}

// NewMockHeroRepository creates a new instance of MockHeroRepository.
func NewMockHeroRepository() *MockHeroRepository {
	return &MockHeroRepository{
		slides: make(map[string]models.HeroSlide),
	}
}

// List returns all slides ordered by position.
func (r *MockHeroRepository) List() ([]models.HeroSlide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slideList := make([]models.HeroSlide, 0, len(r.slides))
	for _, s := range r.slides {
		slideList = append(slideList, s)
	}
	sort.Slice(slideList, func(i, j int) bool {
		return slideList[i].Position < slideList[j].Position
	})
	return slideList, nil
}

// Save creates or replaces a slide.
func (r *MockHeroRepository) Save(slide *models.HeroSlide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slide.ID == "" {
		slide.ID = uuid.New().String()
	}
	r.slides[slide.ID] = *slide
	return nil
}

// Delete removes a slide by its ID.
func (r *MockHeroRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slides[id]; !ok {
		return apperr.NotFoundf("hero slide with ID %s not found for deletion", id)
	}
	delete(r.slides, id)
	return nil
}
