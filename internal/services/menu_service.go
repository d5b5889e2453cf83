package services

import (
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// MenuService handles business logic related to menu items.
type MenuService struct {
	repo repositories.MenuRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(repo repositories.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// GetAllItems retrieves all menu items.
func (s *MenuService) GetAllItems() ([]models.MenuItem, error) {
	return s.repo.GetAll()
}

// GetItemByID retrieves a single menu item by its ID.
func (s *MenuService) GetItemByID(id string) (*models.MenuItem, error) {
	return s.repo.GetByID(id)
}

// CreateItem creates a new menu item.
func (s *MenuService) CreateItem(item *models.MenuItem) error {
	return s.repo.Create(item)
}

// UpdateItem updates an existing menu item.
func (s *MenuService) UpdateItem(item *models.MenuItem) error {
	return s.repo.Update(item)
}

// DeleteItem deletes a menu item by its ID.
func (s *MenuService) DeleteItem(id string) error {
	return s.repo.Delete(id)
}
