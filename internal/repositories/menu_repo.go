package repositories

import (
	"kedai/internal/models"
)

// MenuRepository defines the interface for menu item data access.
type MenuRepository interface {
	GetAll() ([]models.MenuItem, error)
	GetByID(id string) (*models.MenuItem, error)
	Create(item *models.MenuItem) error
	Update(item *models.MenuItem) error
	Delete(id string) error
}
