package repositories

import (
	"fmt"

	"kedai/internal/apperr"
	"kedai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMenuRepository is a GORM implementation of MenuRepository.
type GORMMenuRepository struct {
	db *gorm.DB
}

// NewGORMMenuRepository creates a new instance of GORMMenuRepository.
func NewGORMMenuRepository(db *gorm.DB) *GORMMenuRepository {
	return &GORMMenuRepository{
		db: db,
	}
}

// GetAll retrieves all menu items from the database.
func (r *GORMMenuRepository) GetAll() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all menu items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single menu item by its ID from the database.
func (r *GORMMenuRepository) GetByID(id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFoundf("menu item with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get menu item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create creates a new menu item in the database.
func (r *GORMMenuRepository) Create(item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

// Update updates an existing menu item in the database.
func (r *GORMMenuRepository) Update(item *models.MenuItem) error {
	res := r.db.Save(item) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound when no rows match,
		// so we check RowsAffected.
		return apperr.NotFoundf("menu item with ID %s not found for update", item.ID)
	}
	return nil
}

// Delete deletes a menu item by its ID from the database.
func (r *GORMMenuRepository) Delete(id string) error {
	res := r.db.Delete(&models.MenuItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("menu item with ID %s not found for deletion", id)
	}
	return nil
}
