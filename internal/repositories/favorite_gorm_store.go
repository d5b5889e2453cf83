package repositories

import (
	"fmt"

	"kedai/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMFavoriteStore is a GORM implementation of FavoriteStore for signed-in
// users.
type GORMFavoriteStore struct {
	db *gorm.DB
}

// NewGORMFavoriteStore creates a new instance of GORMFavoriteStore.
func NewGORMFavoriteStore(db *gorm.DB) *GORMFavoriteStore {
	return &GORMFavoriteStore{
		db: db,
	}
}

// GetAll returns the favorited item ids for an owner, oldest first.
func (s *GORMFavoriteStore) GetAll(ownerID string) ([]string, error) {
	var favorites []models.Favorite
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites for %s: %w", ownerID, err)
	}
	items := make([]string, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, f.ItemID)
	}
	return items, nil
}

// Add records a favorite. Re-adding an existing favorite is a no-op.
func (s *GORMFavoriteStore) Add(ownerID, itemID string) error {
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Favorite{OwnerID: ownerID, ItemID: itemID}).Error
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a favorite. Removing an absent favorite is a no-op.
func (s *GORMFavoriteStore) Remove(ownerID, itemID string) error {
	if err := s.db.Where("owner_id = ? AND item_id = ?", ownerID, itemID).Delete(&models.Favorite{}).Error; err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
