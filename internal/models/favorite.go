package models

import "time"

// Favorite links an owner (user id or guest id) to a menu item they starred.
// Favorites are hard-deleted: a soft-deleted row would keep holding the
// unique index and block re-adding.
type Favorite struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	OwnerID   string    `json:"owner_id" gorm:"uniqueIndex:idx_fav_owner_item;type:varchar(48)"`
	ItemID    string    `json:"item_id" gorm:"uniqueIndex:idx_fav_owner_item;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
}
