package models

import "gorm.io/gorm"

// MenuItem is a sellable item on the shop menu. Prices are stored in minor
// currency units (rupiah), never floats.
type MenuItem struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,max=36"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	ImageRef    string `json:"image_ref" validate:"omitempty,max=500"`
	Category    string `json:"category" validate:"omitempty,oneof=coffee tea food"`
	Available   bool   `json:"available"`
	gorm.Model         // CreatedAt, UpdatedAt, DeletedAt
}
