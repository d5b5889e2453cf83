package models

import (
	"time"

	"gorm.io/gorm"
)

// Page is a CMS-managed marketing page, addressed by slug. Pages are
// hard-deleted so a deleted slug can be recreated through the upsert.
type Page struct {
	Slug      string    `json:"slug" gorm:"primaryKey;type:varchar(100)" validate:"required,max=100"`
	Title     string    `json:"title" validate:"required,max=200"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HeroSlide is one slide of the home-page hero carousel, ordered by Position.
type HeroSlide struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Position int    `json:"position" validate:"gte=0"`
	ImageRef string `json:"image_ref" validate:"required,max=500"`
	Heading  string `json:"heading" validate:"required,max=200"`
	Subtext  string `json:"subtext" validate:"omitempty,max=500"`
	CTALabel string `json:"cta_label" validate:"omitempty,max=50"`
	CTALink  string `json:"cta_link" validate:"omitempty,max=500"`
	gorm.Model
}
