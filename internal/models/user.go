package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Admin accounts are seeded or promoted out of band; registration
// always yields a customer.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a registered account.
type User struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string    `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"` // Blanked before every response
	Role       string    `json:"role" gorm:"type:varchar(16);default:customer"`
	FullName   string    `json:"full_name" gorm:"type:varchar(100)"`
	Phone      string    `json:"phone" gorm:"type:varchar(30)"`
	ResetToken string    `json:"-" gorm:"index;type:varchar(36)"`
	ResetUntil time.Time `json:"-"`
	gorm.Model           // CreatedAt, UpdatedAt, DeletedAt
}

// Address is a saved delivery address on a user's address book.
type Address struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID string `json:"user_id" gorm:"index;type:varchar(36)"`
	Label  string `json:"label" validate:"required,max=50"`
	Street string `json:"street" validate:"required,max=255"`
	City   string `json:"city" validate:"required,max=100"`
	Notes  string `json:"notes" validate:"omitempty,max=255"`
	gorm.Model
}

// Actor is the identity attached to a request after token validation.
// A nil *Actor means the caller is unauthenticated.
type Actor struct {
	ID       string
	Username string
	Role     string
}

// IsAdmin is the single authorization predicate for admin-gated operations.
// Every admin check in the system goes through here.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
