package repositories

import (
	"kedai/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// append-only: there is no delete, only status updates.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByOwner(ownerID string) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	CountByStatus(status string) (int64, error)
}
