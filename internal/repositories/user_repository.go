package repositories

import "kedai/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	Update(user *models.User) error
}

// AddressRepository defines the interface for the saved-address book.
type AddressRepository interface {
	ListByUser(userID string) ([]models.Address, error)
	Create(address *models.Address) error
	Delete(userID, id string) error
}
