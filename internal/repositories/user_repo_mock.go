package repositories

import (
	"sync"

	"kedai/internal/apperr"
	"kedai/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	r.users[user.ID] = *user
	return nil
}

// GetByUsername returns a user by username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, apperr.NotFoundf("user with username %s not found", username)
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, apperr.NotFoundf("user with email %s not found", email)
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user with ID %s not found", id)
	}
	return &user, nil
}

// GetByResetToken returns a user by an active password-reset token.
func (r *MockUserRepository) GetByResetToken(token string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if token != "" {
		for _, user := range r.users {
			if user.ResetToken == token {
				u := user
				return &u, nil
			}
		}
	}
	return nil, apperr.NotFoundf("no user holds this reset token")
}

// Update replaces an existing user record.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[user.ID]
	if !ok {
		return apperr.NotFoundf("user with ID %s not found for update", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

// MockAddressRepository is an in-memory implementation of AddressRepository.
type MockAddressRepository struct {
	addresses map[string]models.Address
	mu        sync.RWMutex
}

// NewMockAddressRepository creates a new instance of MockAddressRepository.
func NewMockAddressRepository() *MockAddressRepository {
	return &MockAddressRepository{
		addresses: make(map[string]models.Address),
	}
}

// ListByUser returns the saved addresses for a user.
func (r *MockAddressRepository) ListByUser(userID string) ([]models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			list = append(list, a)
		}
	}
	return list, nil
}

// Create saves a new address.
func (r *MockAddressRepository) Create(address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	r.addresses[address.ID] = *address
	return nil
}

// Delete removes an address, scoped to its owner.
func (r *MockAddressRepository) Delete(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.addresses[id]
	if !ok || a.UserID != userID {
		return apperr.NotFoundf("address with ID %s not found for deletion", id)
	}
	delete(r.addresses, id)
	return nil
}
