package services

import (
	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// ProfileService handles the signed-in customer's profile and address book.
type ProfileService struct {
	userRepo    repositories.UserRepository
	addressRepo repositories.AddressRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository, addressRepo repositories.AddressRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		addressRepo: addressRepo,
	}
}

// GetProfile returns the caller's account record, with the password hash
// blanked.
func (s *ProfileService) GetProfile(actor *models.Actor) (*models.User, error) {
	if actor == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	user, err := s.userRepo.GetByID(actor.ID)
	if err != nil {
		return nil, storeErr(err, "failed to load profile")
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile updates the caller's display name and phone number.
func (s *ProfileService) UpdateProfile(actor *models.Actor, fullName, phone string) (*models.User, error) {
	if actor == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	user, err := s.userRepo.GetByID(actor.ID)
	if err != nil {
		return nil, storeErr(err, "failed to load profile")
	}
	user.FullName = fullName
	user.Phone = phone
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, err, "failed to update profile")
	}
	user.Password = ""
	return user, nil
}

// ListAddresses returns the caller's saved addresses.
func (s *ProfileService) ListAddresses(actor *models.Actor) ([]models.Address, error) {
	if actor == nil {
		return nil, apperr.New(apperr.Unauthenticated, "authentication required")
	}
	addresses, err := s.addressRepo.ListByUser(actor.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, err, "failed to list addresses")
	}
	return addresses, nil
}

// AddAddress saves a new address for the caller.
func (s *ProfileService) AddAddress(actor *models.Actor, address *models.Address) error {
	if actor == nil {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	address.UserID = actor.ID
	if err := s.addressRepo.Create(address); err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to save address")
	}
	return nil
}

// RemoveAddress deletes one of the caller's saved addresses.
func (s *ProfileService) RemoveAddress(actor *models.Actor, id string) error {
	if actor == nil {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	if err := s.addressRepo.Delete(actor.ID, id); err != nil {
		return storeErr(err, "failed to delete address")
	}
	return nil
}
