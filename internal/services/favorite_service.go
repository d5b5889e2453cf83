package services

import (
	"log"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
)

// FavoriteService routes favorite operations to one of two stores: a local
// in-memory store for guest sessions and a durable store for signed-in users.
// On sign-in the guest's favorites are reconciled into the durable store once.
type FavoriteService struct {
	local  repositories.FavoriteStore
	remote repositories.FavoriteStore
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(local, remote repositories.FavoriteStore) *FavoriteService {
	return &FavoriteService{
		local:  local,
		remote: remote,
	}
}

// storeFor selects the backing store by session state.
func (s *FavoriteService) storeFor(actor *models.Actor) repositories.FavoriteStore {
	if actor != nil {
		return s.remote
	}
	return s.local
}

// ownerFor resolves the owner key: the user id when signed in, otherwise the
// caller-supplied guest session id.
func ownerFor(actor *models.Actor, guestID string) (string, error) {
	if actor != nil {
		return actor.ID, nil
	}
	if guestID == "" {
		return "", apperr.Validationf("a guest session id is required")
	}
	return guestID, nil
}

// GetAll returns the favorited menu item ids for the caller.
func (s *FavoriteService) GetAll(actor *models.Actor, guestID string) ([]string, error) {
	owner, err := ownerFor(actor, guestID)
	if err != nil {
		return nil, err
	}
	items, err := s.storeFor(actor).GetAll(owner)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unexpected, err, "failed to load favorites")
	}
	return items, nil
}

// Add favorites a menu item for the caller.
func (s *FavoriteService) Add(actor *models.Actor, guestID, itemID string) error {
	if itemID == "" {
		return apperr.Validationf("item id is required")
	}
	owner, err := ownerFor(actor, guestID)
	if err != nil {
		return err
	}
	if err := s.storeFor(actor).Add(owner, itemID); err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to add favorite")
	}
	return nil
}

// Remove un-favorites a menu item for the caller.
func (s *FavoriteService) Remove(actor *models.Actor, guestID, itemID string) error {
	owner, err := ownerFor(actor, guestID)
	if err != nil {
		return err
	}
	if err := s.storeFor(actor).Remove(owner, itemID); err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to remove favorite")
	}
	return nil
}

// Reconcile merges a guest session's local favorites into the signed-in
// user's durable favorites. Union semantics, run once per sign-in transition.
// Best effort: a failed copy is logged and skipped, never fatal to sign-in.
func (s *FavoriteService) Reconcile(actor *models.Actor, guestID string) error {
	if actor == nil {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	if guestID == "" {
		return apperr.Validationf("a guest session id is required")
	}

	items, err := s.local.GetAll(guestID)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "failed to read guest favorites")
	}
	for _, itemID := range items {
		if err := s.remote.Add(actor.ID, itemID); err != nil {
			log.Printf("Warning: failed to reconcile favorite %s for user %s: %v", itemID, actor.ID, err)
			continue
		}
		// Drop the local copy once the durable store has it.
		if err := s.local.Remove(guestID, itemID); err != nil {
			log.Printf("Warning: failed to clear guest favorite %s: %v", itemID, err)
		}
	}
	return nil
}
