package services_test

import (
	"testing"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestFavoriteService_GuestUsesLocalStore(t *testing.T) {
	local := repositories.NewMemoryFavoriteStore()
	remote := repositories.NewMemoryFavoriteStore()
	service := services.NewFavoriteService(local, remote)

	err := service.Add(nil, "guest-abc", "item-1")
	assert.NoError(t, err)
	err = service.Add(nil, "guest-abc", "item-2")
	assert.NoError(t, err)

	items, err := service.GetAll(nil, "guest-abc")
	assert.NoError(t, err)
	assert.Equal(t, []string{"item-1", "item-2"}, items)

	// Nothing landed in the durable store
	remoteItems, _ := remote.GetAll("guest-abc")
	assert.Empty(t, remoteItems)
}

func TestFavoriteService_SignedInUsesRemoteStore(t *testing.T) {
	local := repositories.NewMemoryFavoriteStore()
	remote := repositories.NewMemoryFavoriteStore()
	service := services.NewFavoriteService(local, remote)
	actor := &models.Actor{ID: "user-1", Role: models.RoleCustomer}

	assert.NoError(t, service.Add(actor, "", "item-3"))

	items, err := service.GetAll(actor, "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"item-3"}, items)

	assert.NoError(t, service.Remove(actor, "", "item-3"))
	items, _ = service.GetAll(actor, "")
	assert.Empty(t, items)
}

func TestFavoriteService_GuestRequiresSessionID(t *testing.T) {
	service := services.NewFavoriteService(repositories.NewMemoryFavoriteStore(), repositories.NewMemoryFavoriteStore())

	_, err := service.GetAll(nil, "")
	assert.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestFavoriteService_ReconcileMergesGuestIntoUser(t *testing.T) {
	local := repositories.NewMemoryFavoriteStore()
	remote := repositories.NewMemoryFavoriteStore()
	service := services.NewFavoriteService(local, remote)
	actor := &models.Actor{ID: "user-1", Role: models.RoleCustomer}

	// Starred as a guest, then one more after signing in earlier on another device
	assert.NoError(t, local.Add("guest-abc", "item-1"))
	assert.NoError(t, local.Add("guest-abc", "item-2"))
	assert.NoError(t, remote.Add("user-1", "item-2"))
	assert.NoError(t, remote.Add("user-1", "item-3"))

	err := service.Reconcile(actor, "guest-abc")
	assert.NoError(t, err)

	// Union semantics, no duplicates
	items, _ := remote.GetAll("user-1")
	assert.ElementsMatch(t, []string{"item-1", "item-2", "item-3"}, items)

	// The guest copy is drained
	guestItems, _ := local.GetAll("guest-abc")
	assert.Empty(t, guestItems)
}

func TestFavoriteService_ReconcileRequiresSignIn(t *testing.T) {
	service := services.NewFavoriteService(repositories.NewMemoryFavoriteStore(), repositories.NewMemoryFavoriteStore())

	err := service.Reconcile(nil, "guest-abc")
	assert.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Unauthenticated))
}
