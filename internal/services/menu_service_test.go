package services_test

import (
	"fmt"
	"testing"

	"kedai/internal/apperr"
	"kedai/internal/models"
	"kedai/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMenuRepository is a mock implementation of repositories.MenuRepository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) GetAll() ([]models.MenuItem, error) {
	args := m.Called()
	return args.Get(0).([]models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) GetByID(id string) (*models.MenuItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Create(item *models.MenuItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockMenuRepository) Update(item *models.MenuItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockMenuRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestMenuService_GetAllItems(t *testing.T) {
	mockRepo := new(MockMenuRepository)
	service := services.NewMenuService(mockRepo)

	expectedItems := []models.MenuItem{
		{ID: "item-1", Name: "Kopi Susu", Price: 28000, Category: "coffee", Available: true},
		{ID: "item-2", Name: "Americano", Price: 25000, Category: "coffee", Available: true},
	}

	mockRepo.On("GetAll").Return(expectedItems, nil).Once()

	items, err := service.GetAllItems()

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, expectedItems, items)
	mockRepo.AssertExpectations(t)
}

func TestMenuService_GetItemByID(t *testing.T) {
	mockRepo := new(MockMenuRepository)
	service := services.NewMenuService(mockRepo)

	expectedItem := &models.MenuItem{ID: "item-1", Name: "Kopi Susu", Price: 28000}

	// Test successful retrieval
	mockRepo.On("GetByID", "item-1").Return(expectedItem, nil).Once()
	item, err := service.GetItemByID("item-1")
	assert.NoError(t, err)
	assert.Equal(t, expectedItem, item)
	mockRepo.AssertExpectations(t)

	// Test item not found
	mockRepo.On("GetByID", "item-99").Return(nil, apperr.NotFoundf("menu item with ID item-99 not found")).Once()
	item, err = service.GetItemByID("item-99")
	assert.Error(t, err)
	assert.Nil(t, item)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	mockRepo.AssertExpectations(t)
}

func TestMenuService_CreateItem(t *testing.T) {
	mockRepo := new(MockMenuRepository)
	service := services.NewMenuService(mockRepo)

	newItem := &models.MenuItem{Name: "Matcha Latte", Price: 35000, Category: "tea"}

	// Test successful creation
	mockRepo.On("Create", newItem).Return(nil).Once()
	err := service.CreateItem(newItem)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newItem).Return(fmt.Errorf("database error")).Once()
	err = service.CreateItem(newItem)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestMenuService_UpdateItem(t *testing.T) {
	mockRepo := new(MockMenuRepository)
	service := services.NewMenuService(mockRepo)

	updatedItem := &models.MenuItem{ID: "item-1", Name: "Kopi Susu Gula Aren", Price: 30000}

	// Test successful update
	mockRepo.On("Update", updatedItem).Return(nil).Once()
	err := service.UpdateItem(updatedItem)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test update failure (item not in repo)
	missing := &models.MenuItem{ID: "item-99", Name: "Gone", Price: 1000}
	mockRepo.On("Update", missing).Return(apperr.NotFoundf("menu item with ID item-99 not found for update")).Once()
	err = service.UpdateItem(missing)
	assert.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	mockRepo.AssertExpectations(t)
}

func TestMenuService_DeleteItem(t *testing.T) {
	mockRepo := new(MockMenuRepository)
	service := services.NewMenuService(mockRepo)

	// Test successful deletion
	mockRepo.On("Delete", "item-1").Return(nil).Once()
	err := service.DeleteItem("item-1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (item not found)
	mockRepo.On("Delete", "item-99").Return(apperr.NotFoundf("menu item with ID item-99 not found for deletion")).Once()
	err = service.DeleteItem("item-99")
	assert.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	mockRepo.AssertExpectations(t)
}
