package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Linen Dress", Price: decimal.RequireFromString("89.90"), Quantity: 10},
		{ID: 2, Name: "Silk Scarf", Price: decimal.RequireFromString("24.50"), Quantity: 25},
	}

	filter := repositories.ProductFilter{CollectionSlug: "summer"}
	mockRepo.On("List", filter).Return(expectedProducts, nil).Once()

	products, err := service.ListProducts(filter)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: 1, Name: "Linen Dress", Price: decimal.RequireFromString("89.90")}

	mockRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("product 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "New Dress", Price: decimal.RequireFromString("50.00"), Quantity: 20}

	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	assert.Equal(t, models.AvailabilityAvailable, newProduct.Availability)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_ZeroQuantityDefaultsOutOfStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := &models.Product{Name: "Sold Out Dress", Price: decimal.RequireFromString("70.00"), Quantity: 0}
	mockRepo.On("Create", product).Return(nil).Once()

	err := service.CreateProduct(product)

	assert.NoError(t, err)
	assert.Equal(t, models.AvailabilityOutOfStock, product.Availability)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_ExplicitAvailabilityKept(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := &models.Product{
		Name:         "Preorder Dress",
		Price:        decimal.RequireFromString("70.00"),
		Quantity:     0,
		Availability: models.AvailabilityAvailable,
	}
	mockRepo.On("Create", product).Return(nil).Once()

	err := service.CreateProduct(product)

	assert.NoError(t, err)
	assert.Equal(t, models.AvailabilityAvailable, product.Availability)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	updatedProduct := &models.Product{ID: 1, Name: "Linen Dress v2", Price: decimal.RequireFromString("95.00"), Quantity: 8}

	mockRepo.On("Update", updatedProduct).Return(nil).Once()
	err := service.UpdateProduct(updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Update", updatedProduct).Return(fmt.Errorf("product 1: %w", repositories.ErrNotFound)).Once()
	err = service.UpdateProduct(updatedProduct)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	err := service.DeleteProduct(1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", uint(42)).Return(fmt.Errorf("product 42: %w", repositories.ErrNotFound)).Once()
	err = service.DeleteProduct(42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
