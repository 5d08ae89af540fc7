package services

import (
	"boutique/internal/models"
	"boutique/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts retrieves products matching the filter.
func (s *ProductService) ListProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.List(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product. A product created with zero quantity
// and no explicit availability defaults to out of stock.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Availability == "" {
		if product.Quantity == 0 {
			product.Availability = models.AvailabilityOutOfStock
		} else {
			product.Availability = models.AvailabilityAvailable
		}
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID. Existing order items keep their
// price snapshot; only the display name join goes empty.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.repo.Delete(id)
}
