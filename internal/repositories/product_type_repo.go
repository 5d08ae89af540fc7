package repositories

import "boutique/internal/models"

// ProductTypeRepository defines the interface for product type data access.
type ProductTypeRepository interface {
	GetAll() ([]models.ProductType, error)
	GetBySlug(slug string) (*models.ProductType, error)
	Create(pt *models.ProductType) error
	Update(pt *models.ProductType) error
	Delete(slug string) error
}
