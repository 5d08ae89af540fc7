package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"boutique/internal/models"
)

// GORMProductTypeRepository is a GORM implementation of ProductTypeRepository.
type GORMProductTypeRepository struct {
	db *gorm.DB
}

// NewGORMProductTypeRepository creates a new instance of GORMProductTypeRepository.
func NewGORMProductTypeRepository(db *gorm.DB) *GORMProductTypeRepository {
	return &GORMProductTypeRepository{
		db: db,
	}
}

// GetAll retrieves all product types ordered by title.
func (r *GORMProductTypeRepository) GetAll() ([]models.ProductType, error) {
	var types []models.ProductType
	if err := r.db.Order("title").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to get all product types: %w", err)
	}
	return types, nil
}

// GetBySlug retrieves a single product type by its slug.
func (r *GORMProductTypeRepository) GetBySlug(slug string) (*models.ProductType, error) {
	var pt models.ProductType
	if err := r.db.First(&pt, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product type %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product type %s: %w", slug, err)
	}
	return &pt, nil
}

// Create creates a new product type.
func (r *GORMProductTypeRepository) Create(pt *models.ProductType) error {
	if err := r.db.Create(pt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("product type %s: %w", pt.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to create product type: %w", err)
	}
	return nil
}

// Update updates the title of an existing product type.
func (r *GORMProductTypeRepository) Update(pt *models.ProductType) error {
	res := r.db.Model(&models.ProductType{}).
		Where("slug = ?", pt.Slug).
		Update("title", pt.Title)
	if res.Error != nil {
		return fmt.Errorf("failed to update product type %s: %w", pt.Slug, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product type %s: %w", pt.Slug, ErrNotFound)
	}
	return nil
}

// Delete deletes a product type by its slug.
func (r *GORMProductTypeRepository) Delete(slug string) error {
	res := r.db.Delete(&models.ProductType{}, "slug = ?", slug)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product type %s: %w", slug, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product type %s: %w", slug, ErrNotFound)
	}
	return nil
}
