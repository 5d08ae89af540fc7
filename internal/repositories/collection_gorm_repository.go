package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"boutique/internal/models"
)

// GORMCollectionRepository is a GORM implementation of CollectionRepository.
type GORMCollectionRepository struct {
	db *gorm.DB
}

// NewGORMCollectionRepository creates a new instance of GORMCollectionRepository.
func NewGORMCollectionRepository(db *gorm.DB) *GORMCollectionRepository {
	return &GORMCollectionRepository{
		db: db,
	}
}

// GetAll retrieves all collections ordered by title.
func (r *GORMCollectionRepository) GetAll() ([]models.Collection, error) {
	var collections []models.Collection
	if err := r.db.Order("title").Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to get all collections: %w", err)
	}
	return collections, nil
}

// GetBySlug retrieves a single collection by its slug.
func (r *GORMCollectionRepository) GetBySlug(slug string) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.First(&collection, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("collection %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get collection %s: %w", slug, err)
	}
	return &collection, nil
}

// Create creates a new collection.
func (r *GORMCollectionRepository) Create(collection *models.Collection) error {
	if err := r.db.Create(collection).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("collection %s: %w", collection.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// Update updates an existing collection.
func (r *GORMCollectionRepository) Update(collection *models.Collection) error {
	res := r.db.Model(&models.Collection{}).
		Where("slug = ?", collection.Slug).
		Updates(map[string]interface{}{
			"title":        collection.Title,
			"header_image": collection.HeaderImage,
			"description":  collection.Description,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update collection %s: %w", collection.Slug, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("collection %s: %w", collection.Slug, ErrNotFound)
	}
	return nil
}

// Delete deletes a collection by its slug.
func (r *GORMCollectionRepository) Delete(slug string) error {
	res := r.db.Delete(&models.Collection{}, "slug = ?", slug)
	if res.Error != nil {
		return fmt.Errorf("failed to delete collection %s: %w", slug, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("collection %s: %w", slug, ErrNotFound)
	}
	return nil
}
