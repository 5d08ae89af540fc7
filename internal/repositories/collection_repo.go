package repositories

import "boutique/internal/models"

// CollectionRepository defines the interface for collection data access.
type CollectionRepository interface {
	GetAll() ([]models.Collection, error)
	GetBySlug(slug string) (*models.Collection, error)
	Create(collection *models.Collection) error
	Update(collection *models.Collection) error
	Delete(slug string) error
}
