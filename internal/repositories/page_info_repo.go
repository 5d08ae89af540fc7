package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"boutique/internal/models"
)

// PageInfoRepository defines the interface for page document access.
type PageInfoRepository interface {
	GetBySlug(slug string) (*models.PageInfo, error)
	// Upsert replaces the whole JSON document for the slug, inserting the
	// row if it does not exist yet.
	Upsert(page *models.PageInfo) error
}

// GORMPageInfoRepository is a GORM implementation of PageInfoRepository.
type GORMPageInfoRepository struct {
	db *gorm.DB
}

// NewGORMPageInfoRepository creates a new instance of GORMPageInfoRepository.
func NewGORMPageInfoRepository(db *gorm.DB) *GORMPageInfoRepository {
	return &GORMPageInfoRepository{
		db: db,
	}
}

// GetBySlug retrieves the JSON document for a page.
func (r *GORMPageInfoRepository) GetBySlug(slug string) (*models.PageInfo, error) {
	var page models.PageInfo
	if err := r.db.First(&page, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("page %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get page %s: %w", slug, err)
	}
	return &page, nil
}

// Upsert inserts or fully replaces the page document.
func (r *GORMPageInfoRepository) Upsert(page *models.PageInfo) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(page).Error
	if err != nil {
		return fmt.Errorf("failed to upsert page %s: %w", page.Slug, err)
	}
	return nil
}
