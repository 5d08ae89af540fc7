package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"boutique/internal/models"
	"boutique/internal/repositories"
)

// CollectionService handles business logic related to collections.
type CollectionService struct {
	repo repositories.CollectionRepository
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(repo repositories.CollectionRepository) *CollectionService {
	return &CollectionService{repo: repo}
}

func (s *CollectionService) ListCollections() ([]models.Collection, error) {
	return s.repo.GetAll()
}

func (s *CollectionService) GetCollection(slug string) (*models.Collection, error) {
	return s.repo.GetBySlug(slug)
}

func (s *CollectionService) CreateCollection(c *models.Collection) error {
	return s.repo.Create(c)
}

func (s *CollectionService) UpdateCollection(c *models.Collection) error {
	return s.repo.Update(c)
}

func (s *CollectionService) DeleteCollection(slug string) error {
	return s.repo.Delete(slug)
}

// ProductTypeService handles business logic related to product types.
type ProductTypeService struct {
	repo repositories.ProductTypeRepository
}

// NewProductTypeService creates a new ProductTypeService.
func NewProductTypeService(repo repositories.ProductTypeRepository) *ProductTypeService {
	return &ProductTypeService{repo: repo}
}

func (s *ProductTypeService) ListTypes() ([]models.ProductType, error) {
	return s.repo.GetAll()
}

func (s *ProductTypeService) GetType(slug string) (*models.ProductType, error) {
	return s.repo.GetBySlug(slug)
}

func (s *ProductTypeService) CreateType(pt *models.ProductType) error {
	return s.repo.Create(pt)
}

func (s *ProductTypeService) UpdateType(pt *models.ProductType) error {
	return s.repo.Update(pt)
}

func (s *ProductTypeService) DeleteType(slug string) error {
	return s.repo.Delete(slug)
}

// PageInfoService manages the JSON documents behind static pages.
type PageInfoService struct {
	repo repositories.PageInfoRepository
}

// NewPageInfoService creates a new PageInfoService.
func NewPageInfoService(repo repositories.PageInfoRepository) *PageInfoService {
	return &PageInfoService{repo: repo}
}

// GetPage returns the stored document for one of the known page slugs.
func (s *PageInfoService) GetPage(slug string) (*models.PageInfo, error) {
	if !models.KnownPageSlug(slug) {
		return nil, fmt.Errorf("page %s: %w", slug, repositories.ErrNotFound)
	}
	return s.repo.GetBySlug(slug)
}

// UpdatePage replaces the full document for a page. The payload must be a
// JSON object.
func (s *PageInfoService) UpdatePage(slug string, data json.RawMessage) (*models.PageInfo, error) {
	if !models.KnownPageSlug(slug) {
		return nil, fmt.Errorf("page %s: %w", slug, repositories.ErrNotFound)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("page document must be a JSON object: %w", err)
	}

	page := &models.PageInfo{
		Slug: slug,
		Data: datatypes.JSON(data),
	}
	if err := s.repo.Upsert(page); err != nil {
		return nil, err
	}
	return page, nil
}
