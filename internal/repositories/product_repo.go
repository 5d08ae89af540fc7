package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"boutique/internal/models"
)

// ProductFilter narrows product listings. Zero values mean "no filter";
// Limit defaults to 50 and is capped at 100 by the GORM implementation.
type ProductFilter struct {
	CollectionSlug string
	TypeSlug       string
	PriceMin       *decimal.Decimal
	PriceMax       *decimal.Decimal
	Availability   string
	Limit          int
	Offset         int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filter ProductFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// GetByIDs resolves a set of products in one query. Missing IDs are
	// simply absent from the result; the caller decides whether that is
	// an error. It takes a context because order creation runs the lookup
	// under a request-scoped deadline.
	GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
}
