package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Availability values for a product.
const (
	AvailabilityAvailable  = "available"
	AvailabilityOutOfStock = "out_of_stock"
)

// Product represents a product in the store catalog.
// Image URLs and colors are stored as JSON so the model works on both
// PostgreSQL and the SQLite driver used in tests.
type Product struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null" validate:"required"`
	CollectionSlug string          `json:"collection_slug" gorm:"type:varchar(191);index" validate:"required,max=191"`
	TypeSlug       string          `json:"type_slug" gorm:"type:varchar(191);index" validate:"required,max=191"`
	ImageURLs      []string        `json:"image_urls" gorm:"serializer:json"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	Colors         []string        `json:"colors" gorm:"serializer:json"`
	Description    string          `json:"description" validate:"omitempty,max=2000"`
	Availability   string          `json:"availability" gorm:"type:varchar(20);default:available" validate:"omitempty,oneof=available out_of_stock"`
	HasQuantity    bool            `json:"has_quantity" gorm:"default:true"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
