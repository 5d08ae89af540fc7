package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"boutique/internal/models"
)

// OrderSortOrder selects the listing sort direction on created_at.
type OrderSortOrder string

const (
	OrderSortCreatedDesc OrderSortOrder = "created_at_desc"
	OrderSortCreatedAsc  OrderSortOrder = "created_at_asc"
)

// OrderFilter narrows and paginates admin order listings. Query matches
// against order ID and customer name/email/phone, case-insensitively.
type OrderFilter struct {
	Status   models.OrderStatus
	Query    string
	Sort     OrderSortOrder
	Page     int
	PageSize int
}

// Normalized returns a copy with page and page size forced into their valid
// ranges: page >= 1, 1 <= pageSize <= 100 (default 20). Repositories apply
// it before querying, so callers echoing pagination back to clients should
// report the normalized values.
func (f OrderFilter) Normalized() OrderFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	return f
}

// OrderSummary is one row of an admin order listing.
type OrderSummary struct {
	OrderID       string             `json:"order_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        models.OrderStatus `json:"status"`
	ItemCount     int                `json:"item_count"`
	CreatedAt     time.Time          `json:"created_at"`
}

// OrderRepository defines the interface for order data access. Methods take
// a context so order creation can run under a request-scoped deadline.
type OrderRepository interface {
	// Create persists the order header and all of its items atomically:
	// either every row commits or none do.
	Create(ctx context.Context, order *models.Order) error
	// GetByOrderID returns the order with its items, display names
	// resolved against the current product table (left-join semantics: a
	// deleted product leaves the name empty, it is not an error).
	GetByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]OrderSummary, int64, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
}
