package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status graph allows moving from s to
// next. The happy path is linear (pending -> processing -> shipped ->
// delivered); cancellation is only reachable from pending or processing.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}

// OrderItem is a single priced line item within an order. Unit and total
// prices are a snapshot taken at order creation and never re-derived, so
// later product price changes do not affect existing orders.
type OrderItem struct {
	ID         uint            `json:"-" gorm:"primaryKey"`
	OrderID    string          `json:"order_id" gorm:"type:varchar(64);index;not null"`
	ProductID  uint            `json:"product_id" gorm:"not null"`
	Quantity   int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time       `json:"created_at"`

	// Display fields resolved against the current product table on reads
	// (and populated by the assembler at creation time). Not persisted:
	// the product may be renamed or deleted after the order exists.
	ProductName string   `json:"name,omitempty" gorm:"-"`
	ImageURLs   []string `json:"image_urls,omitempty" gorm:"-"`
}

// Order represents a customer order. OrderID is the external identifier
// (ORD-<millis>-<suffix>), generated at creation.
type Order struct {
	OrderID         string          `json:"order_id" gorm:"primaryKey;type:varchar(64)"`
	CustomerName    string          `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerEmail   string          `json:"customer_email" gorm:"type:varchar(255);not null"`
	CustomerPhone   string          `json:"customer_phone" gorm:"type:varchar(64);not null"`
	ShippingAddress string          `json:"shipping_address" gorm:"not null"`
	OrderNotes      string          `json:"order_notes,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:pending"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;references:OrderID"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
