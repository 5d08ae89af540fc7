package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"boutique/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create writes the order header and all line items in a single transaction.
// A failure on any insert rolls back everything already written, so a
// returned error means zero committed rows.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order header: %w", err)
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.OrderID
			if err := tx.Create(&order.Items[i]).Error; err != nil {
				return fmt.Errorf("failed to insert order item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create order %s: %w", order.OrderID, err)
	}
	return nil
}

// GetByOrderID loads the order header and items, then resolves display names
// and images against the current product table. Products deleted since the
// order was placed simply have no name.
func (r *GORMOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	db := r.db.WithContext(ctx)

	if err := db.First(&order, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	if err := db.Order("id").Find(&order.Items, "order_id = ?", orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to get items for order %s: %w", orderID, err)
	}

	if len(order.Items) == 0 {
		return &order, nil
	}

	productIDs := make([]uint, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	var products []models.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve products for order %s: %w", orderID, err)
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range order.Items {
		if p, ok := byID[order.Items[i].ProductID]; ok {
			order.Items[i].ProductName = p.Name
			order.Items[i].ImageURLs = p.ImageURLs
		}
	}

	return &order, nil
}

// List returns a page of order summaries plus the total match count.
func (r *GORMOrderRepository) List(ctx context.Context, filter OrderFilter) ([]OrderSummary, int64, error) {
	filter = filter.Normalized()

	base := r.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != "" {
		base = base.Where("status = ?", filter.Status)
	}
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		base = base.Where(
			"LOWER(order_id) LIKE ? OR LOWER(customer_email) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_phone) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	orderBy := "created_at DESC"
	if filter.Sort == OrderSortCreatedAsc {
		orderBy = "created_at ASC"
	}

	var summaries []OrderSummary
	err := base.
		Select("order_id, customer_name, customer_email, customer_phone, total_amount, status, created_at, " +
			"(SELECT COUNT(*) FROM order_items oi WHERE oi.order_id = orders.order_id) AS item_count").
		Order(orderBy).
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Scan(&summaries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return summaries, total, nil
}

// UpdateStatus sets the status field of an existing order and bumps its
// updated_at timestamp. Status graph validation belongs to the service.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update status for order %s: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}

	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "order_id = ?", orderID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order %s: %w", orderID, err)
	}
	return &order, nil
}
