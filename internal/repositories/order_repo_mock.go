package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"boutique/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex

	// CreateErr, when set, makes Create fail without storing anything,
	// mimicking a rolled-back transaction.
	CreateErr error
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create stores the order with its items. All-or-nothing, like the
// transactional GORM implementation.
func (r *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].OrderID = order.OrderID
		order.Items[i].CreatedAt = now
	}
	r.orders[order.OrderID] = *order
	return nil
}

// GetByOrderID returns an order by its external identifier.
func (r *MockOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return &order, nil
}

// List returns a page of order summaries.
func (r *MockOrderRepository) List(ctx context.Context, filter OrderFilter) ([]OrderSummary, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	filter = filter.Normalized()
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Order
	q := strings.ToLower(filter.Query)
	for _, order := range r.orders {
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if q != "" {
			haystack := strings.ToLower(order.OrderID + " " + order.CustomerName + " " + order.CustomerEmail + " " + order.CustomerPhone)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		matched = append(matched, order)
	}

	sort.Slice(matched, func(i, j int) bool {
		if filter.Sort == OrderSortCreatedAsc {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start := (filter.Page - 1) * filter.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	summaries := make([]OrderSummary, 0, end-start)
	for _, order := range matched[start:end] {
		summaries = append(summaries, OrderSummary{
			OrderID:       order.OrderID,
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			CustomerPhone: order.CustomerPhone,
			TotalAmount:   order.TotalAmount,
			Status:        order.Status,
			ItemCount:     len(order.Items),
			CreatedAt:     order.CreatedAt,
		})
	}
	return summaries, int64(len(matched)), nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[orderID] = order
	return &order, nil
}
