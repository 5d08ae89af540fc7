package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/pkg/rabbitmq"
)

// OrderEventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client; nil disables publishing.
type OrderEventPublisher interface {
	PublishOrderCreated(event rabbitmq.OrderEvent) error
}

// CreateOrderItem is one requested (product, quantity) pair.
type CreateOrderItem struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the order creation input. The item list may parse as
// empty; that case is rejected by the service with ErrEmptyOrder.
type CreateOrderRequest struct {
	CustomerName    string            `json:"customerName" validate:"required,max=255"`
	CustomerEmail   string            `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string            `json:"customerPhone" validate:"required,max=64"`
	ShippingAddress string            `json:"shippingAddress" validate:"required,max=2000"`
	OrderNotes      string            `json:"orderNotes" validate:"omitempty,max=2000"`
	Items           []CreateOrderItem `json:"items" validate:"dive"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   OrderEventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// NewOrderID generates an external order identifier of the form
// ORD-<unix-millis>-<9-char suffix>.
func NewOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:9]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// CreateOrder assembles and persists a new order.
//
// All referenced products are resolved with one batched lookup; a missing
// product fails the whole request before any monetary computation or write.
// Unit prices are snapshotted from the product table at this moment and all
// arithmetic is decimal, so totals are exact and immune to later price
// changes. The header and items are committed in a single transaction.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	// Distinct product ID set for the batched lookup.
	seen := make(map[uint]bool, len(req.Items))
	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity %d for product %d", item.Quantity, item.ProductID)
		}
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrOrderTimeout
		}
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	snapshot := make(map[uint]models.Product, len(products))
	for _, p := range products {
		snapshot[p.ID] = p
	}
	for _, item := range req.Items {
		if _, ok := snapshot[item.ProductID]; !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
	}

	totalAmount := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product := snapshot[item.ProductID]
		unitPrice := product.Price
		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(totalPrice)

		items = append(items, models.OrderItem{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  totalPrice,
			ProductName: product.Name,
			ImageURLs:   product.ImageURLs,
		})
	}

	order := &models.Order{
		OrderID:         NewOrderID(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		OrderNotes:      req.OrderNotes,
		TotalAmount:     totalAmount,
		Status:          models.OrderStatusPending,
		Items:           items,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrOrderTimeout
		}
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(order)

	return order, nil
}

// publishOrderCreated emits the order.created event. Publishing failures are
// logged, never surfaced: the order is already committed.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}

	eventItems := make([]rabbitmq.OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		eventItems = append(eventItems, rabbitmq.OrderEventItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ImageURLs:   item.ImageURLs,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	event := rabbitmq.OrderEvent{
		OrderID:         order.OrderID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		OrderNotes:      order.OrderNotes,
		TotalAmount:     order.TotalAmount,
		Items:           eventItems,
		CreatedAt:       order.CreatedAt,
	}

	if err := s.publisher.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: failed to publish order created event for %s: %v", order.OrderID, err)
	}
}

// GetOrderByID retrieves a single order with its items.
func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	return s.orderRepo.GetByOrderID(ctx, orderID)
}

// ListOrders returns a page of order summaries for the admin view.
func (s *OrderService) ListOrders(ctx context.Context, filter repositories.OrderFilter) ([]repositories.OrderSummary, int64, error) {
	return s.orderRepo.List(ctx, filter)
}

// UpdateOrderStatus moves an order to a new status, enforcing the status
// graph: pending -> processing -> shipped -> delivered, with cancellation
// allowed from pending or processing only.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, &InvalidTransitionError{From: order.Status, To: status}
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status for order %s: %w", orderID, err)
	}
	return updated, nil
}
