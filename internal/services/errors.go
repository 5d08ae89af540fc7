package services

import (
	"errors"
	"fmt"

	"boutique/internal/models"
)

// Expected failure modes of the order workflow. Handlers translate these
// into client-facing statuses; anything else is a server error.
var (
	// ErrEmptyOrder is returned when an order request has no line items.
	ErrEmptyOrder = errors.New("order must contain at least one item")

	// ErrOrderTimeout is returned when order creation exceeds its
	// request-scoped deadline. The transactional write guarantees no
	// partial rows were committed.
	ErrOrderTimeout = errors.New("order creation timed out")
)

// ProductNotFoundError reports a line item referencing a product that does
// not exist. Detected before any monetary computation or database write.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// InvalidTransitionError reports a status update rejected by the order
// status graph.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %q to %q", e.From, e.To)
}
