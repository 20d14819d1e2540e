// Package ports defines the persistence and collaborator contracts between
// the domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their exclusively owned line items.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and assigns store ids.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, replacing its items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items by identifier.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// Delete removes an order and cascades to its items. The caller must have
	// verified the order's status allows deletion; stock state is never touched.
	Delete(ctx context.Context, id int64) error
}
