package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order, enforcing courier visibility.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	filter services.VisibilityFilter
}

// NewGetOrderQueryHandler creates a handler for order point reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		db:     db,
		filter: services.NewVisibilityFilter(),
	}
}

// Handle executes the point read for the query's actor.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	orders, err := loadOrders(ctx, h.db, ` WHERE id = ?`, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	if len(orders) == 0 {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	// An invisible order reads the same as a missing one.
	if !h.filter.IsVisible(orders[0], query.Actor(), time.Now()) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return NewOrderResponse(orders[0]), nil
}
