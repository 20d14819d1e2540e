package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"orderdesk/internal/core/domain/services"
)

// GetOrdersQueryHandler lists orders, applying the courier visibility filter
// server-side: a courier's response contains only orders assigned to them
// with a delivery date of today or tomorrow in a courier-visible status.
type GetOrdersQueryHandler struct {
	db     *gorm.DB
	filter services.VisibilityFilter
}

// NewGetOrdersQueryHandler creates a handler for order listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{
		db:     db,
		filter: services.NewVisibilityFilter(),
	}
}

// Handle executes the listing for the query's actor.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := loadOrders(ctx, h.db, ` ORDER BY id`)
	if err != nil {
		return nil, err
	}

	visible := h.filter.FilterVisible(orders, query.Actor(), time.Now())

	responses := make([]OrderResponse, 0, len(visible))
	for _, o := range visible {
		responses = append(responses, NewOrderResponse(o))
	}
	return responses, nil
}
