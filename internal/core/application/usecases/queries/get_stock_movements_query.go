package queries

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrGetStockMovementsQueryIsNotConstructed = errors.New(
	"GetStockMovementsQuery must be created via NewGetStockMovementsQuery constructor",
)

// GetStockMovementsQuery retrieves the stock ledger history, optionally
// narrowed to one product.
type GetStockMovementsQuery struct {
	productID *int64
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetStockMovementsQuery creates a ledger history query. The product id is
// optional; nil lists movements across all products.
func NewGetStockMovementsQuery(productID *int64, actor kernel.Actor) (GetStockMovementsQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetStockMovementsQuery{}, err
	}
	if actor.IsCourier() {
		return GetStockMovementsQuery{}, errs.NewUnauthorizedError("couriers cannot read the stock ledger")
	}
	if productID != nil && *productID <= 0 {
		return GetStockMovementsQuery{}, errs.NewValueIsInvalidError("productId")
	}

	return GetStockMovementsQuery{
		productID: productID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockMovementsQuery) Validate() error {
	return q.guard.Validate(ErrGetStockMovementsQueryIsNotConstructed)
}

// ProductID returns the optional product filter.
func (q GetStockMovementsQuery) ProductID() *int64 {
	return q.productID
}

// StockMovementResponse is the read-model projection of one ledger row.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ProductID int64     `json:"productId"`
	Serial    string    `json:"serial"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason"`
	UserID    string    `json:"userId"`
}
