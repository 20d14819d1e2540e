package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by id. Couriers get NotFound for
// orders outside their visible subset, indistinguishable from absence.
type GetOrderQuery struct {
	orderID int64
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a point-read query on behalf of an actor.
func NewGetOrderQuery(orderID int64, actor kernel.Actor) (GetOrderQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidError("orderId")
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// Actor returns the identity the read is evaluated for.
func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}
