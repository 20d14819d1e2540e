package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order along its
// lifecycle, optionally (re)assigning a courier in the same operation.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   int64
	target    order.Status
	courierID *kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a validated status transition command.
// The courier id is optional; when present it is applied before the transition.
func NewChangeOrderStatusCommand(orderID int64, target order.Status, courierID *kernel.UUID, actor kernel.Actor) (ChangeOrderStatusCommand, error) {
	if err := actor.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if orderID <= 0 {
		return ChangeOrderStatusCommand{}, errs.NewValueIsInvalidError("orderId")
	}
	if err := target.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return ChangeOrderStatusCommand{}, err
		}
	}

	return ChangeOrderStatusCommand{
		orderID:   orderID,
		target:    target,
		courierID: courierID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// CourierID returns the courier to assign, nil when unchanged.
func (c ChangeOrderStatusCommand) CourierID() *kernel.UUID {
	return c.courierID
}

// Actor returns the verified identity performing the operation.
func (c ChangeOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}
