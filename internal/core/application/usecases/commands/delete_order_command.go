package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand represents a request to remove an order and its items.
// Deletion is permitted only for orders that never reserved stock.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a validated order deletion command.
func NewDeleteOrderCommand(orderID int64, actor kernel.Actor) (DeleteOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}
	if orderID <= 0 {
		return DeleteOrderCommand{}, errs.NewValueIsInvalidError("orderId")
	}

	return DeleteOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to delete.
func (c DeleteOrderCommand) OrderID() int64 {
	return c.orderID
}

// Actor returns the verified identity performing the operation.
func (c DeleteOrderCommand) Actor() kernel.Actor {
	return c.actor
}
