package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a request to replace the editable fields of
// an existing order. The order number is immutable and not part of the update.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	details OrderDetails
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a validated order update command.
func NewUpdateOrderCommand(orderID int64, details OrderDetails, actor kernel.Actor) (UpdateOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}
	if orderID <= 0 {
		return UpdateOrderCommand{}, errs.NewValueIsInvalidError("orderId")
	}
	if len(details.Items) == 0 {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	return UpdateOrderCommand{
		orderID: orderID,
		details: details,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() int64 {
	return c.orderID
}

// Details returns the replacement order fields.
func (c UpdateOrderCommand) Details() OrderDetails {
	return c.details
}

// Actor returns the verified identity performing the operation.
func (c UpdateOrderCommand) Actor() kernel.Actor {
	return c.actor
}
