package commands

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemInput carries the client-supplied line item fields. Domain validation
// happens when the handler builds order.Item values from these inputs.
type ItemInput struct {
	ProductID   int64
	Quantity    int
	Price       decimal.Decimal
	Discount    decimal.Decimal
	Serial      *string
	IsAccessory bool
}

// OrderDetails carries the client-supplied order fields shared between
// creation and update commands.
type OrderDetails struct {
	Number        string
	CustomerName  string
	CustomerPhone string
	Address       string
	DeliveryDate  *time.Time
	DeliverySlot  *string
	DeliveryCost  decimal.Decimal
	PaymentMethod string
	Items         []ItemInput
}

// CreateOrderCommand represents a request to register a new order in "new"
// status. Stock is never touched at creation time; reservation happens on the
// transition into picking.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	details OrderDetails
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order creation command.
func NewCreateOrderCommand(details OrderDetails, actor kernel.Actor) (CreateOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if details.Number == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("number")
	}
	if len(details.Items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	return CreateOrderCommand{
		details: details,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Details returns the order fields to persist.
func (c CreateOrderCommand) Details() OrderDetails {
	return c.details
}

// Actor returns the verified identity performing the operation.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}
