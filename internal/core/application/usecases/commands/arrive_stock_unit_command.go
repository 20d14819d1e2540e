package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/stock"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrArriveStockUnitCommandIsNotConstructed = errors.New(
	"ArriveStockUnitCommand must be created via NewArriveStockUnitCommand constructor",
)

// ArriveStockUnitCommand represents a request to register a serialized unit
// entering stock.
type ArriveStockUnitCommand struct { //nolint:recvcheck //using for validation
	productID int64
	serial    string
	attrs     stock.UnitAttrs
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

// NewArriveStockUnitCommand creates a validated stock arrival command.
func NewArriveStockUnitCommand(productID int64, serial string, attrs stock.UnitAttrs, actor kernel.Actor) (ArriveStockUnitCommand, error) {
	if err := actor.Validate(); err != nil {
		return ArriveStockUnitCommand{}, err
	}
	if productID <= 0 {
		return ArriveStockUnitCommand{}, errs.NewValueIsInvalidError("productId")
	}
	if serial == "" {
		return ArriveStockUnitCommand{}, errs.NewValueIsRequiredError("serial")
	}

	return ArriveStockUnitCommand{
		productID: productID,
		serial:    serial,
		attrs:     attrs,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ArriveStockUnitCommand) Validate() error {
	return c.guard.Validate(ErrArriveStockUnitCommandIsNotConstructed)
}

// ProductID returns the catalog product the unit belongs to.
func (c ArriveStockUnitCommand) ProductID() int64 {
	return c.productID
}

// Serial returns the unit's serial.
func (c ArriveStockUnitCommand) Serial() string {
	return c.serial
}

// Attrs returns the descriptive attributes recorded on arrival.
func (c ArriveStockUnitCommand) Attrs() stock.UnitAttrs {
	return c.attrs
}

// Actor returns the verified identity performing the operation.
func (c ArriveStockUnitCommand) Actor() kernel.Actor {
	return c.actor
}
