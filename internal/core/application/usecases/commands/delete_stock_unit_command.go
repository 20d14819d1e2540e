package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrDeleteStockUnitCommandIsNotConstructed = errors.New(
	"DeleteStockUnitCommand must be created via NewDeleteStockUnitCommand constructor",
)

// DeleteStockUnitCommand represents a request to remove a stock unit record.
// Sold units are history and are never deleted.
type DeleteStockUnitCommand struct { //nolint:recvcheck //using for validation
	unitID int64
	actor  kernel.Actor

	guard guard.ConstructorGuard
}

// NewDeleteStockUnitCommand creates a validated stock unit deletion command.
func NewDeleteStockUnitCommand(unitID int64, actor kernel.Actor) (DeleteStockUnitCommand, error) {
	if err := actor.Validate(); err != nil {
		return DeleteStockUnitCommand{}, err
	}
	if unitID <= 0 {
		return DeleteStockUnitCommand{}, errs.NewValueIsInvalidError("unitId")
	}

	return DeleteStockUnitCommand{
		unitID: unitID,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteStockUnitCommand) Validate() error {
	return c.guard.Validate(ErrDeleteStockUnitCommandIsNotConstructed)
}

// UnitID returns the identifier of the unit to delete.
func (c DeleteStockUnitCommand) UnitID() int64 {
	return c.unitID
}

// Actor returns the verified identity performing the operation.
func (c DeleteStockUnitCommand) Actor() kernel.Actor {
	return c.actor
}
