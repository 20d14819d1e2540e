package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/stock"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// InventoryLedger owns every stock unit status transition and guarantees that
// each successful mutation appends exactly one movement row within the same
// transaction, so the trail is never reordered relative to unit state.
//
// Reservation and write-off go through the repository's atomic check-and-set
// operations: two concurrent Reserve calls against the same serial cannot
// both succeed; the loser receives Conflict. Callers driving an order
// transition treat that Conflict as "skip this item", not as a fatal error.
type InventoryLedger struct {
	units     ports.StockRepository
	movements ports.MovementRepository
}

// NewInventoryLedger creates a ledger over transaction-bound repositories.
func NewInventoryLedger(units ports.StockRepository, movements ports.MovementRepository) InventoryLedger {
	return InventoryLedger{units: units, movements: movements}
}

// Arrive registers a new serialized unit entering stock.
// Fails with a validation error when an active unit with the same
// (productID, serial) pair already exists.
func (l InventoryLedger) Arrive(ctx context.Context, productID int64, serial string, attrs stock.UnitAttrs, actor kernel.Actor, now time.Time) (*stock.Unit, error) {
	existing, err := l.units.GetBySerial(ctx, productID, serial)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("serial",
			fmt.Errorf("serial %s already exists for product %d", serial, productID))
	}

	unit, err := stock.NewUnit(productID, serial, attrs)
	if err != nil {
		return nil, err
	}

	if err = l.units.Add(ctx, unit); err != nil {
		return nil, err
	}

	return unit, l.appendMovement(ctx, stock.MovementArrival, productID, serial, "stock arrival", actor, now)
}

// Reserve earmarks the unit identified by (productID, serial) for orderID.
//
// Outcomes:
//   - unit was available: reserved atomically, one reserve movement appended
//   - unit already reserved for the same order: no-op success, no movement
//   - unit missing, sold, or held by another order: Conflict
func (l InventoryLedger) Reserve(ctx context.Context, productID int64, serial string, orderID int64, actor kernel.Actor, now time.Time) (*stock.Unit, error) {
	reserved, err := l.units.TryReserve(ctx, productID, serial, orderID)
	if err != nil {
		return nil, err
	}

	if !reserved {
		return l.classifyReserveFailure(ctx, productID, serial, orderID)
	}

	unit, err := l.units.GetBySerial(ctx, productID, serial)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("reserved for order %d", orderID)
	return unit, l.appendMovement(ctx, stock.MovementReserve, productID, serial, reason, actor, now)
}

// Release returns the unit reserved by orderID to stock.
// Releasing a unit the order does not hold is a no-op success, tolerating
// re-entrant cancellations; a movement is appended only when state changed.
func (l InventoryLedger) Release(ctx context.Context, productID int64, serial string, orderID int64, actor kernel.Actor, now time.Time) error {
	released, err := l.units.TryRelease(ctx, productID, serial, orderID)
	if err != nil {
		return err
	}
	if !released {
		return nil
	}

	reason := fmt.Sprintf("released from order %d", orderID)
	return l.appendMovement(ctx, stock.MovementRelease, productID, serial, reason, actor, now)
}

// WriteOff force-transitions the unit to sold regardless of prior state,
// matching the order lifecycle's completion semantics.
//
// Outcomes:
//   - unit exists and was not sold: sold atomically, one writeoff movement appended
//   - unit already sold: no-op success, no movement (safe retry)
//   - unit missing: Conflict
func (l InventoryLedger) WriteOff(ctx context.Context, productID int64, serial string, actor kernel.Actor, now time.Time) (*stock.Unit, error) {
	written, err := l.units.TryWriteOff(ctx, productID, serial)
	if err != nil {
		return nil, err
	}

	unit, err := l.units.GetBySerial(ctx, productID, serial)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewConflictErrorWithCause("stock unit",
				fmt.Errorf("serial %s does not exist for product %d", serial, productID))
		}
		return nil, err
	}

	if !written {
		// Already sold; retried completion must not duplicate the movement.
		return unit, nil
	}

	return unit, l.appendMovement(ctx, stock.MovementWriteOff, productID, serial, "order completion", actor, now)
}

func (l InventoryLedger) classifyReserveFailure(ctx context.Context, productID int64, serial string, orderID int64) (*stock.Unit, error) {
	unit, err := l.units.GetBySerial(ctx, productID, serial)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, errs.NewConflictErrorWithCause("stock unit",
				fmt.Errorf("serial %s does not exist for product %d", serial, productID))
		}
		return nil, err
	}

	if unit.Status() == stock.UnitReserved && unit.OrderID() != nil && *unit.OrderID() == orderID {
		// Re-entrant transition: already held by this order, nothing to record.
		return unit, nil
	}

	return nil, errs.NewConflictErrorWithCause("stock unit",
		fmt.Errorf("serial %s is %s", serial, unit.Status()))
}

func (l InventoryLedger) appendMovement(ctx context.Context, kind stock.MovementType, productID int64, serial, reason string, actor kernel.Actor, now time.Time) error {
	movement, err := stock.NewMovement(kind, productID, serial, 1, reason, actor.ID(), now)
	if err != nil {
		return err
	}
	return l.movements.Append(ctx, movement)
}
