package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/stock"
)

// StockRepository defines the persistence contract for serialized stock units.
//
// The Try* methods are atomic check-and-set operations: they transition a
// unit's status with a single conditional write so that two concurrent calls
// against the same serial cannot both succeed. They return false, without
// error, when the condition did not hold; the caller classifies the reason by
// re-reading the unit.
type StockRepository interface {
	// Add persists a new unit and assigns its store id.
	Add(ctx context.Context, unit *stock.Unit) error

	// Get retrieves a unit by identifier.
	Get(ctx context.Context, id int64) (*stock.Unit, error)

	// GetBySerial retrieves the active unit with the given (productID, serial) pair.
	GetBySerial(ctx context.Context, productID int64, serial string) (*stock.Unit, error)

	// TryReserve atomically moves the unit from available to reserved,
	// attaching the order id. Returns false when the unit is not available.
	TryReserve(ctx context.Context, productID int64, serial string, orderID int64) (bool, error)

	// TryRelease atomically returns the unit reserved by orderID to available,
	// clearing the order reference. Returns false when the unit is not
	// reserved by that order.
	TryRelease(ctx context.Context, productID int64, serial string, orderID int64) (bool, error)

	// TryWriteOff atomically moves the unit to sold from any non-sold state,
	// clearing the order reference. Returns false when the unit is missing or
	// already sold.
	TryWriteOff(ctx context.Context, productID int64, serial string) (bool, error)

	// Delete removes a unit record. The caller must have verified the unit is
	// not sold; sold units are history and are never deleted.
	Delete(ctx context.Context, id int64) error
}

// MovementRepository appends immutable stock ledger rows. Rows are written in
// the same transaction as the unit mutation they record and never change.
type MovementRepository interface {
	Append(ctx context.Context, movement *stock.Movement) error
}
