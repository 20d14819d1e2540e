package stock

import (
	"fmt"
	"sync/atomic"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// MovementType classifies a stock ledger row.
type MovementType int

const (
	// MovementUnknown represents an invalid or undefined movement type.
	MovementUnknown MovementType = iota

	// MovementArrival records a unit entering stock.
	MovementArrival

	// MovementReserve records a unit being earmarked for an order.
	MovementReserve

	// MovementRelease records a reservation being returned to stock.
	MovementRelease

	// MovementWriteOff records a unit's terminal consumption on order completion.
	MovementWriteOff
)

func getMovementTypeStrings() map[MovementType]string {
	return map[MovementType]string{
		MovementUnknown:  "unknown",
		MovementArrival:  "arrival",
		MovementReserve:  "reserve",
		MovementRelease:  "release",
		MovementWriteOff: "writeoff",
	}
}

// MovementTypeFromString parses a movement type wire name.
func MovementTypeFromString(s string) (MovementType, error) {
	for mt, name := range getMovementTypeStrings() {
		if mt != MovementUnknown && name == s {
			return mt, nil
		}
	}
	return MovementUnknown, errs.NewValueIsInvalidErrorWithCause("movement type",
		fmt.Errorf("%q is not a valid movement type", s))
}

// String returns the wire name of the movement type. Implements fmt.Stringer.
func (t MovementType) String() string {
	if str, ok := getMovementTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the MovementType is one of the defined types.
func (t MovementType) Validate() error {
	switch t {
	case MovementArrival, MovementReserve, MovementRelease, MovementWriteOff:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("movement type",
			fmt.Errorf("%d is not a valid movement type", t))
	}
}

// movementSeq breaks ties between movements created within the same nanosecond.
var movementSeq atomic.Uint64

// NewMovementID produces a monotonically distinguishable ledger row id:
// the creation timestamp in nanoseconds plus an in-process counter, so two
// rows written back to back under high-frequency writes never collide.
func NewMovementID(now time.Time) string {
	return fmt.Sprintf("%d-%06d", now.UnixNano(), movementSeq.Add(1)%1000000)
}

// Movement is one immutable, append-only stock ledger row. A movement is
// written exactly once per ledger-affecting operation, in the same logical
// operation as the unit mutation it records, and is never updated or deleted.
type Movement struct {
	id        string
	kind      MovementType
	productID int64
	serial    string
	quantity  int
	date      time.Time
	reason    string
	userID    kernel.UUID

	isConstructed bool
}

// NewMovement creates a ledger row for a completed stock operation.
func NewMovement(kind MovementType, productID int64, serial string, quantity int, reason string, userID kernel.UUID, now time.Time) (*Movement, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return &Movement{
		id:            NewMovementID(now),
		kind:          kind,
		productID:     productID,
		serial:        serial,
		quantity:      quantity,
		date:          now.UTC(),
		reason:        reason,
		userID:        userID,
		isConstructed: true,
	}, nil
}

// RestoreMovement reconstructs a ledger row from persistence.
func RestoreMovement(id string, kind MovementType, productID int64, serial string, quantity int, date time.Time, reason string, userID kernel.UUID) *Movement {
	return &Movement{
		id:            id,
		kind:          kind,
		productID:     productID,
		serial:        serial,
		quantity:      quantity,
		date:          date,
		reason:        reason,
		userID:        userID,
		isConstructed: true,
	}
}

// Validate ensures the Movement was properly constructed.
func (m *Movement) Validate() error {
	if m == nil || !m.isConstructed {
		return errs.NewValueIsRequiredError("movement must be created via NewMovement constructor")
	}
	return nil
}

// ID returns the monotonically distinguishable row identifier.
func (m *Movement) ID() string { return m.id }

// Kind returns the movement classification.
func (m *Movement) Kind() MovementType { return m.kind }

// ProductID returns the product the moved unit belongs to.
func (m *Movement) ProductID() int64 { return m.productID }

// Serial returns the serial of the moved unit.
func (m *Movement) Serial() string { return m.serial }

// Quantity returns the number of units moved (always 1 for serialized stock).
func (m *Movement) Quantity() int { return m.quantity }

// Date returns when the movement happened.
func (m *Movement) Date() time.Time { return m.date }

// Reason returns the free-form operation reason.
func (m *Movement) Reason() string { return m.reason }

// UserID returns the actor who caused the movement.
func (m *Movement) UserID() kernel.UUID { return m.userID }
