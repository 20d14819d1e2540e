// Package stock contains the serialized inventory model: StockUnit, one
// physically distinct serial-tracked item, and StockMovement, the append-only
// ledger row recording every stock-affecting operation.
package stock

import (
	"errors"
	"fmt"

	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrUnitIsNotConstructed is returned when a Unit instance was not created
// through the NewUnit or RestoreUnit factory methods.
var ErrUnitIsNotConstructed = errors.New("Unit must be created via NewUnit constructor")

// UnitStatus is the allocation state of a stock unit.
//
//	Available ──> Reserved ──> Sold
//	     │             │
//	     └───(release)─┘
//
// Sold is terminal: a sold unit is never resurrected and never deleted.
// WriteOff force-transitions to Sold from any state, matching the order
// lifecycle's completion semantics.
type UnitStatus int

const (
	// UnitUnknown represents an invalid or undefined unit status.
	UnitUnknown UnitStatus = iota

	// UnitAvailable means the unit sits in stock and may be reserved.
	UnitAvailable

	// UnitReserved means the unit is earmarked for exactly one order.
	UnitReserved

	// UnitSold means the unit was consumed by a completed order. Terminal.
	UnitSold
)

func getUnitStatusStrings() map[UnitStatus]string {
	return map[UnitStatus]string{
		UnitUnknown:   "unknown",
		UnitAvailable: "available",
		UnitReserved:  "reserved",
		UnitSold:      "sold",
	}
}

// UnitStatusFromString parses a unit status wire name.
func UnitStatusFromString(s string) (UnitStatus, error) {
	for status, name := range getUnitStatusStrings() {
		if status != UnitUnknown && name == s {
			return status, nil
		}
	}
	return UnitUnknown, errs.NewValueIsInvalidErrorWithCause("unit status",
		fmt.Errorf("%q is not a valid unit status", s))
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s UnitStatus) String() string {
	if str, ok := getUnitStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the UnitStatus is one of the defined statuses.
func (s UnitStatus) Validate() error {
	switch s {
	case UnitAvailable, UnitReserved, UnitSold:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("unit status",
			fmt.Errorf("%d is not a valid unit status", s))
	}
}

// Unit represents one serialized physical inventory item.
//
// Invariants:
//   - (productID, serial) is unique among active units, enforced by the ledger
//   - Status transitions are driven only by the inventory ledger
//   - The owning order reference exists only while Reserved
//   - A Sold unit is never resurrected and its record is never deleted
type Unit struct {
	id             int64
	productID      int64
	serial         string
	condition      string
	supplier       string
	purchasePrice  decimal.Decimal
	warrantyMonths int
	status         UnitStatus
	orderID        *int64

	isConstructed bool
}

// UnitAttrs carries the descriptive attributes recorded on stock arrival.
type UnitAttrs struct {
	Condition      string
	Supplier       string
	PurchasePrice  decimal.Decimal
	WarrantyMonths int
}

// NewUnit creates a stock unit on arrival, in UnitAvailable status.
func NewUnit(productID int64, serial string, attrs UnitAttrs) (*Unit, error) {
	if productID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("productId",
			fmt.Errorf("%d is not a valid product id", productID))
	}
	if serial == "" {
		return nil, errs.NewValueIsRequiredError("serial")
	}
	if attrs.PurchasePrice.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("purchasePrice",
			fmt.Errorf("%s is negative", attrs.PurchasePrice))
	}
	if attrs.WarrantyMonths < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("warrantyMonths",
			fmt.Errorf("%d is negative", attrs.WarrantyMonths))
	}

	return &Unit{
		productID:      productID,
		serial:         serial,
		condition:      attrs.Condition,
		supplier:       attrs.Supplier,
		purchasePrice:  attrs.PurchasePrice,
		warrantyMonths: attrs.WarrantyMonths,
		status:         UnitAvailable,
		isConstructed:  true,
	}, nil
}

// RestoreUnit reconstructs a unit from persistence.
func RestoreUnit(id, productID int64, serial string, attrs UnitAttrs, status UnitStatus, orderID *int64) (*Unit, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Unit{
		id:             id,
		productID:      productID,
		serial:         serial,
		condition:      attrs.Condition,
		supplier:       attrs.Supplier,
		purchasePrice:  attrs.PurchasePrice,
		warrantyMonths: attrs.WarrantyMonths,
		status:         status,
		orderID:        orderID,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Unit instance was properly constructed.
func (u *Unit) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUnitIsNotConstructed
	}
	return nil
}

// ID returns the store-assigned unit identifier (zero until persisted).
func (u *Unit) ID() int64 { return u.id }

// SetID attaches the store-assigned identifier after the first insert.
func (u *Unit) SetID(id int64) { u.id = id }

// ProductID returns the catalog product this unit belongs to.
func (u *Unit) ProductID() int64 { return u.productID }

// Serial returns the unit's serial, unique per product among active units.
func (u *Unit) Serial() string { return u.serial }

// Condition returns the recorded physical condition.
func (u *Unit) Condition() string { return u.condition }

// Supplier returns the recorded supplier.
func (u *Unit) Supplier() string { return u.supplier }

// PurchasePrice returns the recorded purchase price.
func (u *Unit) PurchasePrice() decimal.Decimal { return u.purchasePrice }

// WarrantyMonths returns the warranty period in months.
func (u *Unit) WarrantyMonths() int { return u.warrantyMonths }

// Status returns the current allocation status.
func (u *Unit) Status() UnitStatus { return u.status }

// OrderID returns the owning order's id while Reserved, nil otherwise.
func (u *Unit) OrderID() *int64 { return u.orderID }

// Reserve earmarks the unit for an order.
//
// Reserving a unit already reserved for the same order is a no-op success,
// tolerating re-entrant status transitions. Reserving a unit held by another
// order or already sold returns Conflict.
func (u *Unit) Reserve(orderID int64) error {
	switch u.status {
	case UnitAvailable:
		u.status = UnitReserved
		u.orderID = &orderID
		return nil
	case UnitReserved:
		if u.orderID != nil && *u.orderID == orderID {
			return nil
		}
		return errs.NewConflictErrorWithCause("stock unit",
			fmt.Errorf("serial %s is reserved for another order", u.serial))
	case UnitSold:
		return errs.NewConflictErrorWithCause("stock unit",
			fmt.Errorf("serial %s is already sold", u.serial))
	default:
		return errs.NewValueIsInvalidError("unit status")
	}
}

// Release returns a reserved unit to stock, clearing the order reference.
// Releasing a unit not held by orderID returns Conflict; releasing an
// available unit is a no-op success.
func (u *Unit) Release(orderID int64) error {
	switch u.status {
	case UnitAvailable:
		return nil
	case UnitReserved:
		if u.orderID == nil || *u.orderID != orderID {
			return errs.NewConflictErrorWithCause("stock unit",
				fmt.Errorf("serial %s is reserved for another order", u.serial))
		}
		u.status = UnitAvailable
		u.orderID = nil
		return nil
	case UnitSold:
		return errs.NewConflictErrorWithCause("stock unit",
			fmt.Errorf("serial %s is already sold", u.serial))
	default:
		return errs.NewValueIsInvalidError("unit status")
	}
}

// WriteOff force-transitions the unit to Sold regardless of prior state and
// clears the order reference. Idempotent: writing off a sold unit keeps it sold.
func (u *Unit) WriteOff() {
	u.status = UnitSold
	u.orderID = nil
}

// CanDelete reports whether the unit record may be removed.
// Sold units are history and must never be deleted.
func (u *Unit) CanDelete() bool {
	return u.status != UnitSold
}
