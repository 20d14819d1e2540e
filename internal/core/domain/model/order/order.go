package order

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// DeliveryProof carries the artifacts a courier submits when marking an order
// delivered. RecipientName and PhotoURL are mandatory; Location is optional
// because a failed geolocation read must not block the confirmation.
type DeliveryProof struct {
	RecipientName string
	PhotoURL      string
	Location      *kernel.GeoPoint
}

// Order is the aggregate root of the order lifecycle. It owns its line items,
// the primary status state machine, the delivery sub-status advanced by the
// assigned courier, and the proof-of-delivery artifacts.
//
// Order maintains these invariants:
//   - Status mutates only through TransitionTo, following the adjacency table
//   - The monetary total is computed from items and delivery cost, never stored
//   - Deletion is permitted only in a status that never reserved stock
//   - Only the assigned courier advances the delivery sub-status
//   - Can only be created through NewOrder or restored via RestoreOrder
type Order struct {
	id     int64
	number string
	status Status

	customerName  string
	customerPhone string
	address       string

	deliveryDate *time.Time
	deliverySlot *string
	deliveryCost decimal.Decimal
	courierID    *kernel.UUID

	paymentMethod string
	isPaid        bool

	deliveryStatus DeliveryStatus
	recipientName  string
	proofPhotoURL  string
	deliveredAt    *time.Time
	deliveredAtLoc *kernel.GeoPoint

	items []Item

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order in StatusNew with validated details.
// The order id stays zero until the record store assigns one.
func NewOrder(
	number string,
	customerName string,
	customerPhone string,
	address string,
	deliveryDate *time.Time,
	deliverySlot *string,
	deliveryCost decimal.Decimal,
	paymentMethod string,
	items []Item,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        StatusNew,
		paymentMethod: paymentMethod,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setNumber(number),
		o.setCustomer(customerName, customerPhone),
		o.setAddress(address),
		o.setDelivery(deliveryDate, deliverySlot, deliveryCost),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
// Status and sub-status are taken as stored; the caller is responsible for
// passing values that were valid when written.
func RestoreOrder(
	id int64,
	number string,
	status Status,
	customerName string,
	customerPhone string,
	address string,
	deliveryDate *time.Time,
	deliverySlot *string,
	deliveryCost decimal.Decimal,
	courierID *kernel.UUID,
	paymentMethod string,
	isPaid bool,
	deliveryStatus DeliveryStatus,
	recipientName string,
	proofPhotoURL string,
	deliveredAt *time.Time,
	deliveredAtLoc *kernel.GeoPoint,
	items []Item,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:             id,
		number:         number,
		status:         status,
		customerName:   customerName,
		customerPhone:  customerPhone,
		address:        address,
		deliveryDate:   deliveryDate,
		deliverySlot:   deliverySlot,
		deliveryCost:   deliveryCost,
		courierID:      courierID,
		paymentMethod:  paymentMethod,
		isPaid:         isPaid,
		deliveryStatus: deliveryStatus,
		recipientName:  recipientName,
		proofPhotoURL:  proofPhotoURL,
		deliveredAt:    deliveredAt,
		deliveredAtLoc: deliveredAtLoc,
		items:          items,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the store-assigned order identifier (zero until persisted).
func (o *Order) ID() int64 { return o.id }

// SetID attaches the store-assigned identifier after the first insert.
func (o *Order) SetID(id int64) { o.id = id }

// Number returns the human-readable order number.
func (o *Order) Number() string { return o.number }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CustomerName returns the customer contact name.
func (o *Order) CustomerName() string { return o.customerName }

// CustomerPhone returns the customer contact phone.
func (o *Order) CustomerPhone() string { return o.customerPhone }

// Address returns the delivery address.
func (o *Order) Address() string { return o.address }

// DeliveryDate returns the planned delivery date (date component only), or nil.
func (o *Order) DeliveryDate() *time.Time { return o.deliveryDate }

// DeliverySlot returns the planned delivery time slot, or nil.
func (o *Order) DeliverySlot() *string { return o.deliverySlot }

// DeliveryCost returns the delivery cost added to the total.
func (o *Order) DeliveryCost() decimal.Decimal { return o.deliveryCost }

// Courier returns the assigned courier's id, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID { return o.courierID }

// PaymentMethod returns the recorded payment method.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// IsPaid reports whether payment was recorded.
func (o *Order) IsPaid() bool { return o.isPaid }

// MarkPaid records that payment was received.
func (o *Order) MarkPaid() { o.isPaid = true; o.touch() }

// DeliveryStatus returns the delivery sub-status, DeliveryUnknown when unset.
func (o *Order) DeliveryStatus() DeliveryStatus { return o.deliveryStatus }

// RecipientName returns the proof-of-delivery recipient name, empty until delivered.
func (o *Order) RecipientName() string { return o.recipientName }

// ProofPhotoURL returns the proof-of-delivery photo reference, empty until delivered.
func (o *Order) ProofPhotoURL() string { return o.proofPhotoURL }

// DeliveredAt returns the delivery timestamp, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// DeliveredLocation returns the geo point captured at delivery, or nil.
func (o *Order) DeliveredLocation() *kernel.GeoPoint { return o.deliveredAtLoc }

// Items returns the order lines. The returned slice must not be mutated.
func (o *Order) Items() []Item { return o.items }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Total returns the computed order total:
// sum of item line amounts plus delivery cost. The total is never stored or
// mutated independently, which keeps the monetary invariant by construction.
func (o *Order) Total() decimal.Decimal {
	total := o.deliveryCost
	for _, item := range o.items {
		total = total.Add(item.Amount())
	}
	return total
}

// SerializedItems returns the items that reference a stock unit serial.
// These are the items reserved on picking/shipping and written off on completion.
func (o *Order) SerializedItems() []Item {
	var out []Item
	for _, item := range o.items {
		if item.IsSerialized() {
			out = append(out, item)
		}
	}
	return out
}

// TransitionTo moves the order to target following the adjacency table.
// Returns a Conflict error for edges not in the table. Stock side effects are
// applied by the caller, which knows the inventory ledger.
func (o *Order) TransitionTo(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	o.touch()
	return nil
}

// AssignCourier records the courier responsible for delivery and seeds the
// delivery sub-status. Reassignment is allowed while the order is not terminal.
// Returns true when the assignment actually changed, so the caller can emit a
// distinct courier_assigned audit entry.
func (o *Order) AssignCourier(courierID kernel.UUID) (bool, error) {
	if err := courierID.Validate(); err != nil {
		return false, err
	}
	if o.status.IsTerminal() {
		return false, errs.NewConflictErrorWithCause("courier assignment",
			fmt.Errorf("order is %s", o.status))
	}
	if o.courierID != nil && o.courierID.IsEqual(courierID) {
		return false, nil
	}

	o.courierID = &courierID
	if o.deliveryStatus == DeliveryUnknown {
		o.deliveryStatus = DeliveryAssigned
	}
	o.touch()
	return true, nil
}

// AdvanceDelivery moves the delivery sub-status on behalf of a courier.
//
// Rules:
//   - Only the assigned courier may advance the sub-status (Unauthorized otherwise)
//   - DeliveryDelivered requires a proof with non-empty recipient name and
//     photo reference, rejected with a validation error before any state change
//   - Re-applying the current terminal sub-status is a no-op success, which
//     makes offline replays safe to apply twice
//   - All other transitions follow the sub-machine adjacency
//
// On success the delivered timestamp is stamped with now, plus the proof
// location when the courier's device produced one.
func (o *Order) AdvanceDelivery(courierID kernel.UUID, target DeliveryStatus, proof *DeliveryProof, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if o.courierID == nil || !o.courierID.IsEqual(courierID) {
		return errs.NewUnauthorizedError("courier is not assigned to this order")
	}

	// Idempotent replay of an already-applied terminal confirmation.
	if o.deliveryStatus.IsTerminal() && o.deliveryStatus == target {
		return nil
	}

	if !o.deliveryStatus.CanTransitionTo(target) {
		return errs.NewConflictErrorWithCause("delivery status transition",
			fmt.Errorf("%s -> %s is not allowed", o.deliveryStatus, target))
	}

	if target == DeliveryDelivered {
		if proof == nil || proof.RecipientName == "" {
			return errs.NewValueIsRequiredError("recipientName")
		}
		if proof.PhotoURL == "" {
			return errs.NewValueIsRequiredError("proofPhotoUrl")
		}

		o.recipientName = proof.RecipientName
		o.proofPhotoURL = proof.PhotoURL
		stamped := now.UTC()
		o.deliveredAt = &stamped
		o.deliveredAtLoc = proof.Location
	}

	o.deliveryStatus = target
	o.touch()
	return nil
}

// UpdateDetails replaces the editable order fields. Rejected with Conflict
// once the order is terminal. The total recomputes from the new items.
func (o *Order) UpdateDetails(
	customerName string,
	customerPhone string,
	address string,
	deliveryDate *time.Time,
	deliverySlot *string,
	deliveryCost decimal.Decimal,
	paymentMethod string,
	items []Item,
) error {
	if o.status.IsTerminal() {
		return errs.NewConflictErrorWithCause("order update",
			fmt.Errorf("order is %s", o.status))
	}

	if err := errors.Join(
		o.setCustomer(customerName, customerPhone),
		o.setAddress(address),
		o.setDelivery(deliveryDate, deliverySlot, deliveryCost),
		o.setItems(items),
	); err != nil {
		return err
	}

	o.paymentMethod = paymentMethod
	o.touch()
	return nil
}

// CanDelete reports whether the order may be deleted. Per the lifecycle
// invariant orders in StatusNew or StatusCancelled never reserved stock, so
// deleting them cascades to items only and never touches stock units.
func (o *Order) CanDelete() bool {
	return o.status.AllowsDeletion()
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomer(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	o.customerPhone = phone
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setDelivery(date *time.Time, slot *string, cost decimal.Decimal) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryCost",
			fmt.Errorf("%s is negative", cost))
	}
	if date != nil {
		// Calendar truncation in the caller's location. Truncate would cut
		// against the UTC epoch and shift the date for non-UTC timestamps.
		y, m, d := date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
		o.deliveryDate = &day
	} else {
		o.deliveryDate = nil
	}
	o.deliverySlot = slot
	o.deliveryCost = cost
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
