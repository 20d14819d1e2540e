package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// DeliveryProofInput carries the courier-supplied proof artifacts. Recipient
// name and photo reference are mandatory for the delivered sub-status; the
// location is attached only when the device produced one.
type DeliveryProofInput struct {
	RecipientName string
	ProofPhotoURL string
	Lat           *float64
	Lng           *float64
}

// ConfirmDeliveryCommand represents a courier's request to advance an order's
// delivery sub-status, optionally carrying proof of delivery.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	target  order.DeliveryStatus
	proof   DeliveryProofInput
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a validated delivery confirmation command.
// Proof completeness is checked by the order aggregate, not here, so that an
// incomplete delivered confirmation is rejected before any state changes.
func NewConfirmDeliveryCommand(orderID int64, target order.DeliveryStatus, proof DeliveryProofInput, actor kernel.Actor) (ConfirmDeliveryCommand, error) {
	if err := actor.Validate(); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	if orderID <= 0 {
		return ConfirmDeliveryCommand{}, errs.NewValueIsInvalidError("orderId")
	}
	if err := target.Validate(); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		orderID: orderID,
		target:  target,
		proof:   proof,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being confirmed.
func (c ConfirmDeliveryCommand) OrderID() int64 {
	return c.orderID
}

// Target returns the requested delivery sub-status.
func (c ConfirmDeliveryCommand) Target() order.DeliveryStatus {
	return c.target
}

// Proof returns the courier-supplied proof artifacts.
func (c ConfirmDeliveryCommand) Proof() DeliveryProofInput {
	return c.proof
}

// Actor returns the verified identity performing the operation.
func (c ConfirmDeliveryCommand) Actor() kernel.Actor {
	return c.actor
}
