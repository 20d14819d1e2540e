// Package offline contains the client-side pending action model for the
// offline action queue: a durable FIFO of mutations that failed only because
// the network was unreachable, replayed in order once connectivity returns.
package offline

import (
	"encoding/json"
	"fmt"
	"time"

	"orderdesk/internal/pkg/errs"
)

// OperationKind tags the payload of a pending action so replay knows how to
// decode and dispatch it.
type OperationKind string

const (
	// OpConfirmDelivery is a deferred delivery sub-status transition, the
	// primary mutation buffered while a courier's device is offline.
	OpConfirmDelivery OperationKind = "confirm_delivery"
)

// Validate checks the kind is one of the defined operations.
func (k OperationKind) Validate() error {
	switch k {
	case OpConfirmDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("operation kind",
			fmt.Errorf("%q is not a valid operation kind", string(k)))
	}
}

// ConfirmDeliveryPayload is the verbatim capture of a delivery confirmation
// that could not reach the server. Replaying it must be safe to do twice:
// the delivery sub-machine treats re-applied terminal transitions as no-ops.
type ConfirmDeliveryPayload struct {
	OrderID        int64    `json:"orderId"`
	CourierID      string   `json:"courierId"`
	DeliveryStatus string   `json:"deliveryStatus"`
	RecipientName  string   `json:"recipientName,omitempty"`
	ProofPhotoURL  string   `json:"proofPhotoUrl,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
}

// PendingAction is one entry of the device-local durable queue. The id is
// assigned by the queue in strictly increasing order; replay follows id order.
type PendingAction struct {
	ID        uint64          `json:"id"`
	Kind      OperationKind   `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
	Synced    bool            `json:"synced"`
}

// NewPendingAction captures an operation for later replay. The id stays zero
// until the queue assigns one on enqueue.
func NewPendingAction(kind OperationKind, payload any, now time.Time) (PendingAction, error) {
	if err := kind.Validate(); err != nil {
		return PendingAction{}, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return PendingAction{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	return PendingAction{
		Kind:      kind,
		Payload:   raw,
		Timestamp: now.UTC(),
	}, nil
}
