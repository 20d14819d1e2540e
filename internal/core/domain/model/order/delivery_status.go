package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// DeliveryStatus is the sub-state of an order's last-mile delivery, advanced
// only by the assigned courier. It is independent of the primary Status.
//
// Sub-state transitions:
//
//	Assigned ──> EnRoute ──> Delivered
//	                  └────> Failed
//
// Delivered and Failed are terminal for the sub-machine, but re-applying the
// same terminal state with the same payload is a no-op success so that offline
// replays stay safe under at-least-once delivery.
type DeliveryStatus int

const (
	// DeliveryUnknown represents an unset delivery sub-status.
	DeliveryUnknown DeliveryStatus = iota

	// DeliveryAssigned is the initial sub-status once a courier takes the order.
	DeliveryAssigned

	// DeliveryEnRoute indicates the courier is on the way to the customer.
	DeliveryEnRoute

	// DeliveryDelivered indicates handover succeeded; requires proof of delivery.
	DeliveryDelivered

	// DeliveryFailed indicates the delivery attempt failed; requires no proof.
	DeliveryFailed
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:   "unknown",
		DeliveryAssigned:  "assigned",
		DeliveryEnRoute:   "en_route",
		DeliveryDelivered: "delivered",
		DeliveryFailed:    "failed",
	}
}

func deliveryAdjacency() map[DeliveryStatus][]DeliveryStatus {
	return map[DeliveryStatus][]DeliveryStatus{
		DeliveryAssigned:  {DeliveryEnRoute},
		DeliveryEnRoute:   {DeliveryDelivered, DeliveryFailed},
		DeliveryDelivered: {},
		DeliveryFailed:    {},
	}
}

// DeliveryStatusFromString parses a delivery sub-status wire name.
func DeliveryStatusFromString(s string) (DeliveryStatus, error) {
	for status, name := range getDeliveryStatusStrings() {
		if status != DeliveryUnknown && name == s {
			return status, nil
		}
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
		fmt.Errorf("%q is not a valid delivery status", s))
}

// String returns the wire name of the sub-status. Implements fmt.Stringer.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the DeliveryStatus is one of the defined sub-statuses.
func (s DeliveryStatus) Validate() error {
	switch s {
	case DeliveryAssigned, DeliveryEnRoute, DeliveryDelivered, DeliveryFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("deliveryStatus",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
}

// IsTerminal reports whether the sub-machine allows no further transitions.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed
}

// CanTransitionTo reports whether the sub-machine allows moving to target.
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	for _, next := range deliveryAdjacency()[s] {
		if next == target {
			return true
		}
	}
	return false
}
