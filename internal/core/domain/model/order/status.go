package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow the
// correct business workflow.
//
// State transitions:
//
//	New ──> InProgress ──> Confirmed ──> Picking ──> Ready ──> Shipped ──> Completed
//	                                        └────────────────────┘
//	                                      (Picking may ship directly)
//
// Cancelled is reachable from every non-terminal state. Completed and
// Cancelled are terminal. Entering Picking or Shipped reserves serialized
// stock; entering Completed writes it off. Those side effects are applied by
// the status change handler, not by the status value itself.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is the initial status assigned on creation. Orders may be
	// edited and deleted freely while in this status.
	StatusNew

	// StatusInProgress indicates a manager has started working the order.
	StatusInProgress

	// StatusConfirmed indicates the customer confirmed the order. Confirmed
	// orders become visible to their assigned courier.
	StatusConfirmed

	// StatusPicking indicates warehouse picking has started. Entering this
	// status reserves the stock units referenced by serialized items.
	StatusPicking

	// StatusReady indicates picking finished and the order awaits handoff.
	StatusReady

	// StatusShipped indicates the order left with a courier. Entering this
	// status reserves any serialized items not already reserved.
	StatusShipped

	// StatusCompleted indicates the order was delivered and closed. Entering
	// this status writes off the reserved stock units. Terminal.
	StatusCompleted

	// StatusCancelled indicates the order was abandoned. Reachable from any
	// non-terminal status. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusNew:        "new",
		StatusInProgress: "in_progress",
		StatusConfirmed:  "confirmed",
		StatusPicking:    "picking",
		StatusReady:      "ready",
		StatusShipped:    "shipped",
		StatusCompleted:  "completed",
		StatusCancelled:  "cancelled",
	}
}

// adjacency is the only source of truth for allowed transitions. Transitions
// absent from this table are rejected with Conflict, deliberately stricter
// than a permissive merge of arbitrary target statuses.
func adjacency() map[Status][]Status {
	return map[Status][]Status{
		StatusNew:        {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusPicking, StatusCancelled},
		StatusPicking:    {StatusReady, StatusShipped, StatusCancelled},
		StatusReady:      {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusCompleted, StatusCancelled},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}
}

// StatusFromString parses a status name used on the wire and in storage.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the adjacency table allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range adjacency()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the adjacency table and returns the
// new status, or a Conflict error when the edge does not exist.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewConflictErrorWithCause("status transition",
			fmt.Errorf("%s -> %s is not allowed", s, target))
	}
	return target, nil
}

// ReservesStock reports whether entering this status reserves serialized items.
func (s Status) ReservesStock() bool {
	return s == StatusPicking || s == StatusShipped
}

// HoldsStock reports whether an order in this status may hold reservations,
// so cancelling from it must release the held units.
func (s Status) HoldsStock() bool {
	return s == StatusPicking || s == StatusReady || s == StatusShipped
}

// WritesOffStock reports whether entering this status writes off serialized items.
func (s Status) WritesOffStock() bool {
	return s == StatusCompleted
}

// AllowsDeletion reports whether an order in this status may be deleted.
// Only never-reserved orders qualify, keeping deletion free of stock effects.
func (s Status) AllowsDeletion() bool {
	return s == StatusNew || s == StatusCancelled
}
