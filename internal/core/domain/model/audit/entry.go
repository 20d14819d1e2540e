// Package audit contains the immutable audit trail model. One entry is
// appended per state-changing operation across the core, in the same logical
// operation as the mutation it records; entries are never updated or deleted.
package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// Action classifies what an audit entry records.
type Action string

const (
	// ActionCreate records the creation of an entity.
	ActionCreate Action = "create"
	// ActionUpdate records an edit of an entity's own fields.
	ActionUpdate Action = "update"
	// ActionDelete records the deletion of an entity.
	ActionDelete Action = "delete"
	// ActionStatusChange records an order lifecycle transition, snapshot {from, to}.
	ActionStatusChange Action = "status_change"
	// ActionCourierAssigned records a courier (re)assignment, distinct from the
	// status change that may accompany it.
	ActionCourierAssigned Action = "courier_assigned"
	// ActionDeliveryStatusChange records a delivery sub-status transition,
	// snapshot {from, to, courier}.
	ActionDeliveryStatusChange Action = "delivery_status_change"
)

// Validate checks the action is one of the defined values.
func (a Action) Validate() error {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete,
		ActionStatusChange, ActionCourierAssigned, ActionDeliveryStatusChange:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("audit action",
			fmt.Errorf("%q is not a valid audit action", string(a)))
	}
}

// Entry is one immutable audit record: which entity changed, how, by whom,
// and a snapshot payload of the relevant state.
type Entry struct {
	id        kernel.UUID
	entity    string
	entityID  string
	action    Action
	userID    kernel.UUID
	snapshot  json.RawMessage
	timestamp time.Time

	isConstructed bool
}

// NewEntry creates an audit record for a completed state change.
// The snapshot may be nil when the action needs no payload.
func NewEntry(entity, entityID string, action Action, userID kernel.UUID, snapshot json.RawMessage, now time.Time) (*Entry, error) {
	if entity == "" {
		return nil, errs.NewValueIsRequiredError("entity")
	}
	if entityID == "" {
		return nil, errs.NewValueIsRequiredError("entityId")
	}
	if err := action.Validate(); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return &Entry{
		id:            kernel.NewUUID(),
		entity:        entity,
		entityID:      entityID,
		action:        action,
		userID:        userID,
		snapshot:      snapshot,
		timestamp:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an audit record from persistence.
func RestoreEntry(id kernel.UUID, entity, entityID string, action Action, userID kernel.UUID, snapshot json.RawMessage, timestamp time.Time) *Entry {
	return &Entry{
		id:            id,
		entity:        entity,
		entityID:      entityID,
		action:        action,
		userID:        userID,
		snapshot:      snapshot,
		timestamp:     timestamp,
		isConstructed: true,
	}
}

// Validate ensures the Entry was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return errs.NewValueIsRequiredError("entry must be created via NewEntry constructor")
	}
	return nil
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// Entity returns the audited entity kind, e.g. "order" or "stock_unit".
func (e *Entry) Entity() string { return e.entity }

// EntityID returns the audited entity's identifier.
func (e *Entry) EntityID() string { return e.entityID }

// Action returns what happened.
func (e *Entry) Action() Action { return e.action }

// UserID returns the actor who performed the operation.
func (e *Entry) UserID() kernel.UUID { return e.userID }

// Snapshot returns the state payload captured with the entry.
func (e *Entry) Snapshot() json.RawMessage { return e.snapshot }

// Timestamp returns when the operation happened.
func (e *Entry) Timestamp() time.Time { return e.timestamp }
