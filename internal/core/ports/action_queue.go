package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/offline"
)

// ActionQueue is the device-local durable FIFO of pending mutations.
//
// Guarantees:
//   - Enqueue assigns strictly increasing ids and survives process restarts
//   - ListPending returns unsynced actions in enqueue order
//   - MarkSynced removes an action after successful replay
//
// The queue provides at-least-once delivery: a crash between a successful
// replay and MarkSynced causes a duplicate replay, so every enqueued
// operation must be safe to apply twice.
type ActionQueue interface {
	Enqueue(ctx context.Context, action offline.PendingAction) (uint64, error)
	ListPending(ctx context.Context) ([]offline.PendingAction, error)
	MarkSynced(ctx context.Context, id uint64) error
}
