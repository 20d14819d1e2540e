package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/offline"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// ReplayFailure records one pending action that could not be applied for a
// reason other than connectivity. The action stays queued for manual retry.
type ReplayFailure struct {
	ActionID uint64
	Err      error
}

// ReplayResult summarizes one replay run.
type ReplayResult struct {
	// Applied counts actions replayed and marked synced.
	Applied int

	// Failures lists actions rejected for non-connectivity reasons.
	Failures []ReplayFailure

	// Interrupted is true when the run stopped at a connectivity error,
	// leaving the remaining actions for the next run.
	Interrupted bool
}

// ReplayPendingActionsCommandHandler drains the offline action queue against
// the delivery confirmation workflow. Actions replay in enqueue order; the
// run stops at the first connectivity error since later actions would fail
// the same way. Delivery at-least-once: a crash between a successful replay
// and MarkSynced re-applies the action next run, which the idempotent
// confirmation absorbs.
type ReplayPendingActionsCommandHandler struct {
	queue     ports.ActionQueue
	confirmer DeliveryConfirmer
}

// NewReplayPendingActionsCommandHandler creates the queue replay handler.
func NewReplayPendingActionsCommandHandler(queue ports.ActionQueue, confirmer DeliveryConfirmer) ReplayPendingActionsCommandHandler {
	return ReplayPendingActionsCommandHandler{
		queue:     queue,
		confirmer: confirmer,
	}
}

// Handle replays all pending actions.
func (h *ReplayPendingActionsCommandHandler) Handle(ctx context.Context) (ReplayResult, error) {
	pending, err := h.queue.ListPending(ctx)
	if err != nil {
		return ReplayResult{}, err
	}

	var result ReplayResult
	for _, action := range pending {
		err := h.replay(ctx, action)
		if err == nil {
			if err = h.queue.MarkSynced(ctx, action.ID); err != nil {
				return result, err
			}
			result.Applied++
			continue
		}

		if errors.Is(err, errs.ErrConnectivity) {
			result.Interrupted = true
			return result, nil
		}

		result.Failures = append(result.Failures, ReplayFailure{ActionID: action.ID, Err: err})
	}

	return result, nil
}

func (h *ReplayPendingActionsCommandHandler) replay(ctx context.Context, action offline.PendingAction) error {
	switch action.Kind {
	case offline.OpConfirmDelivery:
		return h.replayConfirmDelivery(ctx, action)
	default:
		return errs.NewValueIsInvalidErrorWithCause("operation kind",
			fmt.Errorf("%q cannot be replayed", string(action.Kind)))
	}
}

func (h *ReplayPendingActionsCommandHandler) replayConfirmDelivery(ctx context.Context, action offline.PendingAction) error {
	var payload offline.ConfirmDeliveryPayload
	if err := json.Unmarshal(action.Payload, &payload); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	courierID, err := kernel.UUIDFromString(payload.CourierID)
	if err != nil {
		return err
	}
	actor, err := kernel.NewActor(courierID, kernel.RoleCourier)
	if err != nil {
		return err
	}
	target, err := order.DeliveryStatusFromString(payload.DeliveryStatus)
	if err != nil {
		return err
	}

	cmd, err := NewConfirmDeliveryCommand(payload.OrderID, target, DeliveryProofInput{
		RecipientName: payload.RecipientName,
		ProofPhotoURL: payload.ProofPhotoURL,
		Lat:           payload.Lat,
		Lng:           payload.Lng,
	}, actor)
	if err != nil {
		return err
	}

	return h.confirmer.Handle(ctx, cmd)
}
