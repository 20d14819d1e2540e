package commands

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/offline"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// DeliveryConfirmer is the delivery confirmation entry point the HTTP layer
// and the offline decorator share.
type DeliveryConfirmer interface {
	Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error
}

// OfflineConfirmer decorates a DeliveryConfirmer with the offline queue.
// A confirmation failing only because the network is unreachable is captured
// verbatim in the device-local queue and reported as deferred success; every
// other error kind surfaces immediately.
type OfflineConfirmer struct {
	inner DeliveryConfirmer
	queue ports.ActionQueue
}

// NewOfflineConfirmer wraps a delivery confirmer with connectivity buffering.
func NewOfflineConfirmer(inner DeliveryConfirmer, queue ports.ActionQueue) OfflineConfirmer {
	return OfflineConfirmer{
		inner: inner,
		queue: queue,
	}
}

// Handle attempts the confirmation, enqueueing it on connectivity loss.
// Deferred reports whether the operation was queued instead of applied.
func (c *OfflineConfirmer) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (deferred bool, err error) {
	err = c.inner.Handle(ctx, cmd)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errs.ErrConnectivity) {
		return false, err
	}

	payload := offline.ConfirmDeliveryPayload{
		OrderID:        cmd.OrderID(),
		CourierID:      cmd.Actor().ID().String(),
		DeliveryStatus: cmd.Target().String(),
		RecipientName:  cmd.Proof().RecipientName,
		ProofPhotoURL:  cmd.Proof().ProofPhotoURL,
		Lat:            cmd.Proof().Lat,
		Lng:            cmd.Proof().Lng,
	}

	action, err := offline.NewPendingAction(offline.OpConfirmDelivery, payload, time.Now().UTC())
	if err != nil {
		return false, err
	}
	if _, err = c.queue.Enqueue(ctx, action); err != nil {
		return false, err
	}

	return true, nil
}
