package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// ConfirmDeliveryCommandHandler advances an order's delivery sub-status on
// behalf of its assigned courier. Replaying an already-applied terminal
// confirmation is a no-op success with no duplicate audit entry, which makes
// offline replays safe to apply twice.
type ConfirmDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmations.
func NewConfirmDeliveryCommandHandler(uowFactory OrderUoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation command.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	proof, err := buildProof(cmd.Proof())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	from := aggregate.DeliveryStatus()
	if err = aggregate.AdvanceDelivery(cmd.Actor().ID(), cmd.Target(), proof, now); err != nil {
		return err
	}

	if aggregate.DeliveryStatus() == from {
		// Idempotent replay: nothing changed, nothing to persist or audit.
		return uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	snapshot, err := deliverySnapshot(from, aggregate.DeliveryStatus(), cmd.Actor().ID())
	if err != nil {
		return err
	}
	if err = appendAudit(ctx, uow.AuditRepository(),
		auditEntityOrder, orderEntityID(aggregate),
		audit.ActionDeliveryStatusChange, cmd.Actor(), snapshot, now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildProof(input DeliveryProofInput) (*order.DeliveryProof, error) {
	proof := &order.DeliveryProof{
		RecipientName: input.RecipientName,
		PhotoURL:      input.ProofPhotoURL,
	}

	// Location absence is tolerated; a present but malformed one is not.
	if input.Lat != nil && input.Lng != nil {
		point, err := kernel.NewGeoPoint(*input.Lat, *input.Lng)
		if err != nil {
			return nil, err
		}
		proof.Location = &point
	}

	return proof, nil
}
