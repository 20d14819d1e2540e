package commands

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"
)

// ChangeOrderStatusResult is the outcome of a lifecycle transition.
// SkippedSerials lists serialized items whose stock unit could not be
// reserved during a picking/shipped transition: the transition itself
// succeeded, but the operator should resolve the listed serials manually.
type ChangeOrderStatusResult struct {
	Order          *order.Order
	SkippedSerials []string
}

// ChangeOrderStatusCommandHandler is the order lifecycle engine. It validates
// the transition against the adjacency table and applies the stock side
// effects through the inventory ledger:
//
//   - entering picking or shipped reserves each serialized item's unit,
//     skipping units lost to a concurrent reservation
//   - entering completed writes off each serialized item's unit
//   - cancelling an order that holds reservations releases them
//
// The status change, its stock mutations, the movement rows, and the audit
// entries commit in one transaction.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewChangeOrderStatusCommandHandler creates the lifecycle transition handler.
func NewChangeOrderStatusCommandHandler(uowFactory UoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status transition command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if cmd.Actor().IsCourier() {
		return ChangeOrderStatusResult{}, errs.NewUnauthorizedError(
			"couriers cannot change the order status")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	now := time.Now().UTC()
	auditRepo := uow.AuditRepository()

	if cmd.CourierID() != nil {
		changed, err := aggregate.AssignCourier(*cmd.CourierID())
		if err != nil {
			return ChangeOrderStatusResult{}, err
		}
		if changed {
			snapshot, err := courierSnapshot(*cmd.CourierID())
			if err != nil {
				return ChangeOrderStatusResult{}, err
			}
			if err = appendAudit(ctx, auditRepo,
				auditEntityOrder, orderEntityID(aggregate),
				audit.ActionCourierAssigned, cmd.Actor(), snapshot, now); err != nil {
				return ChangeOrderStatusResult{}, err
			}
		}
	}

	from := aggregate.Status()
	if err = aggregate.TransitionTo(cmd.Target()); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	ledger := services.NewInventoryLedger(uow.StockRepository(), uow.MovementRepository())
	skipped, err := h.applyStockEffects(ctx, ledger, aggregate, from, cmd, now)
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	snapshot, err := transitionSnapshot(from, aggregate.Status())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err = appendAudit(ctx, auditRepo,
		auditEntityOrder, orderEntityID(aggregate),
		audit.ActionStatusChange, cmd.Actor(), snapshot, now); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	return ChangeOrderStatusResult{Order: aggregate, SkippedSerials: skipped}, nil
}

func (h *ChangeOrderStatusCommandHandler) applyStockEffects(
	ctx context.Context,
	ledger services.InventoryLedger,
	aggregate *order.Order,
	from order.Status,
	cmd ChangeOrderStatusCommand,
	now time.Time,
) ([]string, error) {
	switch {
	case cmd.Target().ReservesStock():
		return h.reserveItems(ctx, ledger, aggregate, cmd, now)
	case cmd.Target().WritesOffStock():
		return nil, h.writeOffItems(ctx, ledger, aggregate, cmd, now)
	case cmd.Target() == order.StatusCancelled && from.HoldsStock():
		return nil, h.releaseItems(ctx, ledger, aggregate, cmd, now)
	default:
		return nil, nil
	}
}

func (h *ChangeOrderStatusCommandHandler) reserveItems(
	ctx context.Context,
	ledger services.InventoryLedger,
	aggregate *order.Order,
	cmd ChangeOrderStatusCommand,
	now time.Time,
) ([]string, error) {
	var skipped []string
	for _, item := range aggregate.SerializedItems() {
		_, err := ledger.Reserve(ctx, item.ProductID(), *item.Serial(), aggregate.ID(), cmd.Actor(), now)
		if err != nil {
			// A unit lost to a concurrent reservation, already sold, or
			// missing does not abort the transition; the serial is surfaced
			// to the operator instead.
			if errors.Is(err, errs.ErrConflict) {
				skipped = append(skipped, *item.Serial())
				continue
			}
			return nil, err
		}
	}
	return skipped, nil
}

func (h *ChangeOrderStatusCommandHandler) writeOffItems(
	ctx context.Context,
	ledger services.InventoryLedger,
	aggregate *order.Order,
	cmd ChangeOrderStatusCommand,
	now time.Time,
) error {
	for _, item := range aggregate.SerializedItems() {
		if _, err := ledger.WriteOff(ctx, item.ProductID(), *item.Serial(), cmd.Actor(), now); err != nil {
			return err
		}
	}
	return nil
}

func (h *ChangeOrderStatusCommandHandler) releaseItems(
	ctx context.Context,
	ledger services.InventoryLedger,
	aggregate *order.Order,
	cmd ChangeOrderStatusCommand,
	now time.Time,
) error {
	for _, item := range aggregate.SerializedItems() {
		if err := ledger.Release(ctx, item.ProductID(), *item.Serial(), aggregate.ID(), cmd.Actor(), now); err != nil {
			return err
		}
	}
	return nil
}
