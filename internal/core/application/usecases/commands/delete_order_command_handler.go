package commands

import (
	"context"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/pkg/errs"
)

// DeleteOrderCommandHandler removes an order and cascades to its items.
// Orders are deletable only in "new" or "cancelled" status, which by the
// lifecycle invariant never reserved stock, so deletion never touches units.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion operations.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order deletion command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Actor().IsCourier() {
		return errs.NewUnauthorizedError("couriers cannot delete orders")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if !aggregate.CanDelete() {
		return errs.NewConflictErrorWithCause("order deletion",
			fmt.Errorf("cannot delete an order that is %s", aggregate.Status()))
	}

	if err = orderRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	snapshot, err := orderSnapshot(aggregate)
	if err != nil {
		return err
	}
	if err = appendAudit(ctx, uow.AuditRepository(),
		auditEntityOrder, orderEntityID(aggregate),
		audit.ActionDelete, cmd.Actor(), snapshot, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
