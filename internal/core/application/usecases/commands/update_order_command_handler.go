package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// UpdateOrderCommandHandler replaces the editable fields of an order.
// Terminal orders reject the update with Conflict.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order update command and returns the updated order.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if cmd.Actor().IsCourier() {
		return nil, errs.NewUnauthorizedError("couriers cannot edit orders")
	}

	items, err := buildItems(cmd.Details().Items)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	details := cmd.Details()
	if err = aggregate.UpdateDetails(
		details.CustomerName,
		details.CustomerPhone,
		details.Address,
		details.DeliveryDate,
		details.DeliverySlot,
		details.DeliveryCost,
		details.PaymentMethod,
		items,
	); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	snapshot, err := orderSnapshot(aggregate)
	if err != nil {
		return nil, err
	}
	if err = appendAudit(ctx, uow.AuditRepository(),
		auditEntityOrder, orderEntityID(aggregate),
		audit.ActionUpdate, cmd.Actor(), snapshot, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
