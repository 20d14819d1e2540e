package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new orders in "new" status; stock units stay untouched until the
// order enters picking.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command. Returns the persisted order
// with its store-assigned id.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if cmd.Actor().IsCourier() {
		return nil, errs.NewUnauthorizedError("couriers cannot create orders")
	}

	aggregate, err := buildOrder(cmd.Details())
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

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	snapshot, err := orderSnapshot(aggregate)
	if err != nil {
		return nil, err
	}
	if err = appendAudit(ctx, uow.AuditRepository(),
		auditEntityOrder, orderEntityID(aggregate),
		audit.ActionCreate, cmd.Actor(), snapshot, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func buildOrder(details OrderDetails) (*order.Order, error) {
	items, err := buildItems(details.Items)
	if err != nil {
		return nil, err
	}

	return order.NewOrder(
		details.Number,
		details.CustomerName,
		details.CustomerPhone,
		details.Address,
		details.DeliveryDate,
		details.DeliverySlot,
		details.DeliveryCost,
		details.PaymentMethod,
		items,
	)
}

func buildItems(inputs []ItemInput) ([]order.Item, error) {
	items := make([]order.Item, 0, len(inputs))
	for _, in := range inputs {
		item, err := order.NewItem(in.ProductID, in.Quantity, in.Price, in.Discount, in.Serial, in.IsAccessory)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
