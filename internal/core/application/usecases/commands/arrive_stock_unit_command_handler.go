package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/stock"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/pkg/errs"
)

// ArriveStockUnitCommandHandler registers a serialized unit entering stock
// through the inventory ledger, which rejects duplicate serials and appends
// the arrival movement in the same transaction.
type ArriveStockUnitCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewArriveStockUnitCommandHandler creates a handler for stock arrivals.
func NewArriveStockUnitCommandHandler(uowFactory StockUoWFactory) ArriveStockUnitCommandHandler {
	return ArriveStockUnitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the stock arrival command and returns the persisted unit.
func (h *ArriveStockUnitCommandHandler) Handle(ctx context.Context, cmd ArriveStockUnitCommand) (*stock.Unit, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if cmd.Actor().IsCourier() {
		return nil, errs.NewUnauthorizedError("couriers cannot manage stock")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	ledger := services.NewInventoryLedger(uow.StockRepository(), uow.MovementRepository())
	unit, err := ledger.Arrive(ctx, cmd.ProductID(), cmd.Serial(), cmd.Attrs(), cmd.Actor(), now)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(map[string]any{
		"productId": unit.ProductID(),
		"serial":    unit.Serial(),
		"condition": unit.Condition(),
		"supplier":  unit.Supplier(),
	})
	if err != nil {
		return nil, err
	}
	if err = appendAudit(ctx, uow.AuditRepository(),
		auditEntityStockUnit, strconv.FormatInt(unit.ID(), 10),
		audit.ActionCreate, cmd.Actor(), snapshot, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return unit, nil
}
