package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/pkg/errs"
)

// DeleteStockUnitCommandHandler removes a stock unit record. Sold units are
// rejected with Conflict; their records back the movement history.
type DeleteStockUnitCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewDeleteStockUnitCommandHandler creates a handler for stock unit deletion.
func NewDeleteStockUnitCommandHandler(uowFactory StockUoWFactory) DeleteStockUnitCommandHandler {
	return DeleteStockUnitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the stock unit deletion command.
func (h *DeleteStockUnitCommandHandler) Handle(ctx context.Context, cmd DeleteStockUnitCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Actor().IsCourier() {
		return errs.NewUnauthorizedError("couriers cannot manage stock")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stockRepo := uow.StockRepository()
	unit, err := stockRepo.Get(ctx, cmd.UnitID())
	if err != nil {
		return err
	}

	if !unit.CanDelete() {
		return errs.NewConflictErrorWithCause("stock unit deletion",
			fmt.Errorf("serial %s is sold", unit.Serial()))
	}

	if err = stockRepo.Delete(ctx, unit.ID()); err != nil {
		return err
	}

	snapshot, err := json.Marshal(map[string]any{
		"productId": unit.ProductID(),
		"serial":    unit.Serial(),
		"status":    unit.Status().String(),
	})
	if err != nil {
		return err
	}
	if err = appendAudit(ctx, uow.AuditRepository(),
		auditEntityStockUnit, strconv.FormatInt(unit.ID(), 10),
		audit.ActionDelete, cmd.Actor(), snapshot, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
