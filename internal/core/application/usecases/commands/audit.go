package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// Audit entity kinds.
const (
	auditEntityOrder     = "order"
	auditEntityStockUnit = "stock_unit"
)

func appendAudit(
	ctx context.Context,
	repo ports.AuditRepository,
	entity, entityID string,
	action audit.Action,
	actor kernel.Actor,
	snapshot json.RawMessage,
	now time.Time,
) error {
	entry, err := audit.NewEntry(entity, entityID, action, actor.ID(), snapshot, now)
	if err != nil {
		return err
	}
	return repo.Append(ctx, entry)
}

func orderEntityID(o *order.Order) string {
	return strconv.FormatInt(o.ID(), 10)
}

// orderSnapshot captures the mutable order fields for create/update entries.
func orderSnapshot(o *order.Order) (json.RawMessage, error) {
	items := make([]map[string]any, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, map[string]any{
			"productId": item.ProductID(),
			"quantity":  item.Quantity(),
			"price":     item.Price(),
			"serial":    item.Serial(),
		})
	}

	return json.Marshal(map[string]any{
		"number":        o.Number(),
		"status":        o.Status().String(),
		"customerName":  o.CustomerName(),
		"customerPhone": o.CustomerPhone(),
		"address":       o.Address(),
		"deliveryDate":  o.DeliveryDate(),
		"total":         o.Total(),
		"items":         items,
	})
}

// transitionSnapshot captures a lifecycle transition as {from, to}.
func transitionSnapshot(from, to order.Status) (json.RawMessage, error) {
	return json.Marshal(map[string]string{
		"from": from.String(),
		"to":   to.String(),
	})
}

// courierSnapshot captures a courier (re)assignment.
func courierSnapshot(courierID kernel.UUID) (json.RawMessage, error) {
	return json.Marshal(map[string]string{
		"courier": courierID.String(),
	})
}

// deliverySnapshot captures a delivery sub-status transition as {from, to, courier}.
func deliverySnapshot(from, to order.DeliveryStatus, courierID kernel.UUID) (json.RawMessage, error) {
	return json.Marshal(map[string]string{
		"from":    from.String(),
		"to":      to.String(),
		"courier": courierID.String(),
	})
}
