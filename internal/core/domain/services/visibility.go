// Package services contains stateless domain services: the courier visibility
// filter and the inventory ledger that coordinates stock units with their
// append-only movement trail.
package services

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// VisibilityFilter decides which orders a delivery agent may see and act on.
// It is a pure predicate over (order, actor, clock): no side effects, no I/O.
//
// An order is visible to a courier iff all of:
//   - the order is assigned to that courier
//   - the delivery date is today or tomorrow by local calendar date
//   - the status is one of confirmed, picking, ready, shipped, completed
//
// Orders failing any clause are excluded entirely, not shown disabled.
// Non-courier roles bypass the filter and see the full order set subject only
// to their own read permission.
type VisibilityFilter struct{}

// NewVisibilityFilter creates the courier visibility filter.
func NewVisibilityFilter() VisibilityFilter {
	return VisibilityFilter{}
}

func courierVisibleStatuses() map[order.Status]bool {
	return map[order.Status]bool{
		order.StatusConfirmed: true,
		order.StatusPicking:   true,
		order.StatusReady:     true,
		order.StatusShipped:   true,
		order.StatusCompleted: true,
	}
}

// IsVisible reports whether actor may see o, evaluating "today"/"tomorrow"
// against now's calendar date (date-only, no time-of-day component).
func (VisibilityFilter) IsVisible(o *order.Order, actor kernel.Actor, now time.Time) bool {
	if !actor.IsCourier() {
		return true
	}

	courier := o.Courier()
	if courier == nil || !courier.IsEqual(actor.ID()) {
		return false
	}

	date := o.DeliveryDate()
	if date == nil {
		return false
	}
	if !sameDate(*date, now) && !sameDate(*date, now.AddDate(0, 0, 1)) {
		return false
	}

	return courierVisibleStatuses()[o.Status()]
}

// FilterVisible returns the orders actor may see, preserving input order.
func (f VisibilityFilter) FilterVisible(orders []*order.Order, actor kernel.Actor, now time.Time) []*order.Order {
	visible := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if f.IsVisible(o, actor, now) {
			visible = append(visible, o)
		}
	}
	return visible
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
