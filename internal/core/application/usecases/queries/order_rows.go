// Package queries contains read-only operations bypassing the aggregate
// repositories, reading through raw SQL in the CQRS style. Courier visibility
// is applied server-side before rows leave the query handlers.
package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

const selectOrders = `
	SELECT
		id, number, status,
		customer_name, customer_phone, address,
		delivery_date, delivery_slot, delivery_cost,
		courier_id, payment_method, is_paid,
		delivery_status, recipient_name, proof_photo_url,
		delivered_at, delivered_lat, delivered_lng,
		created_at, updated_at
	FROM orders
`

const selectItems = `
	SELECT id, order_id, product_id, quantity, price, discount, serial, is_accessory
	FROM order_items
	WHERE order_id IN ?
	ORDER BY id
`

// loadOrders scans order rows plus their items and reconstructs domain
// aggregates, so the courier visibility filter evaluates real orders.
func loadOrders(ctx context.Context, db *gorm.DB, where string, args ...any) ([]*order.Order, error) {
	rows, err := db.WithContext(ctx).Raw(selectOrders+where, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type orderRow struct {
		id             int64
		number         string
		status         order.Status
		customerName   string
		customerPhone  string
		address        string
		deliveryDate   *time.Time
		deliverySlot   *string
		deliveryCost   decimal.Decimal
		courierID      *kernel.UUID
		paymentMethod  string
		isPaid         bool
		deliveryStatus order.DeliveryStatus
		recipientName  string
		proofPhotoURL  string
		deliveredAt    *time.Time
		deliveredLoc   *kernel.GeoPoint
	}

	var (
		scanned []orderRow
		created []time.Time
		updated []time.Time
	)

	for rows.Next() {
		var (
			r              orderRow
			status         string
			deliveryStatus *string
			courierID      *uuid.UUID
			lat, lng       *float64
			createdAt      time.Time
			updatedAt      time.Time
		)

		if err = rows.Scan(
			&r.id, &r.number, &status,
			&r.customerName, &r.customerPhone, &r.address,
			&r.deliveryDate, &r.deliverySlot, &r.deliveryCost,
			&courierID, &r.paymentMethod, &r.isPaid,
			&deliveryStatus, &r.recipientName, &r.proofPhotoURL,
			&r.deliveredAt, &lat, &lng,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}

		if r.status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}
		if deliveryStatus != nil {
			if r.deliveryStatus, err = order.DeliveryStatusFromString(*deliveryStatus); err != nil {
				return nil, err
			}
		}
		if courierID != nil {
			id, idErr := kernel.UUIDFromBytes((*courierID)[:])
			if idErr != nil {
				return nil, idErr
			}
			r.courierID = &id
		}
		if lat != nil && lng != nil {
			point, locErr := kernel.NewGeoPoint(*lat, *lng)
			if locErr != nil {
				return nil, locErr
			}
			r.deliveredLoc = &point
		}

		scanned = append(scanned, r)
		created = append(created, createdAt)
		updated = append(updated, updatedAt)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(scanned) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(scanned))
	for _, r := range scanned {
		ids = append(ids, r.id)
	}
	itemsByOrder, err := loadItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(scanned))
	for i, r := range scanned {
		aggregate, restoreErr := order.RestoreOrder(
			r.id, r.number, r.status,
			r.customerName, r.customerPhone, r.address,
			r.deliveryDate, r.deliverySlot, r.deliveryCost,
			r.courierID, r.paymentMethod, r.isPaid,
			r.deliveryStatus, r.recipientName, r.proofPhotoURL,
			r.deliveredAt, r.deliveredLoc,
			itemsByOrder[r.id], created[i], updated[i],
		)
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func loadItems(ctx context.Context, db *gorm.DB, orderIDs []int64) (map[int64][]order.Item, error) {
	rows, err := db.WithContext(ctx).Raw(selectItems, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	itemsByOrder := make(map[int64][]order.Item)
	for rows.Next() {
		var (
			id, orderID, productID int64
			quantity               int
			price, discount        decimal.Decimal
			serial                 *string
			isAccessory            bool
		)
		if err = rows.Scan(&id, &orderID, &productID, &quantity, &price, &discount, &serial, &isAccessory); err != nil {
			return nil, err
		}
		item := order.RestoreItem(id, productID, quantity, price, discount, serial, isAccessory)
		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}

	return itemsByOrder, rows.Err()
}
