// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status columns hold the wire names so raw SQL reads stay legible.
type OrderDTO struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Number         string `gorm:"uniqueIndex;size:32"`
	Status         string `gorm:"index;size:16"`
	CustomerName   string
	CustomerPhone  string
	Address        string
	DeliveryDate   *time.Time `gorm:"type:date;index"`
	DeliverySlot   *string
	DeliveryCost   decimal.Decimal `gorm:"type:numeric(12,2)"`
	CourierID      *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethod  string
	IsPaid         bool
	DeliveryStatus *string `gorm:"size:16"`
	RecipientName  string
	ProofPhotoURL  string
	DeliveredAt    *time.Time
	DeliveredLat   *float64
	DeliveredLng   *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one persisted order line item.
type ItemDTO struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	OrderID     int64 `gorm:"index"`
	ProductID   int64 `gorm:"index"`
	Quantity    int
	Price       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Serial      *string         `gorm:"size:64"`
	IsAccessory bool
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	var deliveryStatus *string
	if aggregate.DeliveryStatus() != order.DeliveryUnknown {
		s := aggregate.DeliveryStatus().String()
		deliveryStatus = &s
	}

	var lat, lng *float64
	if loc := aggregate.DeliveredLocation(); loc != nil {
		la, ln := loc.Lat(), loc.Lng()
		lat, lng = &la, &ln
	}

	dto := OrderDTO{
		ID:             aggregate.ID(),
		Number:         aggregate.Number(),
		Status:         aggregate.Status().String(),
		CustomerName:   aggregate.CustomerName(),
		CustomerPhone:  aggregate.CustomerPhone(),
		Address:        aggregate.Address(),
		DeliveryDate:   aggregate.DeliveryDate(),
		DeliverySlot:   aggregate.DeliverySlot(),
		DeliveryCost:   aggregate.DeliveryCost(),
		CourierID:      courierID,
		PaymentMethod:  aggregate.PaymentMethod(),
		IsPaid:         aggregate.IsPaid(),
		DeliveryStatus: deliveryStatus,
		RecipientName:  aggregate.RecipientName(),
		ProofPhotoURL:  aggregate.ProofPhotoURL(),
		DeliveredAt:    aggregate.DeliveredAt(),
		DeliveredLat:   lat,
		DeliveredLng:   lng,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}

	dto.Items = make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ID:          item.ID(),
			OrderID:     aggregate.ID(),
			ProductID:   item.ProductID(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
			Discount:    item.Discount(),
			Serial:      item.Serial(),
			IsAccessory: item.IsAccessory(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	deliveryStatus := order.DeliveryUnknown
	if dto.DeliveryStatus != nil {
		if deliveryStatus, err = order.DeliveryStatusFromString(*dto.DeliveryStatus); err != nil {
			return nil, err
		}
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		id, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &id
	}

	var deliveredLoc *kernel.GeoPoint
	if dto.DeliveredLat != nil && dto.DeliveredLng != nil {
		point, locErr := kernel.NewGeoPoint(*dto.DeliveredLat, *dto.DeliveredLng)
		if locErr != nil {
			return nil, locErr
		}
		deliveredLoc = &point
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		items = append(items, order.RestoreItem(
			itemDTO.ID, itemDTO.ProductID, itemDTO.Quantity,
			itemDTO.Price, itemDTO.Discount, itemDTO.Serial, itemDTO.IsAccessory,
		))
	}

	return order.RestoreOrder(
		dto.ID, dto.Number, status,
		dto.CustomerName, dto.CustomerPhone, dto.Address,
		dto.DeliveryDate, dto.DeliverySlot, dto.DeliveryCost,
		courierID, dto.PaymentMethod, dto.IsPaid,
		deliveryStatus, dto.RecipientName, dto.ProofPhotoURL,
		dto.DeliveredAt, deliveredLoc,
		items, dto.CreatedAt, dto.UpdatedAt,
	)
}
