package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the order list for an actor. Couriers receive only
// their visible subset; other roles see everything.
type GetOrdersQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query listing orders on behalf of an actor.
func NewGetOrdersQuery(actor kernel.Actor) (GetOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Actor returns the identity the listing is evaluated for.
func (q GetOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

// OrderItemResponse is one line item of an order response.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Amount      decimal.Decimal `json:"amount"`
	Serial      *string         `json:"serial,omitempty"`
	IsAccessory bool            `json:"isAccessory"`
}

// OrderResponse is the read-model projection of an order.
type OrderResponse struct {
	ID             int64               `json:"id"`
	Number         string              `json:"number"`
	Status         string              `json:"status"`
	CustomerName   string              `json:"customerName"`
	CustomerPhone  string              `json:"customerPhone"`
	Address        string              `json:"address"`
	DeliveryDate   *string             `json:"deliveryDate,omitempty"`
	DeliverySlot   *string             `json:"deliverySlot,omitempty"`
	DeliveryCost   decimal.Decimal     `json:"deliveryCost"`
	CourierID      *string             `json:"courierId,omitempty"`
	PaymentMethod  string              `json:"paymentMethod"`
	IsPaid         bool                `json:"isPaid"`
	DeliveryStatus *string             `json:"deliveryStatus,omitempty"`
	RecipientName  string              `json:"recipientName,omitempty"`
	ProofPhotoURL  string              `json:"proofPhotoUrl,omitempty"`
	DeliveredAt    *time.Time          `json:"deliveredAt,omitempty"`
	DeliveredLat   *float64            `json:"deliveredLat,omitempty"`
	DeliveredLng   *float64            `json:"deliveredLng,omitempty"`
	Total          decimal.Decimal     `json:"total"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// NewOrderResponse projects a domain order into its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID(),
		Number:        o.Number(),
		Status:        o.Status().String(),
		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		Address:       o.Address(),
		DeliverySlot:  o.DeliverySlot(),
		DeliveryCost:  o.DeliveryCost(),
		PaymentMethod: o.PaymentMethod(),
		IsPaid:        o.IsPaid(),
		RecipientName: o.RecipientName(),
		ProofPhotoURL: o.ProofPhotoURL(),
		DeliveredAt:   o.DeliveredAt(),
		Total:         o.Total(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	if date := o.DeliveryDate(); date != nil {
		formatted := date.Format("2006-01-02")
		resp.DeliveryDate = &formatted
	}
	if courier := o.Courier(); courier != nil {
		id := courier.String()
		resp.CourierID = &id
	}
	if o.DeliveryStatus() != order.DeliveryUnknown {
		status := o.DeliveryStatus().String()
		resp.DeliveryStatus = &status
	}
	if loc := o.DeliveredLocation(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		resp.DeliveredLat = &lat
		resp.DeliveredLng = &lng
	}

	resp.Items = make([]OrderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:          item.ID(),
			ProductID:   item.ProductID(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
			Discount:    item.Discount(),
			Amount:      item.Amount(),
			Serial:      item.Serial(),
			IsAccessory: item.IsAccessory(),
		})
	}

	return resp
}
