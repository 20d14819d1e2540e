package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/pkg/errs"
)

// Error is the JSON body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one order line in a create or update payload.
type OrderItemRequest struct {
	ProductID   int64           `json:"productId" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Serial      *string         `json:"serial,omitempty"`
	IsAccessory bool            `json:"isAccessory"`
}

// OrderRequest carries the mutable order fields for create and update.
type OrderRequest struct {
	Number        string             `json:"number" validate:"required"`
	CustomerName  string             `json:"customerName" validate:"required"`
	CustomerPhone string             `json:"customerPhone"`
	Address       string             `json:"address" validate:"required"`
	DeliveryDate  *types.Date        `json:"deliveryDate,omitempty"`
	DeliverySlot  *string            `json:"deliverySlot,omitempty"`
	DeliveryCost  decimal.Decimal    `json:"deliveryCost"`
	PaymentMethod string             `json:"paymentMethod"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r OrderRequest) toDetails() commands.OrderDetails {
	items := make([]commands.ItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = commands.ItemInput{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Discount:    item.Discount,
			Serial:      item.Serial,
			IsAccessory: item.IsAccessory,
		}
	}

	var deliveryDate *time.Time
	if r.DeliveryDate != nil {
		date := r.DeliveryDate.Time
		deliveryDate = &date
	}

	return commands.OrderDetails{
		Number:        r.Number,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Address:       r.Address,
		DeliveryDate:  deliveryDate,
		DeliverySlot:  r.DeliverySlot,
		DeliveryCost:  r.DeliveryCost,
		PaymentMethod: r.PaymentMethod,
		Items:         items,
	}
}

// ChangeStatusRequest moves an order to a new lifecycle status, optionally
// assigning a courier in the same call.
type ChangeStatusRequest struct {
	Status    string  `json:"status" validate:"required"`
	CourierID *string `json:"courierId,omitempty" validate:"omitempty,uuid"`
}

// ConfirmDeliveryRequest advances the delivery sub-status, carrying the
// proof fields required for terminal transitions.
type ConfirmDeliveryRequest struct {
	DeliveryStatus string   `json:"deliveryStatus" validate:"required"`
	RecipientName  string   `json:"recipientName"`
	ProofPhotoURL  string   `json:"proofPhotoUrl"`
	Lat            *float64 `json:"lat,omitempty"`
	Lng            *float64 `json:"lng,omitempty"`
}

// ConfirmDeliveryResponse tells the client whether the confirmation was
// applied now or buffered for replay after connectivity returns.
type ConfirmDeliveryResponse struct {
	Deferred bool `json:"deferred"`
}

// ArriveStockUnitRequest registers one serialized unit arriving on stock.
type ArriveStockUnitRequest struct {
	ProductID      int64           `json:"productId" validate:"required"`
	Serial         string          `json:"serial" validate:"required"`
	Condition      string          `json:"condition"`
	Supplier       string          `json:"supplier"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	WarrantyMonths int             `json:"warrantyMonths" validate:"min=0"`
}

// StockUnitResponse mirrors a stored unit back to the client.
type StockUnitResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Serial    string `json:"serial"`
	Status    string `json:"status"`
	OrderID   *int64 `json:"orderId,omitempty"`
}

func jsonError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrConnectivity):
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
