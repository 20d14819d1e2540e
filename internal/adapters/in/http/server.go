// Package http is the inbound HTTP adapter: an echo server translating the
// REST surface into application commands and queries.
package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/stock"
	"orderdesk/internal/core/ports"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	updateOrderHandler     commands.UpdateOrderCommandHandler
	deleteOrderHandler     commands.DeleteOrderCommandHandler
	changeStatusHandler    commands.ChangeOrderStatusCommandHandler
	confirmDelivery        commands.OfflineConfirmer
	arriveStockUnitHandler commands.ArriveStockUnitCommandHandler
	deleteStockUnitHandler commands.DeleteStockUnitCommandHandler

	getOrdersHandler         queries.GetOrdersQueryHandler
	getOrderHandler          queries.GetOrderQueryHandler
	getStockMovementsHandler queries.GetStockMovementsQueryHandler

	validate *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	changeStatusHandler commands.ChangeOrderStatusCommandHandler,
	confirmDelivery commands.OfflineConfirmer,
	arriveStockUnitHandler commands.ArriveStockUnitCommandHandler,
	deleteStockUnitHandler commands.DeleteStockUnitCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getStockMovementsHandler queries.GetStockMovementsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderHandler:       updateOrderHandler,
		deleteOrderHandler:       deleteOrderHandler,
		changeStatusHandler:      changeStatusHandler,
		confirmDelivery:          confirmDelivery,
		arriveStockUnitHandler:   arriveStockUnitHandler,
		deleteStockUnitHandler:   deleteStockUnitHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderHandler:          getOrderHandler,
		getStockMovementsHandler: getStockMovementsHandler,
		validate:                 validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the API under /api/v1 behind bearer authentication.
// The health probe stays outside the authenticated group.
func (s *Server) RegisterRoutes(e *echo.Echo, resolver ports.TokenResolver) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", BearerAuth(resolver))
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id", s.UpdateOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/delivery-status", s.ConfirmDelivery)
	api.POST("/stock-units", s.ArriveStockUnit)
	api.DELETE("/stock-units/:id", s.DeleteStockUnit)
	api.GET("/stock-movements", s.GetStockMovements)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	var request OrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(request.toDetails(), actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, queries.NewOrderResponse(created))
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	query, err := queries.NewGetOrdersQuery(actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PUT /api/v1/orders/{id}.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request OrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, request.toDetails(), actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queries.NewOrderResponse(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/{id}/status. The response
// carries the updated order plus the serials whose reservation was lost to
// a concurrent order, so the operator can repick them.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request ChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return badRequest(ctx, err.Error())
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return jsonError(ctx, err)
	}

	var courierID *kernel.UUID
	if request.CourierID != nil {
		parsed, err := kernel.UUIDFromString(*request.CourierID)
		if err != nil {
			return jsonError(ctx, err)
		}
		courierID = &parsed
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, courierID, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	result, err := s.changeStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"order":          queries.NewOrderResponse(result.Order),
		"skippedSerials": result.SkippedSerials,
	})
}

// ConfirmDelivery handles POST /api/v1/orders/{id}/delivery-status.
// Confirmations that fail only on connectivity are buffered for replay and
// answered with 202.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request ConfirmDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return badRequest(ctx, err.Error())
	}

	target, err := order.DeliveryStatusFromString(request.DeliveryStatus)
	if err != nil {
		return jsonError(ctx, err)
	}

	proof := commands.DeliveryProofInput{
		RecipientName: request.RecipientName,
		ProofPhotoURL: request.ProofPhotoURL,
		Lat:           request.Lat,
		Lng:           request.Lng,
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, target, proof, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	deferred, err := s.confirmDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, err)
	}

	if deferred {
		return ctx.JSON(http.StatusAccepted, ConfirmDeliveryResponse{Deferred: true})
	}
	return ctx.JSON(http.StatusOK, ConfirmDeliveryResponse{Deferred: false})
}

// ArriveStockUnit handles POST /api/v1/stock-units.
func (s *Server) ArriveStockUnit(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	var request ArriveStockUnitRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err := s.validate.Struct(request); err != nil {
		return badRequest(ctx, err.Error())
	}

	attrs := stock.UnitAttrs{
		Condition:      request.Condition,
		Supplier:       request.Supplier,
		PurchasePrice:  request.PurchasePrice,
		WarrantyMonths: request.WarrantyMonths,
	}

	cmd, err := commands.NewArriveStockUnitCommand(request.ProductID, request.Serial, attrs, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	unit, err := s.arriveStockUnitHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, StockUnitResponse{
		ID:        unit.ID(),
		ProductID: unit.ProductID(),
		Serial:    unit.Serial(),
		Status:    unit.Status().String(),
		OrderID:   unit.OrderID(),
	})
}

// DeleteStockUnit handles DELETE /api/v1/stock-units/{id}.
func (s *Server) DeleteStockUnit(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	unitID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid stock unit id")
	}

	cmd, err := commands.NewDeleteStockUnitCommand(unitID, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	if err := s.deleteStockUnitHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return jsonError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetStockMovements handles GET /api/v1/stock-movements with an optional
// productId query filter.
func (s *Server) GetStockMovements(ctx echo.Context) error {
	actor, ok := actorFrom(ctx)
	if !ok {
		return jsonError(ctx, errNoActor)
	}

	var productID *int64
	if raw := ctx.QueryParam("productId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(ctx, "invalid productId")
		}
		productID = &parsed
	}

	query, err := queries.NewGetStockMovementsQuery(productID, actor)
	if err != nil {
		return jsonError(ctx, err)
	}

	movements, err := s.getStockMovementsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return jsonError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, movements)
}

func pathID(ctx echo.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("id"), 10, 64)
}
