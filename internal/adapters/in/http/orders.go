package http

import (
	"net/http"
	"strconv"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrderRequest is the checkout body. Discount is a decimal string and may be
// omitted.
type CreateOrderRequest struct {
	DeliveryAddress     string `json:"deliveryAddress"`
	SpecialInstructions string `json:"specialInstructions"`
	Discount            string `json:"discount"`
}

type CreateOrderResponse struct {
	ID kernel.UUID `json:"id"`
}

type ChangeOrderStatusRequest struct {
	Status         string  `json:"status"`
	ExpectedStatus *string `json:"expectedStatus"`
}

type ReportLocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type MarkPaymentRequest struct {
	Status string `json:"status"`
}

// ListOrders handles GET /api/v1/orders - the actor's orders, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "limit must be a number")
		}
		limit = n
	}

	query, err := queries.NewListOrdersQuery(actorFrom(ctx), limit)
	if err != nil {
		return s.reject(ctx, err)
	}

	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/v1/orders - checks out the customer's cart.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor := actorFrom(ctx)

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	discount := kernel.ZeroMoney()
	if req.Discount != "" {
		d, err := kernel.MoneyFromString(req.Discount)
		if err != nil {
			return s.reject(ctx, err)
		}
		discount = d
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderFromCartCommand(orderID, actor.ID(),
		req.DeliveryAddress, req.SpecialInstructions, discount)
	if err != nil {
		return s.reject(ctx, err)
	}

	if err = s.handlers.CreateOrderFromCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID})
}

// GetOrder handles GET /api/v1/orders/:id - the order snapshot with its event trail.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.reject(ctx, err)
	}

	query, err := queries.NewGetOrderSnapshotQuery(orderID, actorFrom(ctx))
	if err != nil {
		return s.reject(ctx, err)
	}

	snapshot, err := s.handlers.GetOrderSnapshot.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.reject(ctx, err)
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.reject(ctx, err)
	}
	var expected *order.Status
	if req.ExpectedStatus != nil {
		e, err := order.ParseStatus(*req.ExpectedStatus)
		if err != nil {
			return s.reject(ctx, err)
		}
		expected = &e
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, expected, actorFrom(ctx))
	if err != nil {
		return s.reject(ctx, err)
	}

	if err = s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AssignDeliveryPartner handles POST /api/v1/orders/:id/assign - a manual retry of
// the assignment step.
func (s *Server) AssignDeliveryPartner(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.reject(ctx, err)
	}

	cmd, err := commands.NewAssignDeliveryPartnerCommand(orderID, actorFrom(ctx))
	if err != nil {
		return s.reject(ctx, err)
	}

	if err = s.handlers.AssignDeliveryPartner.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReportLocation handles POST /api/v1/orders/:id/location.
func (s *Server) ReportLocation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.reject(ctx, err)
	}

	var req ReportLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportLocationCommand(orderID, req.Lat, req.Lon, actorFrom(ctx))
	if err != nil {
		return s.reject(ctx, err)
	}

	if err = s.handlers.ReportLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// MarkPayment handles POST /api/v1/orders/:id/payment.
func (s *Server) MarkPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.reject(ctx, err)
	}

	var req MarkPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkPaymentCommand(orderID, order.PaymentStatus(req.Status), actorFrom(ctx))
	if err != nil {
		return s.reject(ctx, err)
	}

	if err = s.handlers.MarkPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
