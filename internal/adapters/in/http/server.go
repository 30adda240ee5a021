// Package http exposes the ordering service over REST and a websocket endpoint for
// live order updates. Every route except /health and the /swagger API description
// requires a bearer token issued by the identity provider; the token's subject and
// role become the request's actor.
package http

import (
	"context"
	"log/slog"
	"net/http"

	_ "foodorder/internal/adapters/in/http/docs"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// LiveChannel keeps a websocket connection subscribed to live messages addressed to
// recipients until it goes away.
type LiveChannel interface {
	Serve(ctx context.Context, conn *websocket.Conn, recipients []ports.Recipient) error
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrderFromCart   commands.CreateOrderFromCartCommandHandler
	ChangeOrderStatus     commands.ChangeOrderStatusCommandHandler
	AssignDeliveryPartner commands.AssignDeliveryPartnerCommandHandler
	ReportLocation        commands.ReportLocationCommandHandler
	MarkPayment           commands.MarkPaymentCommandHandler
	AddToCart             commands.AddToCartCommandHandler
	UpdateCartItem        commands.UpdateCartItemCommandHandler
	ClearCart             commands.ClearCartCommandHandler
	CreateCourier         commands.CreateCourierCommandHandler
	SetAvailability       commands.SetCourierAvailabilityCommandHandler

	// Query handlers
	GetOrderSnapshot queries.GetOrderSnapshotQueryHandler
	ListOrders       queries.ListOrdersQueryHandler
	GetCart          queries.GetCartQueryHandler
	ListFreeCouriers queries.ListFreeCouriersQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	identity *Identity
	live     LiveChannel
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, identity *Identity, live LiveChannel, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		identity: identity,
		live:     live,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "http"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", s.identity.Middleware())

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder, customerOnly)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/assign", s.AssignDeliveryPartner)
	api.POST("/orders/:id/location", s.ReportLocation)
	api.POST("/orders/:id/payment", s.MarkPayment)

	cart := api.Group("/cart", customerOnly)
	cart.GET("", s.GetCart)
	cart.DELETE("", s.ClearCart)
	cart.POST("/items", s.AddToCart)
	cart.PUT("/items/:menuItemId", s.UpdateCartItem)
	cart.DELETE("/items/:menuItemId", s.RemoveCartItem)

	api.GET("/couriers/free", s.ListFreeCouriers, adminOnly)
	api.POST("/couriers", s.CreateCourier, adminOnly)
	api.PUT("/couriers/:id/availability", s.SetCourierAvailability)

	api.GET("/ws", s.Live)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// reject answers a request whose command or query could not be constructed.
func (s *Server) reject(ctx echo.Context, err error) error {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		code = http.StatusBadRequest
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
