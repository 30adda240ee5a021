package http

import (
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type AddToCartRequest struct {
	MenuItemID kernel.UUID `json:"menuItemId"`
	Quantity   int         `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// customerOnly rejects everyone but customers; carts belong to customers.
func customerOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !actorFrom(ctx).Is(kernel.RoleCustomer) {
			return forbidden(ctx)
		}
		return next(ctx)
	}
}

// GetCart handles GET /api/v1/cart. A customer without a cart gets an empty one.
func (s *Server) GetCart(ctx echo.Context) error {
	query, err := queries.NewGetCartQuery(actorFrom(ctx).ID())
	if err != nil {
		return s.reject(ctx, err)
	}

	view, err := s.handlers.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// AddToCart handles POST /api/v1/cart/items.
func (s *Server) AddToCart(ctx echo.Context) error {
	var req AddToCartRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddToCartCommand(actorFrom(ctx).ID(), req.MenuItemID, req.Quantity)
	if err != nil {
		return s.reject(ctx, err)
	}

	c, err := s.handlers.AddToCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewCartView(c))
}

// UpdateCartItem handles PUT /api/v1/cart/items/:menuItemId. A quantity of zero
// removes the line.
func (s *Server) UpdateCartItem(ctx echo.Context) error {
	var req UpdateCartItemRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	return s.setQuantity(ctx, req.Quantity)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:menuItemId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	return s.setQuantity(ctx, 0)
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	cmd, err := commands.NewClearCartCommand(actorFrom(ctx).ID())
	if err != nil {
		return s.reject(ctx, err)
	}

	if err = s.handlers.ClearCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) setQuantity(ctx echo.Context, quantity int) error {
	menuItemID, err := kernel.UUIDFromString(ctx.Param("menuItemId"))
	if err != nil {
		return s.reject(ctx, err)
	}

	cmd, err := commands.NewUpdateCartItemCommand(actorFrom(ctx).ID(), menuItemID, quantity)
	if err != nil {
		return s.reject(ctx, err)
	}

	c, err := s.handlers.UpdateCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewCartView(c))
}
