package http

import (
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateCourierRequest registers a delivery partner. ID is the partner's user id
// at the identity provider; a new one is generated when omitted.
type CreateCourierRequest struct {
	ID   *kernel.UUID `json:"id"`
	Name string       `json:"name"`
	Lat  float64      `json:"lat"`
	Lon  float64      `json:"lon"`
}

type SetCourierAvailabilityRequest struct {
	Available bool `json:"available"`
}

func adminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !actorFrom(ctx).Is(kernel.RoleAdmin) {
			return forbidden(ctx)
		}
		return next(ctx)
	}
}

// ListFreeCouriers handles GET /api/v1/couriers/free.
func (s *Server) ListFreeCouriers(ctx echo.Context) error {
	couriers, err := s.handlers.ListFreeCouriers.Handle(ctx.Request().Context(), queries.NewListFreeCouriersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, couriers)
}

// CreateCourier handles POST /api/v1/couriers - registers a new delivery partner.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req CreateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeo(req.Lat, req.Lon)
	if err != nil {
		return s.reject(ctx, err)
	}

	courierID := kernel.NewUUID()
	if req.ID != nil {
		courierID = *req.ID
	}

	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, location)
	if err != nil {
		return s.reject(ctx, err)
	}

	if err = s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.CourierView{
		ID:        courierID,
		Name:      cmd.Name(),
		Lat:       location.Lat(),
		Lon:       location.Lon(),
		Available: true,
	})
}

// SetCourierAvailability handles PUT /api/v1/couriers/:id/availability. Partners
// toggle themselves; admins may toggle anyone.
func (s *Server) SetCourierAvailability(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.reject(ctx, err)
	}

	var req SetCourierAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetCourierAvailabilityCommand(courierID, req.Available, actorFrom(ctx))
	if err != nil {
		return s.reject(ctx, err)
	}

	if err = s.handlers.SetAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
