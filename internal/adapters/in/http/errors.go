package http

import (
	"errors"
	"log/slog"
	"net/http"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusOf maps domain and application errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, services.ErrNoPartnerAvailable),
		errors.Is(err, cart.ErrRestaurantMismatch),
		errors.Is(err, cart.ErrCartIsEmpty),
		errors.Is(err, courier.ErrCourierIsBusy),
		errors.Is(err, courier.ErrCourierIsOffline),
		errors.Is(err, courier.ErrOrderIsNotCarried),
		errors.Is(err, commands.ErrMenuItemIsUnavailable),
		errors.Is(err, commands.ErrCourierAlreadyRegistered),
		errors.Is(err, ports.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrNameIsRequired),
		errors.Is(err, commands.ErrDeliveryAddressIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorResponse. Unexpected errors are logged and hidden
// from the caller.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Path()),
			slog.Any("error", err))
		message = http.StatusText(code)
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}

// badRequest answers a request whose input could not be turned into a command.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func forbidden(ctx echo.Context) error {
	return ctx.JSON(http.StatusForbidden, ErrorResponse{
		Code:    http.StatusForbidden,
		Message: order.ErrUnauthorized.Error(),
	})
}
