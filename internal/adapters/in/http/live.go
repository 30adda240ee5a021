package http

import (
	"foodorder/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Live handles GET /api/v1/ws. The connection is subscribed under the actor's own
// identity and, for restaurant staff, under their restaurant. It carries
// order_update and location_update messages until either side closes it.
func (s *Server) Live(ctx echo.Context) error {
	actor := actorFrom(ctx)

	conn, err := s.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// the upgrader has already answered the client
		s.logger.Debug("websocket upgrade failed", "error", err)
		return nil
	}

	if err = s.live.Serve(ctx.Request().Context(), conn, ports.RecipientsOf(actor)); err != nil {
		s.logger.Debug("live channel refused connection", "error", err, "actor", actor.ID().String())
	}
	return nil
}
