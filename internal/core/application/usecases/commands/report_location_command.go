package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand carries a position pushed by the delivery partner's device
// for the order being delivered.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	location kernel.Geo
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewReportLocationCommand(orderID kernel.UUID, lat, lon float64, actor kernel.Actor) (ReportLocationCommand, error) {
	location, err := kernel.NewGeo(lat, lon)
	if err = errors.Join(orderID.Validate(), err, actor.Role().Validate()); err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		orderID:  orderID,
		location: location,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

func (c ReportLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReportLocationCommand) Location() kernel.Geo {
	return c.location
}

func (c ReportLocationCommand) Actor() kernel.Actor {
	return c.actor
}
