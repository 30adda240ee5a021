package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/keylock"
)

// ReportLocationCommandHandler records the partner's position on the order trail
// and on the courier, then pushes location_update to the customer.
type ReportLocationCommandHandler struct {
	uowFactory UoWFactory
	locker     *keylock.Locker
	publisher  ports.EventPublisher
}

func NewReportLocationCommandHandler(
	uowFactory UoWFactory,
	locker *keylock.Locker,
	publisher ports.EventPublisher,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{uowFactory: uowFactory, locker: locker, publisher: publisher}
}

func (h ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, _, err := mutateOrder[UoW](ctx, h.locker, h.uowFactory.Create, cmd.OrderID(),
		func(ctx context.Context, uow UoW, o *order.Order) (bool, error) {
			if err := o.RecordLocation(cmd.Location(), cmd.Actor(), time.Now()); err != nil {
				return false, err
			}

			courierRepo := uow.CourierRepository()
			c, err := courierRepo.Get(ctx, cmd.Actor().ID())
			if err != nil {
				return false, err
			}
			if err = c.MoveTo(cmd.Location()); err != nil {
				return false, err
			}
			if err = courierRepo.Update(ctx, c); err != nil {
				return false, err
			}
			return true, nil
		})
	if err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.LocationUpdateRecipients(o), ports.LocationUpdateOf(o, cmd.Location()))
	return nil
}
