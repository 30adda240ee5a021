package commands

import (
	"context"
)

// SetCourierAvailabilityCommandHandler toggles the shift flag of a courier. A
// courier going off shift keeps the order already carried.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewSetCourierAvailabilityCommandHandler(uowFactory CourierUoWFactory) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{uowFactory: uowFactory}
}

func (h SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	c, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if c.Available() == cmd.Available() {
		return nil
	}
	c.SetAvailability(cmd.Available())

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
