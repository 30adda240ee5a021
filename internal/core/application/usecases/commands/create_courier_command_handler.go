package commands

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/pkg/errs"
)

// ErrCourierAlreadyRegistered is returned when a partner registers twice.
var ErrCourierAlreadyRegistered = errors.New("delivery partner is already registered")

// CreateCourierCommandHandler registers a delivery partner. New partners start on
// shift, free, at the position given in the command.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{uowFactory: uowFactory}
}

func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	partner, err := courier.NewCourier(cmd.CourierID(), cmd.Name(), cmd.Location())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	repo := uow.CourierRepository()
	switch _, err = repo.Get(ctx, partner.ID()); {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrCourierAlreadyRegistered, partner.ID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = repo.Add(ctx, partner); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
