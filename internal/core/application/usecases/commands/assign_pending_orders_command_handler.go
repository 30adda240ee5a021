package commands

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
)

// AssignPendingOrdersCommandHandler walks the ready, unassigned orders oldest first
// and assigns each through the Assigner. It stops at the first
// services.ErrNoPartnerAvailable since later orders would find nobody either.
//
// Example:
//
//	handler := NewAssignPendingOrdersCommandHandler(orderUoWFactory, assignHandler)
//	assigned, err := handler.Handle(ctx, NewAssignPendingOrdersCommand())
type AssignPendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	assigner   Assigner
}

func NewAssignPendingOrdersCommandHandler(uowFactory OrderUoWFactory, assigner Assigner) AssignPendingOrdersCommandHandler {
	return AssignPendingOrdersCommandHandler{uowFactory: uowFactory, assigner: assigner}
}

// Handle returns how many orders received a partner. services.ErrNoPartnerAvailable
// is returned when at least one order is still waiting.
func (h AssignPendingOrdersCommandHandler) Handle(ctx context.Context, cmd AssignPendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().GetAllReadyUnassigned(ctx)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, o := range orders {
		if err = ctx.Err(); err != nil {
			return assigned, err
		}

		assignCmd, err := NewAssignDeliveryPartnerCommand(o.ID(), kernel.SystemActor())
		if err != nil {
			return assigned, err
		}

		err = h.assigner.Handle(ctx, assignCmd)
		switch {
		case err == nil:
			assigned++
		case errors.Is(err, services.ErrNoPartnerAvailable):
			return assigned, err
		case errors.Is(err, order.ErrAlreadyAssigned), errors.Is(err, order.ErrInvalidTransition):
			// assigned or cancelled by someone else since the listing
		default:
			return assigned, err
		}
	}

	return assigned, nil
}
