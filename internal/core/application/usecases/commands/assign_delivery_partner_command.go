package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrAssignDeliveryPartnerCommandIsNotConstructed = errors.New(
	"AssignDeliveryPartnerCommand must be created via NewAssignDeliveryPartnerCommand constructor",
)

// AssignDeliveryPartnerCommand attaches an available delivery partner to one order
// that is ready for pickup. The actor is the system (automatic assignment) or an
// admin (manual retry).
//
// Example:
//
//	cmd, _ := NewAssignDeliveryPartnerCommand(orderID, kernel.SystemActor())
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoPartnerAvailable) {
//	    // the order stays in ready_for_pickup; retry later
//	}
type AssignDeliveryPartnerCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewAssignDeliveryPartnerCommand(orderID kernel.UUID, actor kernel.Actor) (AssignDeliveryPartnerCommand, error) {
	cmd := AssignDeliveryPartnerCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(orderID.Validate(), actor.Role().Validate()); err != nil {
		return AssignDeliveryPartnerCommand{}, err
	}
	cmd.orderID = orderID
	cmd.actor = actor

	return cmd, nil
}

func (c AssignDeliveryPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryPartnerCommandIsNotConstructed)
}

func (c AssignDeliveryPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDeliveryPartnerCommand) Actor() kernel.Actor {
	return c.actor
}
