package commands

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand puts a delivery partner on or off shift. Partners
// change their own availability; admins may change anyone's.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

func NewSetCourierAvailabilityCommand(
	courierID kernel.UUID,
	available bool,
	actor kernel.Actor,
) (SetCourierAvailabilityCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}
	isSelf := actor.Is(kernel.RoleDelivery) && actor.ID().IsEqual(courierID)
	if !isSelf && !actor.Is(kernel.RoleAdmin) {
		return SetCourierAvailabilityCommand{}, fmt.Errorf("%w: %s may not change availability of %s",
			order.ErrUnauthorized, actor, courierID)
	}

	return SetCourierAvailabilityCommand{
		courierID: courierID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c SetCourierAvailabilityCommand) Available() bool {
	return c.available
}
