package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/guard"
)

var ErrMarkPaymentCommandIsNotConstructed = errors.New(
	"MarkPaymentCommand must be created via NewMarkPaymentCommand constructor",
)

// MarkPaymentCommand records the outcome reported by the external payment provider.
type MarkPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.PaymentStatus
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewMarkPaymentCommand(orderID kernel.UUID, status order.PaymentStatus, actor kernel.Actor) (MarkPaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate(), actor.Role().Validate()); err != nil {
		return MarkPaymentCommand{}, err
	}

	return MarkPaymentCommand{
		orderID: orderID,
		status:  status,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkPaymentCommand) Validate() error {
	return c.guard.Validate(ErrMarkPaymentCommandIsNotConstructed)
}

func (c MarkPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkPaymentCommand) Status() order.PaymentStatus {
	return c.status
}

func (c MarkPaymentCommand) Actor() kernel.Actor {
	return c.actor
}
