package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand requests a status transition on behalf of an actor.
//
// When expectedStatus is set the transition only applies while the order is still
// in that status; two requests racing from the same status then have exactly one
// winner.
//
// Example:
//
//	pending := order.Pending
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.Confirmed, &pending, staff)
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	status         order.Status
	expectedStatus *order.Status
	actor          kernel.Actor

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	expectedStatus *order.Status,
	actor kernel.Actor,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setExpectedStatus(expectedStatus),
		cmd.setActor(actor),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.Status {
	return c.status
}

// ExpectedStatus is nil when the request carries no precondition.
func (c ChangeOrderStatusCommand) ExpectedStatus() *order.Status {
	return c.expectedStatus
}

func (c ChangeOrderStatusCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *ChangeOrderStatusCommand) setExpectedStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}
	s := *status
	c.expectedStatus = &s
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor kernel.Actor) error {
	if err := actor.Role().Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
