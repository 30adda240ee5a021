package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/keylock"
)

// Assigner attaches a delivery partner right after an order becomes ready for
// pickup. AssignDeliveryPartnerCommandHandler implements it.
type Assigner interface {
	Handle(ctx context.Context, cmd AssignDeliveryPartnerCommand) error
}

// ChangeOrderStatusCommandHandler is the transition engine's application service.
//
// Business flow:
//   - lock the order, load it and apply the transition on behalf of the actor
//   - on delivered, release the delivery partner in the same transaction
//   - commit the status and its status_* event together
//   - after the lock is released, publish order_update to the order's recipients
//   - after ready_for_pickup, try to assign a delivery partner
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, locker, publisher, assigner, logger)
//	err := handler.Handle(ctx, cmd)
//	var invalid *order.InvalidTransitionError
//	if errors.As(err, &invalid) {
//	    // the order is in invalid.From
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	locker     *keylock.Locker
	publisher  ports.EventPublisher
	assigner   Assigner
	logger     *slog.Logger
}

// NewChangeOrderStatusCommandHandler creates the handler. assigner may be nil, in
// which case ready orders wait for the assignment job.
func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	locker *keylock.Locker,
	publisher ports.EventPublisher,
	assigner Assigner,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisher,
		assigner:   assigner,
		logger:     logger.With("component", "change_order_status"),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, changed, err := mutateOrder[UoW](ctx, h.locker, h.uowFactory.Create, cmd.OrderID(),
		func(ctx context.Context, uow UoW, o *order.Order) (bool, error) {
			return h.apply(ctx, uow, o, cmd)
		})
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	h.publisher.Publish(ctx, ports.OrderUpdateRecipients(o), ports.OrderUpdateOf(o))

	if o.Status() == order.ReadyForPickup && h.assigner != nil {
		h.assign(ctx, o)
	}

	return nil
}

func (h ChangeOrderStatusCommandHandler) apply(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd ChangeOrderStatusCommand,
) (bool, error) {
	if expected := cmd.ExpectedStatus(); expected != nil && o.Status() != cmd.Status() && o.Status() != *expected {
		return false, &order.InvalidTransitionError{
			From:   o.Status(),
			To:     cmd.Status(),
			Reason: fmt.Sprintf("expected %s", *expected),
		}
	}

	changed, err := o.ApplyTransition(cmd.Status(), cmd.Actor(), time.Now())
	if err != nil || !changed {
		return false, err
	}

	if o.Status() == order.Delivered && o.Courier() != nil {
		courierRepo := uow.CourierRepository()
		c, err := courierRepo.Get(ctx, *o.Courier())
		if err != nil {
			return false, err
		}
		if err = c.CompleteOrder(o.ID()); err != nil {
			return false, err
		}
		if err = courierRepo.Update(ctx, c); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (h ChangeOrderStatusCommandHandler) assign(ctx context.Context, o *order.Order) {
	cmd, err := NewAssignDeliveryPartnerCommand(o.ID(), kernel.SystemActor())
	if err != nil {
		h.logger.Error("build assignment command", "order_id", o.ID().String(), "error", err)
		return
	}

	err = h.assigner.Handle(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNoPartnerAvailable), errors.Is(err, order.ErrAlreadyAssigned):
		h.logger.Debug("order left for the assignment job", "order_id", o.ID().String(), "reason", err)
	default:
		h.logger.Error("assign delivery partner", "order_id", o.ID().String(), "error", err)
	}
}
