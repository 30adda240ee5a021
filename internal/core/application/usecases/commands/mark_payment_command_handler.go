package commands

import (
	"context"
	"time"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/keylock"
)

// MarkPaymentCommandHandler stores a payment status change. Repeating the current
// status is a no-op.
type MarkPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     *keylock.Locker
}

func NewMarkPaymentCommandHandler(uowFactory OrderUoWFactory, locker *keylock.Locker) MarkPaymentCommandHandler {
	return MarkPaymentCommandHandler{uowFactory: uowFactory, locker: locker}
}

func (h MarkPaymentCommandHandler) Handle(ctx context.Context, cmd MarkPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, _, err := mutateOrder[OrderUoW](ctx, h.locker, h.uowFactory.Create, cmd.OrderID(),
		func(_ context.Context, _ OrderUoW, o *order.Order) (bool, error) {
			return o.MarkPayment(cmd.Status(), cmd.Actor(), time.Now())
		})
	return err
}
