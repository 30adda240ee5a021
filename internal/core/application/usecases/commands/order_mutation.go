package commands

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/keylock"
)

// orderMutation changes a freshly loaded order within uow. changed == false means
// there is nothing to persist.
type orderMutation[U OrderUoW] func(ctx context.Context, uow U, o *order.Order) (changed bool, err error)

// mutateOrder is the single-writer section of every order command: it holds the
// per-order lock while the order is loaded, mutated and committed. The repository
// update is version-guarded; when it loses to a writer outside this process the
// order is reloaded and the mutation applied once more, so the loser observes the
// advanced state.
//
// The lock is released when mutateOrder returns; callers publish afterwards.
func mutateOrder[U OrderUoW](
	ctx context.Context,
	locker *keylock.Locker,
	create func() U,
	orderID kernel.UUID,
	mutate orderMutation[U],
) (*order.Order, bool, error) {
	unlock := locker.Lock(orderID.String())
	defer unlock()

	o, changed, err := tryMutateOrder(ctx, create, orderID, mutate)
	if errors.Is(err, ports.ErrConcurrentUpdate) {
		o, changed, err = tryMutateOrder(ctx, create, orderID, mutate)
	}
	return o, changed, err
}

func tryMutateOrder[U OrderUoW](
	ctx context.Context,
	create func() U,
	orderID kernel.UUID,
	mutate orderMutation[U],
) (*order.Order, bool, error) {
	uow := create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	changed, err := mutate(ctx, uow, o)
	if err != nil || !changed {
		return o, false, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return o, true, nil
}
