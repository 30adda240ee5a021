package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var ErrGetOrderSnapshotQueryIsNotConstructed = errors.New(
	"GetOrderSnapshotQuery must be created via NewGetOrderSnapshotQuery constructor",
)

// GetOrderSnapshotQuery reads one order with its items, trail and restaurant summary.
//
// Example:
//
//	query, err := NewGetOrderSnapshotQuery(orderID, actor)
//	if err != nil {
//	    return err
//	}
//	snapshot, err := handler.Handle(ctx, query)
//	if errors.Is(err, order.ErrUnauthorized) {
//	    // the actor does not take part in the order
//	}
type GetOrderSnapshotQuery struct {
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderSnapshotQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderSnapshotQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Role().Validate()); err != nil {
		return GetOrderSnapshotQuery{}, err
	}
	return GetOrderSnapshotQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSnapshotQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSnapshotQueryIsNotConstructed)
}

func (q GetOrderSnapshotQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderSnapshotQuery) Actor() kernel.Actor {
	return q.actor
}
