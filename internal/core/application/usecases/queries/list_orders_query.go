package queries

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const (
	DefaultOrderListLimit = 50
	MaxOrderListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the actor's orders newest first: customers see their own,
// staff their restaurant's, partners the ones assigned to them and admins all.
type ListOrdersQuery struct {
	actor kernel.Actor
	limit int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery applies DefaultOrderListLimit when limit is zero.
func NewListOrdersQuery(actor kernel.Actor, limit int) (ListOrdersQuery, error) {
	if err := actor.Role().Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if limit == 0 {
		limit = DefaultOrderListLimit
	}
	if limit < 1 || limit > MaxOrderListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOrderListLimit)
	}
	return ListOrdersQuery{actor: actor, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}
