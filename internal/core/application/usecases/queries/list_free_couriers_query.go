package queries

import (
	"errors"

	"foodorder/internal/pkg/guard"
)

var ErrListFreeCouriersQueryIsNotConstructed = errors.New(
	"ListFreeCouriersQuery must be created via NewListFreeCouriersQuery constructor",
)

// ListFreeCouriersQuery lists the delivery partners that could take an order now.
//
// Example:
//
//	query := NewListFreeCouriersQuery()
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list couriers: %w", err)
//	}
//	fmt.Printf("%d partners on shift and idle\n", len(couriers))
type ListFreeCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewListFreeCouriersQuery is a parameterless query.
func NewListFreeCouriersQuery() ListFreeCouriersQuery {
	return ListFreeCouriersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListFreeCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListFreeCouriersQueryIsNotConstructed)
}
