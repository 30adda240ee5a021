package ports

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// ErrConcurrentUpdate is returned by OrderRepository.Update and
// CourierRepository.Update when the stored aggregate no longer has the version it
// was loaded with.
var ErrConcurrentUpdate = errors.New("aggregate was modified concurrently")

// OrderFilter narrows GetAll. Nil fields match everything.
type OrderFilter struct {
	CustomerID   *kernel.UUID
	RestaurantID *kernel.UUID
	CourierID    *kernel.UUID
	// Limit caps the number of orders returned; zero means no limit.
	Limit int
}

// OrderFilterFor returns the "my orders" filter of actor. Admin and system see all
// orders.
func OrderFilterFor(actor kernel.Actor) OrderFilter {
	id := actor.ID()
	switch actor.Role() {
	case kernel.RoleCustomer:
		return OrderFilter{CustomerID: &id}
	case kernel.RoleRestaurantStaff:
		return OrderFilter{RestaurantID: actor.RestaurantID()}
	case kernel.RoleDelivery:
		return OrderFilter{CourierID: &id}
	default:
		return OrderFilter{}
	}
}

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored together with its items and its event trail.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and events.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order's fields and appends its pending events in one step.
	// The write is guarded by the version the order was loaded with; when another
	// writer got there first ErrConcurrentUpdate is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves the complete order, its items and its trail ordered by Seq.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReadyUnassigned returns orders in ready_for_pickup without a delivery
	// partner, oldest first.
	GetAllReadyUnassigned(ctx context.Context) ([]*order.Order, error)

	// GetAll returns orders matching filter, newest first.
	GetAll(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
