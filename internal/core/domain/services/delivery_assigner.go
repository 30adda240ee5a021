package services

import (
	"errors"
	"time"

	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// ErrNoPartnerAvailable is returned when no delivery partner can take the order.
// The order stays in ready_for_pickup and the assignment may be retried.
var ErrNoPartnerAvailable = errors.New("no delivery partner available")

// DeliveryAssigner is a domain service that attaches a delivery partner to an order
// that is ready for pickup.
//
// Business rules:
//   - the order must be ready_for_pickup without a partner
//   - only couriers that are available and idle are considered
//   - the SelectionPolicy decides among the candidates
//   - the order's status is not changed; pickup is a separate transition
//
// Example usage:
//
//	assigner := services.NewDeliveryAssigner(services.NearestPolicy{})
//	c, err := assigner.Assign(o, restaurantLocation, couriers, kernel.SystemActor(), time.Now())
//	if errors.Is(err, services.ErrNoPartnerAvailable) {
//	    // retry later
//	}
type DeliveryAssigner struct {
	policy SelectionPolicy
}

// NewDeliveryAssigner creates an assigner; a nil policy means NearestPolicy.
func NewDeliveryAssigner(policy SelectionPolicy) DeliveryAssigner {
	if policy == nil {
		policy = NearestPolicy{}
	}
	return DeliveryAssigner{policy: policy}
}

// Assign selects a partner among couriers, makes the order the partner's active
// order and records delivery_assigned on the order. Both aggregates are changed only
// on success.
func (a DeliveryAssigner) Assign(
	o *order.Order,
	pickup kernel.Geo,
	couriers []*courier.Courier,
	actor kernel.Actor,
	now time.Time,
) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Courier() != nil {
		return nil, order.ErrAlreadyAssigned
	}
	if !o.CanBeAssigned() {
		return nil, &order.InvalidTransitionError{
			From: o.Status(), To: o.Status(), Reason: "assignment requires ready_for_pickup",
		}
	}

	candidates := make([]*courier.Courier, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.CanTakeOrder() {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoPartnerAvailable
	}

	policy := a.policy
	if policy == nil {
		policy = NearestPolicy{}
	}
	chosen, err := policy.Select(pickup, candidates)
	if err != nil {
		return nil, err
	}

	if err = o.AssignCourier(chosen.ID(), actor, now); err != nil {
		return nil, err
	}
	if err = chosen.TakeOrder(o.ID()); err != nil {
		return nil, err
	}

	return chosen, nil
}
