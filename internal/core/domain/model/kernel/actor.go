package kernel

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Role is the kind of principal acting on an order. Identities and roles are issued
// by the external identity provider; the service only trusts them.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurantStaff Role = "restaurant_staff"
	RoleDelivery        Role = "delivery"
	RoleAdmin           Role = "admin"
	// RoleSystem is used by the service itself, e.g. the assignment step.
	RoleSystem Role = "system"
)

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurantStaff, RoleDelivery, RoleAdmin, RoleSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// Actor is the authenticated principal behind a request.
type Actor struct {
	id           UUID
	role         Role
	restaurantID *UUID
}

// NewActor builds an actor. Restaurant staff must name the restaurant they work for.
func NewActor(id UUID, role Role, restaurantID *UUID) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if role == RoleRestaurantStaff {
		if restaurantID == nil {
			return Actor{}, errs.NewValueIsRequiredError("restaurantId")
		}
		if err := restaurantID.Validate(); err != nil {
			return Actor{}, err
		}
	} else {
		restaurantID = nil
	}

	return Actor{id: id, role: role, restaurantID: restaurantID}, nil
}

// SystemActor is the service acting on its own behalf.
func SystemActor() Actor {
	return Actor{role: RoleSystem}
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// RestaurantID is set only for restaurant staff.
func (a Actor) RestaurantID() *UUID {
	return a.restaurantID
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

// WorksFor reports whether the actor is staff of the given restaurant.
func (a Actor) WorksFor(restaurantID UUID) bool {
	return a.role == RoleRestaurantStaff && a.restaurantID != nil && a.restaurantID.IsEqual(restaurantID)
}

func (a Actor) String() string {
	if a.role == RoleSystem {
		return string(RoleSystem)
	}
	return fmt.Sprintf("%s:%s", a.role, a.id)
}
