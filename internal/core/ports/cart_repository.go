package ports

import (
	"context"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
)

// CartRepository stores one cart per customer.
type CartRepository interface {
	// Get returns the customer's cart, or an errs.ObjectNotFoundError when the
	// customer has none yet.
	Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// Save creates or replaces the customer's cart.
	Save(ctx context.Context, cart *cart.Cart) error

	// Delete removes the customer's cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, customerID kernel.UUID) error
}
