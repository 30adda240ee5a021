package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
)

// MenuItem is the catalog's view of a sellable item at the time of the lookup.
type MenuItem struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        kernel.Money
	Available    bool
}

// Restaurant is the summary shown next to an order.
type Restaurant struct {
	ID          kernel.UUID
	Name        string
	Address     string
	Location    kernel.Geo
	DeliveryFee kernel.Money
}

// Catalog is the menu/catalog collaborator. Prices read here are copied into carts
// and orders; nothing keeps a live reference.
type Catalog interface {
	// GetMenuItem returns an errs.ObjectNotFoundError for unknown items.
	GetMenuItem(ctx context.Context, id kernel.UUID) (MenuItem, error)

	// GetRestaurant returns an errs.ObjectNotFoundError for unknown restaurants.
	GetRestaurant(ctx context.Context, id kernel.UUID) (Restaurant, error)
}
