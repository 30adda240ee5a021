package queries

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// GetOrderSnapshotQueryHandler returns the ground truth tracking clients poll.
//
// Only participants may read an order: the customer, the staff of its restaurant,
// the assigned delivery partner and admins. Everybody else gets order.ErrUnauthorized.
// The restaurant summary is omitted when the catalog does not know the restaurant.
type GetOrderSnapshotQueryHandler struct {
	readers OrderReaderFactory
	catalog ports.Catalog
}

func NewGetOrderSnapshotQueryHandler(readers OrderReaderFactory, catalog ports.Catalog) GetOrderSnapshotQueryHandler {
	return GetOrderSnapshotQueryHandler{readers: readers, catalog: catalog}
}

func (h GetOrderSnapshotQueryHandler) Handle(ctx context.Context, query GetOrderSnapshotQuery) (OrderSnapshot, error) {
	if err := query.Validate(); err != nil {
		return OrderSnapshot{}, err
	}

	o, err := h.readers.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderSnapshot{}, err
	}

	if !o.CanBeReadBy(query.Actor()) {
		return OrderSnapshot{}, fmt.Errorf("%w: %s may not read order %s", order.ErrUnauthorized, query.Actor(), o.ID())
	}

	snapshot := newOrderSnapshot(o)

	restaurant, err := h.catalog.GetRestaurant(ctx, o.RestaurantID())
	switch {
	case err == nil:
		snapshot.Restaurant = &RestaurantSummary{ID: restaurant.ID, Name: restaurant.Name, Address: restaurant.Address}
	case errors.Is(err, errs.ErrObjectNotFound):
	default:
		return OrderSnapshot{}, err
	}

	return snapshot, nil
}
