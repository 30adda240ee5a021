package memory

import (
	"context"
	"fmt"
	"sort"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a UnitOfWork.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, ok := r.record(o.ID()); ok {
		return fmt.Errorf("order %s already exists", o.ID())
	}

	r.uow.orders[o.ID()] = newOrderRecord(o)
	r.uow.orderGuards[o.ID()] = -1
	if err := r.uow.flush(); err != nil {
		return err
	}
	o.MarkPersisted()
	return nil
}

func (r *OrderRepository) Update(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	current, ok := r.record(o.ID())
	if !ok {
		return errs.NewObjectNotFoundError("orderID", o.ID())
	}
	if current.version != o.PersistedVersion() {
		return ports.ErrConcurrentUpdate
	}

	if _, guarded := r.uow.orderGuards[o.ID()]; !guarded {
		r.uow.orderGuards[o.ID()] = o.PersistedVersion()
	}
	r.uow.orders[o.ID()] = newOrderRecord(o)
	if err := r.uow.flush(); err != nil {
		return err
	}
	o.MarkPersisted()
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	rec, ok := r.record(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return rec.restore()
}

func (r *OrderRepository) GetAllReadyUnassigned(_ context.Context) ([]*order.Order, error) {
	recs := r.records(func(rec orderRecord) bool {
		return rec.status == order.ReadyForPickup && rec.courierID == nil
	})
	sort.Slice(recs, func(i, j int) bool { return recs[i].createdAt.Before(recs[j].createdAt) })
	return restoreOrders(recs)
}

func (r *OrderRepository) GetAll(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	recs := r.records(func(rec orderRecord) bool {
		switch {
		case filter.CustomerID != nil && !rec.customerID.IsEqual(*filter.CustomerID):
			return false
		case filter.RestaurantID != nil && !rec.restaurantID.IsEqual(*filter.RestaurantID):
			return false
		case filter.CourierID != nil && (rec.courierID == nil || !rec.courierID.IsEqual(*filter.CourierID)):
			return false
		}
		return true
	})
	sort.Slice(recs, func(i, j int) bool { return recs[i].createdAt.After(recs[j].createdAt) })
	if filter.Limit > 0 && len(recs) > filter.Limit {
		recs = recs[:filter.Limit]
	}
	return restoreOrders(recs)
}

// record prefers the unit of work's staged version over the stored one.
func (r *OrderRepository) record(id kernel.UUID) (orderRecord, bool) {
	if rec, ok := r.uow.orders[id]; ok {
		return rec, true
	}
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	rec, ok := r.uow.store.orders[id]
	return rec, ok
}

func (r *OrderRepository) records(match func(orderRecord) bool) []orderRecord {
	r.uow.store.mu.RLock()
	merged := make(map[kernel.UUID]orderRecord, len(r.uow.store.orders))
	for id, rec := range r.uow.store.orders {
		merged[id] = rec
	}
	r.uow.store.mu.RUnlock()
	for id, rec := range r.uow.orders {
		merged[id] = rec
	}

	out := make([]orderRecord, 0, len(merged))
	for _, rec := range merged {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func restoreOrders(recs []orderRecord) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(recs))
	for _, rec := range recs {
		o, err := rec.restore()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// CourierRepository implements ports.CourierRepository over a UnitOfWork.
type CourierRepository struct {
	uow *UnitOfWork
}

func (r *CourierRepository) Add(_ context.Context, c *courier.Courier) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, ok := r.record(c.ID()); ok {
		return fmt.Errorf("courier %s already exists", c.ID())
	}

	r.uow.couriers[c.ID()] = newCourierRecord(c)
	r.uow.courierGuards[c.ID()] = -1
	if err := r.uow.flush(); err != nil {
		return err
	}
	c.MarkPersisted()
	return nil
}

func (r *CourierRepository) Update(_ context.Context, c *courier.Courier) error {
	if err := c.Validate(); err != nil {
		return err
	}
	current, ok := r.record(c.ID())
	if !ok {
		return errs.NewObjectNotFoundError("courierID", c.ID())
	}
	if current.version != c.PersistedVersion() {
		return ports.ErrConcurrentUpdate
	}

	if _, guarded := r.uow.courierGuards[c.ID()]; !guarded {
		r.uow.courierGuards[c.ID()] = c.PersistedVersion()
	}
	r.uow.couriers[c.ID()] = newCourierRecord(c)
	if err := r.uow.flush(); err != nil {
		return err
	}
	c.MarkPersisted()
	return nil
}

func (r *CourierRepository) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	rec, ok := r.record(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("courierID", id)
	}
	return rec.restore()
}

func (r *CourierRepository) GetAllFree(_ context.Context) ([]*courier.Courier, error) {
	r.uow.store.mu.RLock()
	merged := make(map[kernel.UUID]courierRecord, len(r.uow.store.couriers))
	for id, rec := range r.uow.store.couriers {
		merged[id] = rec
	}
	r.uow.store.mu.RUnlock()
	for id, rec := range r.uow.couriers {
		merged[id] = rec
	}

	recs := make([]courierRecord, 0, len(merged))
	for _, rec := range merged {
		if rec.available && rec.activeOrderID == nil {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].name < recs[j].name })

	out := make([]*courier.Courier, 0, len(recs))
	for _, rec := range recs {
		c, err := rec.restore()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CourierRepository) record(id kernel.UUID) (courierRecord, bool) {
	if rec, ok := r.uow.couriers[id]; ok {
		return rec, true
	}
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	rec, ok := r.uow.store.couriers[id]
	return rec, ok
}

// CartRepository implements ports.CartRepository over a UnitOfWork.
type CartRepository struct {
	uow *UnitOfWork
}

func (r *CartRepository) Get(_ context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if rec, staged := r.uow.carts[customerID]; staged {
		if rec == nil {
			return nil, errs.NewObjectNotFoundError("customerID", customerID)
		}
		return rec.restore()
	}

	r.uow.store.mu.RLock()
	rec, ok := r.uow.store.carts[customerID]
	r.uow.store.mu.RUnlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("customerID", customerID)
	}
	return rec.restore()
}

func (r *CartRepository) Save(_ context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}
	rec := newCartRecord(c)
	r.uow.carts[c.CustomerID()] = &rec
	return r.uow.flush()
}

func (r *CartRepository) Delete(_ context.Context, customerID kernel.UUID) error {
	r.uow.carts[customerID] = nil
	return r.uow.flush()
}
