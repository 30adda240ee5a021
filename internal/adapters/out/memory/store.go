// Package memory keeps orders, couriers, carts and the catalog in process memory.
// It backs STORE=memory and the concurrency tests of the application layer.
//
// Aggregates are stored as immutable records and rebuilt on every read, so a
// caller never shares state with the store. A UnitOfWork stages its writes and
// applies them atomically on Commit; order and courier writes are guarded by
// version exactly like the postgres adapter.
package memory

import (
	"sync"
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// Store is the shared state behind every UnitOfWork created by one factory.
type Store struct {
	mu       sync.RWMutex
	orders   map[kernel.UUID]orderRecord
	couriers map[kernel.UUID]courierRecord
	carts    map[kernel.UUID]cartRecord
}

func NewStore() *Store {
	return &Store{
		orders:   make(map[kernel.UUID]orderRecord),
		couriers: make(map[kernel.UUID]courierRecord),
		carts:    make(map[kernel.UUID]cartRecord),
	}
}

type orderRecord struct {
	id                  kernel.UUID
	customerID          kernel.UUID
	restaurantID        kernel.UUID
	courierID           *kernel.UUID
	status              order.Status
	deliveryFee         kernel.Money
	discount            kernel.Money
	paymentStatus       order.PaymentStatus
	deliveryAddress     string
	specialInstructions string
	createdAt           time.Time
	items               []order.Item
	events              []order.Event
	version             int
}

func newOrderRecord(o *order.Order) orderRecord {
	return orderRecord{
		id:                  o.ID(),
		customerID:          o.CustomerID(),
		restaurantID:        o.RestaurantID(),
		courierID:           o.Courier(),
		status:              o.Status(),
		deliveryFee:         o.DeliveryFee(),
		discount:            o.Discount(),
		paymentStatus:       o.PaymentStatus(),
		deliveryAddress:     o.DeliveryAddress(),
		specialInstructions: o.SpecialInstructions(),
		createdAt:           o.CreatedAt(),
		items:               o.Items(),
		events:              o.Events(),
		version:             o.Version(),
	}
}

func (r orderRecord) restore() (*order.Order, error) {
	return order.RestoreOrder(
		r.id, r.customerID, r.restaurantID, r.courierID, r.status,
		r.deliveryFee, r.discount, r.paymentStatus,
		r.deliveryAddress, r.specialInstructions, r.createdAt,
		r.items, r.events, r.version,
	)
}

type courierRecord struct {
	id            kernel.UUID
	name          string
	location      kernel.Geo
	available     bool
	activeOrderID *kernel.UUID
	version       int
}

func newCourierRecord(c *courier.Courier) courierRecord {
	return courierRecord{
		id:            c.ID(),
		name:          c.Name(),
		location:      c.Location(),
		available:     c.Available(),
		activeOrderID: c.ActiveOrderID(),
		version:       c.Version(),
	}
}

func (r courierRecord) restore() (*courier.Courier, error) {
	return courier.RestoreCourier(r.id, r.name, r.location, r.available, r.activeOrderID, r.version)
}

type cartRecord struct {
	customerID   kernel.UUID
	restaurantID *kernel.UUID
	lines        []cart.Line
	updatedAt    time.Time
}

func newCartRecord(c *cart.Cart) cartRecord {
	return cartRecord{
		customerID:   c.CustomerID(),
		restaurantID: c.RestaurantID(),
		lines:        c.Lines(),
		updatedAt:    c.UpdatedAt(),
	}
}

func (r cartRecord) restore() (*cart.Cart, error) {
	return cart.RestoreCart(r.customerID, r.restaurantID, r.lines, r.updatedAt)
}
