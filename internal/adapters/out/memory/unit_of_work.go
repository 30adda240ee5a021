package memory

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return newUnitOfWork(f.store)
}

// UnitOfWork stages writes until Commit. Without Begin every write is applied
// immediately, mirroring repositories used outside a database transaction.
type UnitOfWork struct {
	store  *Store
	active bool

	orders        map[kernel.UUID]orderRecord
	orderGuards   map[kernel.UUID]int
	couriers      map[kernel.UUID]courierRecord
	courierGuards map[kernel.UUID]int
	carts         map[kernel.UUID]*cartRecord
}

func newUnitOfWork(store *Store) *UnitOfWork {
	uow := &UnitOfWork{store: store}
	uow.reset()
	return uow
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit applies every staged write at once. It fails with
// ports.ErrConcurrentUpdate, applying nothing, when an order or a courier changed
// in the store since it was read.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	defer uow.reset()
	uow.active = false

	return uow.apply()
}

// Rollback discards staged writes. It is a no-op after Commit.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	uow.active = false
	uow.reset()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &CourierRepository{uow: uow}
}

func (uow *UnitOfWork) CartRepository() ports.CartRepository {
	return &CartRepository{uow: uow}
}

func (uow *UnitOfWork) reset() {
	uow.orders = make(map[kernel.UUID]orderRecord)
	uow.orderGuards = make(map[kernel.UUID]int)
	uow.couriers = make(map[kernel.UUID]courierRecord)
	uow.courierGuards = make(map[kernel.UUID]int)
	uow.carts = make(map[kernel.UUID]*cartRecord)
}

// flush applies staged writes right away when no transaction is open.
func (uow *UnitOfWork) flush() error {
	if uow.active {
		return nil
	}
	defer uow.reset()
	return uow.apply()
}

func (uow *UnitOfWork) apply() error {
	s := uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, expected := range uow.orderGuards {
		current, ok := s.orders[id]
		if !guardHolds(expected, current.version, ok) {
			return ports.ErrConcurrentUpdate
		}
	}
	for id, expected := range uow.courierGuards {
		current, ok := s.couriers[id]
		if !guardHolds(expected, current.version, ok) {
			return ports.ErrConcurrentUpdate
		}
	}

	for id, rec := range uow.orders {
		s.orders[id] = rec
	}
	for id, rec := range uow.couriers {
		s.couriers[id] = rec
	}
	for id, rec := range uow.carts {
		if rec == nil {
			delete(s.carts, id)
			continue
		}
		s.carts[id] = *rec
	}
	return nil
}

// guardHolds reports whether a stored record still matches the version a write was
// staged against. A negative expected version stands for "must not exist yet".
func guardHolds(expected, stored int, exists bool) bool {
	if expected < 0 {
		return !exists
	}
	return exists && stored == expected
}
