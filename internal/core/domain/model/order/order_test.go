package order_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	customer   kernel.Actor
	staff      kernel.Actor
	otherStaff kernel.Actor
	courier    kernel.Actor
	admin      kernel.Actor
	restaurant kernel.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	restaurant := kernel.NewUUID()
	other := kernel.NewUUID()

	customer, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer, nil)
	require.NoError(t, err)
	staff, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleRestaurantStaff, &restaurant)
	require.NoError(t, err)
	otherStaff, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleRestaurantStaff, &other)
	require.NoError(t, err)
	courier, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDelivery, nil)
	require.NoError(t, err)
	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin, nil)
	require.NoError(t, err)

	return fixture{
		customer:   customer,
		staff:      staff,
		otherStaff: otherStaff,
		courier:    courier,
		admin:      admin,
		restaurant: restaurant,
	}
}

func newItem(t *testing.T, quantity int, unitPrice string) order.Item {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Margherita", quantity, kernel.MustMoney(unitPrice))
	require.NoError(t, err)
	return item
}

func (f fixture) newOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), f.customer.ID(), f.restaurant,
		[]order.Item{newItem(t, 2, "10.00")},
		kernel.MustMoney("3.00"), kernel.ZeroMoney(), "1 Main St", "ring twice", now)
	require.NoError(t, err)
	return o
}

// advance drives o along the happy path up to target.
func (f fixture) advance(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()

	for _, s := range order.Progression()[1:] {
		if o.Status().Position() >= target.Position() {
			return
		}
		actor := f.staff
		switch s {
		case order.OutForDelivery:
			if o.Courier() == nil {
				require.NoError(t, o.AssignCourier(f.courier.ID(), kernel.SystemActor(), now))
			}
			actor = f.courier
		case order.Delivered:
			actor = f.courier
		}
		changed, err := o.ApplyTransition(s, actor, now)
		require.NoError(t, err)
		require.True(t, changed)
	}
}

func TestNewOrder(t *testing.T) {
	f := newFixture(t)

	t.Run("computes totals and starts in pending", func(t *testing.T) {
		o := f.newOrder(t)

		assert.Equal(t, "20.00", o.Subtotal().String())
		assert.Equal(t, "3.00", o.DeliveryFee().String())
		assert.Equal(t, "23.00", o.Total().String())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Nil(t, o.Courier())
		assert.Equal(t, "ring twice", o.SpecialInstructions())

		events := o.Events()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventOrderCreated, events[0].Type())
		assert.Equal(t, 1, events[0].Seq())
		assert.Equal(t, "customer:"+f.customer.ID().String(), events[0].Actor())
		assert.Len(t, o.PendingEvents(), 1)
	})

	t.Run("applies the discount", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), f.customer.ID(), f.restaurant,
			[]order.Item{newItem(t, 1, "12.50")},
			kernel.MustMoney("2.00"), kernel.MustMoney("4.50"), "1 Main St", "", now)

		require.NoError(t, err)
		assert.Equal(t, "10.00", o.Total().String())
	})

	t.Run("rejects a discount larger than the order", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), f.customer.ID(), f.restaurant,
			[]order.Item{newItem(t, 1, "5.00")},
			kernel.ZeroMoney(), kernel.MustMoney("6.00"), "1 Main St", "", now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires items and an address", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), f.customer.ID(), f.restaurant,
			nil, kernel.ZeroMoney(), kernel.ZeroMoney(), "  ", "", now)

		require.ErrorIs(t, err, order.ErrItemsAreRequired)
		assert.Contains(t, err.Error(), "deliveryAddress")
	})

	t.Run("rejects an item built without the constructor", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), f.customer.ID(), f.restaurant,
			[]order.Item{{}}, kernel.ZeroMoney(), kernel.ZeroMoney(), "1 Main St", "", now)

		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestOrder_HappyPath(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	for _, to := range []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup} {
		changed, err := o.ApplyTransition(to, f.staff, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, to, o.Status())
	}

	t.Run("ready_for_pickup cannot jump to delivered", func(t *testing.T) {
		require.NoError(t, o.AssignCourier(f.courier.ID(), kernel.SystemActor(), now))
		before := o.Events()

		_, err := o.ApplyTransition(order.Delivered, f.courier, now)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.ReadyForPickup, transitionErr.From)
		assert.Equal(t, order.Delivered, transitionErr.To)
		assert.Equal(t, before, o.Events())
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("the courier finishes the delivery", func(t *testing.T) {
		_, err := o.ApplyTransition(order.OutForDelivery, f.courier, now)
		require.NoError(t, err)
		_, err = o.ApplyTransition(order.Delivered, f.courier, now)
		require.NoError(t, err)

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.Delivered, o.StatusFromTrail())
	})

	t.Run("trail seq is gapless", func(t *testing.T) {
		for i, e := range o.Events() {
			assert.Equal(t, i+1, e.Seq())
			assert.True(t, e.OrderID().IsEqual(o.ID()))
		}
	})
}

func TestOrder_InvalidTransitionsLeaveOrderUnchanged(t *testing.T) {
	f := newFixture(t)

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			if from == to || from.CanTransition(to) || to == order.Pending {
				continue
			}
			t.Run(from.String()+" to "+to.String(), func(t *testing.T) {
				o := f.newOrder(t)
				if from == order.Cancelled {
					_, err := o.ApplyTransition(order.Cancelled, f.staff, now)
					require.NoError(t, err)
				} else {
					f.advance(t, o, from)
				}
				before := o.Events()
				version := o.Version()

				// staff and system together hold every permission needed to reach the graph check
				actor := f.staff
				switch to {
				case order.OutForDelivery, order.Delivered:
					actor = kernel.SystemActor()
				}
				changed, err := o.ApplyTransition(to, actor, now)

				require.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.False(t, changed)
				assert.Equal(t, from, o.Status())
				assert.Equal(t, before, o.Events())
				assert.Equal(t, version, o.Version())
			})
		}
	}
}

func TestOrder_ApplyTransition_Idempotent(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	changed, err := o.ApplyTransition(order.Confirmed, f.staff, now)
	require.NoError(t, err)
	require.True(t, changed)
	events := len(o.Events())

	changed, err = o.ApplyTransition(order.Confirmed, f.staff, now)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, o.Events(), events)
}

func TestOrder_ApplyTransition_BackToPending(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := o.ApplyTransition(order.Pending, f.staff, now)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Len(t, o.Events(), 1)
}

func TestOrder_ApplyTransition_Authorization(t *testing.T) {
	f := newFixture(t)

	t.Run("customers cannot drive the kitchen", func(t *testing.T) {
		o := f.newOrder(t)

		_, err := o.ApplyTransition(order.Confirmed, f.customer, now)

		require.ErrorIs(t, err, order.ErrUnauthorized)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("staff of another restaurant cannot confirm", func(t *testing.T) {
		o := f.newOrder(t)

		_, err := o.ApplyTransition(order.Confirmed, f.otherStaff, now)

		require.ErrorIs(t, err, order.ErrUnauthorized)
	})

	t.Run("customers cannot cancel", func(t *testing.T) {
		o := f.newOrder(t)

		_, err := o.ApplyTransition(order.Cancelled, f.customer, now)

		require.ErrorIs(t, err, order.ErrUnauthorized)
	})

	t.Run("admin can cancel", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.Preparing)

		changed, err := o.ApplyTransition(order.Cancelled, f.admin, now)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.Cancelled, o.StatusFromTrail())
	})

	t.Run("only the assigned courier picks up", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.ReadyForPickup)
		require.NoError(t, o.AssignCourier(f.courier.ID(), kernel.SystemActor(), now))
		stranger, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDelivery, nil)
		require.NoError(t, err)

		_, err = o.ApplyTransition(order.OutForDelivery, stranger, now)
		require.ErrorIs(t, err, order.ErrUnauthorized)

		_, err = o.ApplyTransition(order.OutForDelivery, f.staff, now)
		require.ErrorIs(t, err, order.ErrUnauthorized)

		changed, err := o.ApplyTransition(order.OutForDelivery, f.courier, now)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("pickup requires an assigned partner", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.ReadyForPickup)

		_, err := o.ApplyTransition(order.OutForDelivery, kernel.SystemActor(), now)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.NotEmpty(t, transitionErr.Reason)
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	f := newFixture(t)

	t.Run("records delivery_assigned without changing status", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.ReadyForPickup)
		require.True(t, o.CanBeAssigned())

		err := o.AssignCourier(f.courier.ID(), kernel.SystemActor(), now)

		require.NoError(t, err)
		assert.Equal(t, order.ReadyForPickup, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(f.courier.ID()))
		assert.False(t, o.CanBeAssigned())

		events := o.Events()
		last := events[len(events)-1]
		assert.Equal(t, order.EventDeliveryAssigned, last.Type())
		assert.Equal(t, "system", last.Actor())
		assert.Contains(t, string(last.Payload()), f.courier.ID().String())
	})

	t.Run("a second assignment fails", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.ReadyForPickup)
		require.NoError(t, o.AssignCourier(f.courier.ID(), kernel.SystemActor(), now))

		err := o.AssignCourier(kernel.NewUUID(), kernel.SystemActor(), now)

		require.ErrorIs(t, err, order.ErrAlreadyAssigned)
	})

	t.Run("assignment before ready_for_pickup fails", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.Preparing)

		err := o.AssignCourier(f.courier.ID(), kernel.SystemActor(), now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, o.Courier())
	})

	t.Run("staff cannot assign", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.ReadyForPickup)

		err := o.AssignCourier(f.courier.ID(), f.staff, now)

		require.ErrorIs(t, err, order.ErrUnauthorized)
	})
}

func TestOrder_RecordLocation(t *testing.T) {
	f := newFixture(t)
	point, err := kernel.NewGeo(52.52, 13.405)
	require.NoError(t, err)

	t.Run("the assigned courier reports a location", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.OutForDelivery)

		require.NoError(t, o.RecordLocation(point, f.courier, now))

		events := o.Events()
		loc, ok := events[len(events)-1].Location()
		require.True(t, ok)
		assert.InDelta(t, 52.52, loc.Lat, 1e-9)
		assert.InDelta(t, 13.405, loc.Lon, 1e-9)
		assert.Equal(t, order.OutForDelivery, o.StatusFromTrail())
	})

	t.Run("others cannot report", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.OutForDelivery)

		require.ErrorIs(t, o.RecordLocation(point, f.customer, now), order.ErrUnauthorized)
	})

	t.Run("not after delivery", func(t *testing.T) {
		o := f.newOrder(t)
		f.advance(t, o, order.Delivered)

		require.ErrorIs(t, o.RecordLocation(point, f.courier, now), order.ErrInvalidTransition)
	})
}

func TestOrder_MarkPayment(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := o.MarkPayment(order.PaymentCompleted, f.customer, now)
	require.ErrorIs(t, err, order.ErrUnauthorized)

	changed, err := o.MarkPayment(order.PaymentCompleted, kernel.SystemActor(), now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.PaymentCompleted, o.PaymentStatus())

	changed, err = o.MarkPayment(order.PaymentCompleted, kernel.SystemActor(), now)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = o.MarkPayment(order.PaymentStatus("bogus"), kernel.SystemActor(), now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	assert.Equal(t, order.Pending, o.StatusFromTrail())
}

func TestOrder_CanBeReadBy(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)
	f.advance(t, o, order.ReadyForPickup)
	stranger, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer, nil)
	require.NoError(t, err)
	otherCourier, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDelivery, nil)
	require.NoError(t, err)

	assert.True(t, o.CanBeReadBy(f.customer))
	assert.True(t, o.CanBeReadBy(f.staff))
	assert.True(t, o.CanBeReadBy(f.admin))
	assert.False(t, o.CanBeReadBy(stranger))
	assert.False(t, o.CanBeReadBy(f.otherStaff))
	assert.False(t, o.CanBeReadBy(f.courier))

	require.NoError(t, o.AssignCourier(f.courier.ID(), kernel.SystemActor(), now))

	assert.True(t, o.CanBeReadBy(f.courier))
	assert.False(t, o.CanBeReadBy(otherCourier))
}

func TestRestoreOrder(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)
	f.advance(t, o, order.Preparing)

	restore := func(status order.Status) (*order.Order, error) {
		return order.RestoreOrder(o.ID(), o.CustomerID(), o.RestaurantID(), o.Courier(), status,
			o.DeliveryFee(), o.Discount(), o.PaymentStatus(), o.DeliveryAddress(), o.SpecialInstructions(),
			o.CreatedAt(), o.Items(), o.Events(), o.Version())
	}

	t.Run("restores a consistent order", func(t *testing.T) {
		restored, err := restore(order.Preparing)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, "23.00", restored.Total().String())
		assert.Empty(t, restored.PendingEvents())
		assert.Equal(t, o.Version(), restored.PersistedVersion())
	})

	t.Run("rejects a status that disagrees with the trail", func(t *testing.T) {
		_, err := restore(order.Delivered)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("new events become pending", func(t *testing.T) {
		restored, err := restore(order.Preparing)
		require.NoError(t, err)

		_, err = restored.ApplyTransition(order.ReadyForPickup, f.staff, now)
		require.NoError(t, err)

		pending := restored.PendingEvents()
		require.Len(t, pending, 1)
		assert.Equal(t, len(o.Events())+1, pending[0].Seq())
		assert.Equal(t, o.Version()+1, restored.Version())

		restored.MarkPersisted()
		assert.Empty(t, restored.PendingEvents())
		assert.Equal(t, restored.Version(), restored.PersistedVersion())
	})
}

func TestOrder_NotConstructed(t *testing.T) {
	var o order.Order

	_, err := o.ApplyTransition(order.Confirmed, kernel.SystemActor(), now)

	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}
