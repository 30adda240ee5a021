package services_test

import (
	"testing"
	"time"

	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func geo(t *testing.T, lat, lon float64) kernel.Geo {
	t.Helper()
	g, err := kernel.NewGeo(lat, lon)
	require.NoError(t, err)
	return g
}

func newCourier(t *testing.T, name string, lat, lon float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name, geo(t, lat, lon))
	require.NoError(t, err)
	return c
}

// readyOrder returns an order already moved to ready_for_pickup by its restaurant.
func readyOrder(t *testing.T) *order.Order {
	t.Helper()

	restaurantID := kernel.NewUUID()
	staff, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleRestaurantStaff, &restaurantID)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Pho", 1, kernel.MustMoney("11.00"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), restaurantID, []order.Item{item},
		kernel.MustMoney("2.00"), kernel.ZeroMoney(), "5 Elm St", "", now)
	require.NoError(t, err)

	for _, s := range []order.Status{order.Confirmed, order.Preparing, order.ReadyForPickup} {
		_, err = o.ApplyTransition(s, staff, now)
		require.NoError(t, err)
	}
	return o
}

func TestDeliveryAssigner_Assign(t *testing.T) {
	pickup := geo(t, 52.5200, 13.4050)

	t.Run("should assign the nearest available courier", func(t *testing.T) {
		// Given
		far := newCourier(t, "Far", 48.8566, 2.3522)
		near := newCourier(t, "Near", 52.5210, 13.4060)
		busy := newCourier(t, "Busy", 52.5200, 13.4050)
		require.NoError(t, busy.TakeOrder(kernel.NewUUID()))
		o := readyOrder(t)
		assigner := services.NewDeliveryAssigner(services.NearestPolicy{})

		// When
		chosen, err := assigner.Assign(o, pickup, []*courier.Courier{far, busy, near}, kernel.SystemActor(), now)

		// Then
		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(near))
		assert.True(t, o.Courier().IsEqual(near.ID()))
		assert.True(t, near.ActiveOrderID().IsEqual(o.ID()))
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("should fail with ErrNoPartnerAvailable and leave the order untouched", func(t *testing.T) {
		offline := newCourier(t, "Offline", 52.52, 13.40)
		offline.SetAvailability(false)
		o := readyOrder(t)
		events := len(o.Events())

		_, err := services.NewDeliveryAssigner(nil).Assign(o, pickup, []*courier.Courier{offline}, kernel.SystemActor(), now)

		require.ErrorIs(t, err, services.ErrNoPartnerAvailable)
		assert.Nil(t, o.Courier())
		assert.Len(t, o.Events(), events)
		assert.Equal(t, order.ReadyForPickup, o.Status())
	})

	t.Run("should fail for an empty candidate list", func(t *testing.T) {
		_, err := services.NewDeliveryAssigner(nil).Assign(readyOrder(t), pickup, nil, kernel.SystemActor(), now)

		require.ErrorIs(t, err, services.ErrNoPartnerAvailable)
	})

	t.Run("should refuse an already assigned order", func(t *testing.T) {
		o := readyOrder(t)
		assigner := services.NewDeliveryAssigner(nil)
		_, err := assigner.Assign(o, pickup, []*courier.Courier{newCourier(t, "A", 1, 1)}, kernel.SystemActor(), now)
		require.NoError(t, err)

		_, err = assigner.Assign(o, pickup, []*courier.Courier{newCourier(t, "B", 1, 1)}, kernel.SystemActor(), now)

		require.ErrorIs(t, err, order.ErrAlreadyAssigned)
	})

	t.Run("should not unbind a courier when the actor is not allowed to assign", func(t *testing.T) {
		o := readyOrder(t)
		c := newCourier(t, "A", 1, 1)
		customer, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer, nil)
		require.NoError(t, err)

		_, err = services.NewDeliveryAssigner(nil).Assign(o, pickup, []*courier.Courier{c}, customer, now)

		require.ErrorIs(t, err, order.ErrUnauthorized)
		assert.Nil(t, c.ActiveOrderID())
	})

	t.Run("should pick the first candidate without a pickup point", func(t *testing.T) {
		first := newCourier(t, "First", 10, 10)
		second := newCourier(t, "Second", 52.52, 13.40)

		chosen, err := services.NewDeliveryAssigner(nil).Assign(readyOrder(t), kernel.Geo{},
			[]*courier.Courier{first, second}, kernel.SystemActor(), now)

		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(first))
	})
}

func TestRoundRobinPolicy_Select(t *testing.T) {
	policy := &services.RoundRobinPolicy{}
	candidates := []*courier.Courier{
		newCourier(t, "A", 1, 1),
		newCourier(t, "B", 1, 1),
		newCourier(t, "C", 1, 1),
	}

	seen := map[string]int{}
	for range 6 {
		c, err := policy.Select(kernel.Geo{}, candidates)
		require.NoError(t, err)
		seen[c.Name()]++
	}

	assert.Equal(t, map[string]int{"A": 2, "B": 2, "C": 2}, seen)

	_, err := policy.Select(kernel.Geo{}, nil)
	require.ErrorIs(t, err, services.ErrNoPartnerAvailable)
}

func TestNewSelectionPolicy(t *testing.T) {
	p, err := services.NewSelectionPolicy("nearest")
	require.NoError(t, err)
	assert.IsType(t, services.NearestPolicy{}, p)

	p, err = services.NewSelectionPolicy("ROUND_ROBIN")
	require.NoError(t, err)
	assert.IsType(t, &services.RoundRobinPolicy{}, p)

	_, err = services.NewSelectionPolicy("random")
	require.Error(t, err)
}
