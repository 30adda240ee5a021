package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"foodorder/internal/adapters/out/memory"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/keylock"

	"github.com/stretchr/testify/require"
)

// world is a memory-backed service with one restaurant, one menu item and the
// actors taking part in an order.
type world struct {
	uows      *memory.UnitOfWorkFactory
	catalog   *memory.Catalog
	locker    *keylock.Locker
	publisher *recordingPublisher
	logger    *slog.Logger

	restaurant ports.Restaurant
	menuItem   ports.MenuItem

	customer kernel.Actor
	staff    kernel.Actor
	rider    kernel.Actor
	admin    kernel.Actor
}

func newWorld(t *testing.T) *world {
	t.Helper()

	pickup, err := kernel.NewGeo(52.5200, 13.4050)
	require.NoError(t, err)

	w := &world{
		uows:      memory.NewUnitOfWorkFactory(memory.NewStore()),
		catalog:   memory.NewCatalog(),
		locker:    keylock.New(),
		publisher: &recordingPublisher{},
		logger:    slog.New(slog.DiscardHandler),
		restaurant: ports.Restaurant{
			ID:          kernel.NewUUID(),
			Name:        "Luigi's",
			Address:     "Pasta Street 1",
			Location:    pickup,
			DeliveryFee: kernel.MustMoney("3.00"),
		},
	}
	w.menuItem = ports.MenuItem{
		ID:           kernel.NewUUID(),
		RestaurantID: w.restaurant.ID,
		Name:         "Margherita",
		Price:        kernel.MustMoney("10.00"),
		Available:    true,
	}
	w.catalog.PutRestaurant(w.restaurant)
	w.catalog.PutMenuItem(w.menuItem)

	w.customer = w.actor(t, kernel.RoleCustomer, nil)
	w.staff = w.actor(t, kernel.RoleRestaurantStaff, &w.restaurant.ID)
	w.rider = w.actor(t, kernel.RoleDelivery, nil)
	w.admin = w.actor(t, kernel.RoleAdmin, nil)
	return w
}

func (w *world) actor(t *testing.T, role kernel.Role, restaurantID *kernel.UUID) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role, restaurantID)
	require.NoError(t, err)
	return a
}

func (w *world) uowFactory() commands.UoWFactory {
	return factory[commands.UoW](func() commands.UoW { return w.uows.Create() })
}

func (w *world) orderUoWFactory() commands.OrderUoWFactory {
	return factory[commands.OrderUoW](func() commands.OrderUoW { return w.uows.Create() })
}

func (w *world) courierUoWFactory() commands.CourierUoWFactory {
	return factory[commands.CourierUoW](func() commands.CourierUoW { return w.uows.Create() })
}

func (w *world) cartUoWFactory() commands.CartUoWFactory {
	return factory[commands.CartUoW](func() commands.CartUoW { return w.uows.Create() })
}

func (w *world) checkoutUoWFactory() commands.CheckoutUoWFactory {
	return factory[commands.CheckoutUoW](func() commands.CheckoutUoW { return w.uows.Create() })
}

func (w *world) assignHandler() commands.AssignDeliveryPartnerCommandHandler {
	return commands.NewAssignDeliveryPartnerCommandHandler(w.uowFactory(), w.catalog,
		services.NewDeliveryAssigner(services.NearestPolicy{}), w.locker, w.publisher, w.logger)
}

func (w *world) statusHandler(withAssigner bool) commands.ChangeOrderStatusCommandHandler {
	var assigner commands.Assigner
	if withAssigner {
		assigner = w.assignHandler()
	}
	return commands.NewChangeOrderStatusCommandHandler(w.uowFactory(), w.locker, w.publisher, assigner, w.logger)
}

// placeOrder stores a pending order of two Margheritas for the customer.
func (w *world) placeOrder(t *testing.T) *order.Order {
	t.Helper()
	return w.placeOrderAt(t, time.Now())
}

func (w *world) placeOrderAt(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), w.menuItem.ID, w.menuItem.Name, 2, w.menuItem.Price)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), w.customer.ID(), w.restaurant.ID, []order.Item{item},
		w.restaurant.DeliveryFee, kernel.ZeroMoney(), "1 Main St", "", createdAt)
	require.NoError(t, err)
	require.NoError(t, w.uows.Create().OrderRepository().Add(t.Context(), o))
	return o
}

// advance moves a stored order through the restaurant steps as staff.
func (w *world) advance(t *testing.T, orderID kernel.UUID, to ...order.Status) {
	t.Helper()
	repo := w.uows.Create().OrderRepository()
	o, err := repo.Get(t.Context(), orderID)
	require.NoError(t, err)
	for _, s := range to {
		_, err = o.ApplyTransition(s, w.staff, time.Now())
		require.NoError(t, err)
	}
	require.NoError(t, repo.Update(t.Context(), o))
}

func (w *world) addCourier(t *testing.T, id kernel.UUID, lat, lon float64) {
	t.Helper()
	location, err := kernel.NewGeo(lat, lon)
	require.NoError(t, err)
	c, err := courier.NewCourier(id, "Rider "+id.String()[:4], location)
	require.NoError(t, err)
	require.NoError(t, w.uows.Create().CourierRepository().Add(t.Context(), c))
}

func (w *world) order(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := w.uows.Create().OrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return o
}

func (w *world) courier(t *testing.T, id kernel.UUID) *courier.Courier {
	t.Helper()
	c, err := w.uows.Create().CourierRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return c
}

func statusCommand(t *testing.T, orderID kernel.UUID, to order.Status, expected *order.Status, actor kernel.Actor) commands.ChangeOrderStatusCommand {
	t.Helper()
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, to, expected, actor)
	require.NoError(t, err)
	return cmd
}
