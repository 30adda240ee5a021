package commands

import (
	"context"
	"errors"
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// CreateOrderFromCartCommandHandler converts the customer's cart into an order.
//
// Business flow:
//   - the cart must exist and hold at least one line
//   - every line becomes an order item carrying the price captured in the cart
//   - the delivery fee comes from the restaurant in the catalog
//   - the order is stored and the cart deleted in one transaction, so a failed
//     checkout leaves the cart intact for a retry
//   - the restaurant's staff receive order_update with status pending
type CreateOrderFromCartCommandHandler struct {
	uowFactory CheckoutUoWFactory
	catalog    ports.Catalog
	publisher  ports.EventPublisher
}

func NewCreateOrderFromCartCommandHandler(
	uowFactory CheckoutUoWFactory,
	catalog ports.Catalog,
	publisher ports.EventPublisher,
) CreateOrderFromCartCommandHandler {
	return CreateOrderFromCartCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
	}
}

func (h *CreateOrderFromCartCommandHandler) Handle(ctx context.Context, cmd CreateOrderFromCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := cartRepo.Get(ctx, cmd.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return cart.ErrCartIsEmpty
	}
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		return cart.ErrCartIsEmpty
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, *c.RestaurantID())
	if err != nil {
		return err
	}

	items := make([]order.Item, 0, len(c.Lines()))
	for _, line := range c.Lines() {
		item, err := order.NewItem(kernel.NewUUID(), line.MenuItemID(), line.Name(), line.Quantity(), line.UnitPrice())
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		restaurant.ID,
		items,
		restaurant.DeliveryFee,
		cmd.Discount(),
		cmd.DeliveryAddress(),
		cmd.SpecialInstructions(),
		time.Now(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = cartRepo.Delete(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, ports.OrderUpdateRecipients(o), ports.OrderUpdateOf(o))
	return nil
}
