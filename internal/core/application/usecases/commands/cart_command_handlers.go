package commands

import (
	"context"
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
)

// ErrMenuItemIsUnavailable is returned when the catalog marks an item as sold out.
var ErrMenuItemIsUnavailable = errors.New("menu item is not available")

// AddToCartCommandHandler looks the item up in the catalog and stores a price
// snapshot in the cart.
//
// Example:
//
//	cmd, _ := NewAddToCartCommand(customerID, menuItemID, 2)
//	c, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, cart.ErrRestaurantMismatch) {
//	    // ask the customer to clear the cart first
//	}
type AddToCartCommandHandler struct {
	uowFactory CartUoWFactory
	catalog    ports.Catalog
}

func NewAddToCartCommandHandler(uowFactory CartUoWFactory, catalog ports.Catalog) AddToCartCommandHandler {
	return AddToCartCommandHandler{uowFactory: uowFactory, catalog: catalog}
}

func (h AddToCartCommandHandler) Handle(ctx context.Context, cmd AddToCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item, err := h.catalog.GetMenuItem(ctx, cmd.MenuItemID())
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: %s", ErrMenuItemIsUnavailable, item.Name)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := loadCart(ctx, cartRepo, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	if err = c.AddItem(item.ID, item.Name, item.Price, cmd.Quantity(), item.RestaurantID); err != nil {
		return nil, err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// UpdateCartItemCommandHandler changes or removes a single cart line.
type UpdateCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewUpdateCartItemCommandHandler(uowFactory CartUoWFactory) UpdateCartItemCommandHandler {
	return UpdateCartItemCommandHandler{uowFactory: uowFactory}
}

func (h UpdateCartItemCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := loadCart(ctx, cartRepo, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	if err = c.UpdateQuantity(cmd.MenuItemID(), cmd.Quantity()); err != nil {
		return nil, err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

// ClearCartCommandHandler drops the customer's cart.
type ClearCartCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewClearCartCommandHandler(uowFactory CartUoWFactory) ClearCartCommandHandler {
	return ClearCartCommandHandler{uowFactory: uowFactory}
}

func (h ClearCartCommandHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
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

	if err := uow.CartRepository().Delete(ctx, cmd.CustomerID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// loadCart returns the stored cart or a new empty one.
func loadCart(ctx context.Context, repo ports.CartRepository, customerID kernel.UUID) (*cart.Cart, error) {
	c, err := repo.Get(ctx, customerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return cart.NewCart(customerID)
	}
	return c, err
}
