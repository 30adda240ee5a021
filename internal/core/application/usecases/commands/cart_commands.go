package commands

import (
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrAddToCartCommandIsNotConstructed = errors.New(
		"AddToCartCommand must be created via NewAddToCartCommand constructor",
	)
	ErrUpdateCartItemCommandIsNotConstructed = errors.New(
		"UpdateCartItemCommand must be created via NewUpdateCartItemCommand constructor",
	)
	ErrClearCartCommandIsNotConstructed = errors.New(
		"ClearCartCommand must be created via NewClearCartCommand constructor",
	)
)

// AddToCartCommand adds quantity units of a catalog item to the customer's cart.
type AddToCartCommand struct {
	customerID kernel.UUID
	menuItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewAddToCartCommand(customerID, menuItemID kernel.UUID, quantity int) (AddToCartCommand, error) {
	if err := errors.Join(customerID.Validate(), menuItemID.Validate()); err != nil {
		return AddToCartCommand{}, err
	}
	return AddToCartCommand{
		customerID: customerID,
		menuItemID: menuItemID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddToCartCommand) Validate() error {
	return c.guard.Validate(ErrAddToCartCommandIsNotConstructed)
}

func (c AddToCartCommand) CustomerID() kernel.UUID { return c.customerID }
func (c AddToCartCommand) MenuItemID() kernel.UUID { return c.menuItemID }
func (c AddToCartCommand) Quantity() int { return c.quantity }

// UpdateCartItemCommand sets the quantity of a cart line; zero or less removes it.
type UpdateCartItemCommand struct {
	customerID kernel.UUID
	menuItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

func NewUpdateCartItemCommand(customerID, menuItemID kernel.UUID, quantity int) (UpdateCartItemCommand, error) {
	if err := errors.Join(customerID.Validate(), menuItemID.Validate()); err != nil {
		return UpdateCartItemCommand{}, err
	}
	return UpdateCartItemCommand{
		customerID: customerID,
		menuItemID: menuItemID,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCartItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemCommandIsNotConstructed)
}

func (c UpdateCartItemCommand) CustomerID() kernel.UUID { return c.customerID }
func (c UpdateCartItemCommand) MenuItemID() kernel.UUID { return c.menuItemID }
func (c UpdateCartItemCommand) Quantity() int { return c.quantity }

// ClearCartCommand empties the customer's cart.
type ClearCartCommand struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearCartCommand(customerID kernel.UUID) (ClearCartCommand, error) {
	if err := customerID.Validate(); err != nil {
		return ClearCartCommand{}, err
	}
	return ClearCartCommand{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) CustomerID() kernel.UUID { return c.customerID }
