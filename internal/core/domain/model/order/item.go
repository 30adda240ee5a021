package order

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of a placed order. The unit price is a snapshot taken at
// checkout; later catalog price changes never reach a placed order.
type Item struct {
	id         kernel.UUID
	menuItemID kernel.UUID
	name       string
	quantity   int
	unitPrice  kernel.Money
	guard      guard.ConstructorGuard
}

func NewItem(id, menuItemID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Item, error) {
	if err := errors.Join(id.Validate(), menuItemID.Validate()); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}

	return Item{
		id:         id,
		menuItemID: menuItemID,
		name:       name,
		quantity:   quantity,
		unitPrice:  unitPrice,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() kernel.UUID { return i.id }
func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }
func (i Item) Name() string { return i.name }
func (i Item) Quantity() int { return i.quantity }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }

// LineTotal is quantity × unit price.
func (i Item) LineTotal() kernel.Money {
	total, err := i.unitPrice.Mul(i.quantity)
	if err != nil {
		// quantity is at least 1, so the product cannot be negative
		return kernel.ZeroMoney()
	}
	return total
}
