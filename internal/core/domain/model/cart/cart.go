package cart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

	// ErrRestaurantMismatch is returned when an item of a second restaurant is added to a
	// non-empty cart.
	ErrRestaurantMismatch = errors.New("cart belongs to another restaurant")

	ErrCartIsEmpty = errors.New("cart is empty")
)

// Line is one menu item in the cart with the price captured when it was added.
type Line struct {
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
	guard      guard.ConstructorGuard
}

func NewLine(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (Line, error) {
	if err := menuItemID.Validate(); err != nil {
		return Line{}, errs.NewValueIsRequiredErrorWithCause("menuItemId", err)
	}
	if quantity < 1 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	return Line{
		menuItemID: menuItemID,
		name:       strings.TrimSpace(name),
		unitPrice:  unitPrice,
		quantity:   quantity,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l Line) MenuItemID() kernel.UUID { return l.menuItemID }
func (l Line) Name() string { return l.name }
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l Line) Quantity() int { return l.quantity }

// LineTotal is quantity × unit price.
func (l Line) LineTotal() kernel.Money {
	total, err := l.unitPrice.Mul(l.quantity)
	if err != nil {
		return kernel.ZeroMoney()
	}
	return total
}

// Cart is the aggregate root of a customer's pending selection.
//
// Example:
//
//	c, _ := cart.NewCart(customerID)
//	err := c.AddItem(menuItemID, "Margherita", kernel.MustMoney("5.00"), 2, restaurantID)
//	c.Subtotal() // 10.00
type Cart struct {
	customerID   kernel.UUID
	restaurantID *kernel.UUID
	lines        []Line
	updatedAt    time.Time

	isConstructed bool
}

// NewCart returns an empty cart not yet bound to a restaurant.
func NewCart(customerID kernel.UUID) (*Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	return &Cart{customerID: customerID, isConstructed: true}, nil
}

// RestoreCart rebuilds a stored cart. All lines must belong to restaurantID.
func RestoreCart(customerID kernel.UUID, restaurantID *kernel.UUID, lines []Line, updatedAt time.Time) (*Cart, error) {
	c, err := NewCart(customerID)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 && restaurantID == nil {
		return nil, errs.NewValueIsRequiredError("restaurantId")
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}
	if len(lines) > 0 {
		id := *restaurantID
		c.restaurantID = &id
	}
	c.lines = append([]Line(nil), lines...)
	c.updatedAt = updatedAt.UTC()
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

func (c *Cart) CustomerID() kernel.UUID { return c.customerID }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

// RestaurantID is nil while the cart is empty.
func (c *Cart) RestaurantID() *kernel.UUID {
	if c.restaurantID == nil {
		return nil
	}
	id := *c.restaurantID
	return &id
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// AddItem appends a line or increments the existing one and binds the cart to
// restaurantID. A non-empty cart of another restaurant is rejected unchanged.
func (c *Cart) AddItem(
	menuItemID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantity int,
	restaurantID kernel.UUID,
) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	if !c.IsEmpty() && !c.restaurantID.IsEqual(restaurantID) {
		return fmt.Errorf("%w: cart holds items of %s", ErrRestaurantMismatch, c.restaurantID)
	}

	line, err := NewLine(menuItemID, name, unitPrice, quantity)
	if err != nil {
		return err
	}

	if i := c.indexOf(menuItemID); i >= 0 {
		c.lines[i].quantity += line.quantity
	} else {
		c.lines = append(c.lines, line)
	}
	c.restaurantID = &restaurantID
	c.touch()
	return nil
}

// UpdateQuantity sets the quantity of a line; quantity <= 0 removes it.
func (c *Cart) UpdateQuantity(menuItemID kernel.UUID, quantity int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	i := c.indexOf(menuItemID)
	if i < 0 {
		return errs.NewObjectNotFoundError("menuItemId", menuItemID)
	}
	if quantity <= 0 {
		c.removeAt(i)
		return nil
	}
	c.lines[i].quantity = quantity
	c.touch()
	return nil
}

// RemoveItem drops a line. Removing an absent item is a no-op.
func (c *Cart) RemoveItem(menuItemID kernel.UUID) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if i := c.indexOf(menuItemID); i >= 0 {
		c.removeAt(i)
	}
	return nil
}

// Clear empties the cart and unbinds it from its restaurant.
func (c *Cart) Clear() {
	c.lines = nil
	c.restaurantID = nil
	c.touch()
}

// Subtotal is Σ quantity × unit price over all lines.
func (c *Cart) Subtotal() kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	return subtotal
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.quantity
	}
	return n
}

func (c *Cart) indexOf(menuItemID kernel.UUID) int {
	for i, l := range c.lines {
		if l.menuItemID.IsEqual(menuItemID) {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	if len(c.lines) == 0 {
		c.restaurantID = nil
	}
	c.touch()
}

func (c *Cart) touch() {
	c.updatedAt = time.Now().UTC()
}
