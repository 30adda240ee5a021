package courier

import (
	"errors"
	"fmt"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierIsBusy is returned when a courier already carrying an order is offered another.
	ErrCourierIsBusy = errors.New("courier already carries an order")
	// ErrCourierIsOffline is returned when an unavailable courier is offered an order.
	ErrCourierIsOffline = errors.New("courier is not available")
	// ErrOrderIsNotCarried is returned when completing an order the courier does not carry.
	ErrOrderIsNotCarried = errors.New("order is not carried by courier")
)

// Courier represents a delivery partner.
// It is an aggregate root that tracks where the partner is and whether they can take
// the next order.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name and a valid position
//   - A courier carries at most one order; TakeOrder fails while one is active
//   - Availability is controlled by the partner; an unavailable courier is never offered orders
//
// Example usage:
//
//	position, _ := kernel.NewGeo(52.52, 13.405)
//	c, err := courier.NewCourier(kernel.NewUUID(), "Alice", position)
//	if err != nil {
//	    // Handle construction error
//	}
//	err = c.TakeOrder(orderID)
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// location is the last reported position
	location kernel.Geo
	// available is toggled by the partner when going on or off shift
	available bool
	// activeOrderID is the order being carried, nil when idle
	activeOrderID *kernel.UUID
	// version increases with every change; repositories only overwrite the row
	// still holding persistedVersion
	version          int
	persistedVersion int
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier registers a new, available courier at the given position.
//
// Example:
//
//	position, _ := kernel.NewGeo(52.52, 13.405)
//	c, err := courier.NewCourier(kernel.NewUUID(), "Alice", position)
//	if err != nil {
//	    log.Fatal("Failed to create courier:", err)
//	}
func NewCourier(id kernel.UUID, name string, location kernel.Geo) (*Courier, error) {
	courier := &Courier{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setLocation(location),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage, including
// its availability, the order it currently carries and the stored version.
func RestoreCourier(
	id kernel.UUID,
	name string,
	location kernel.Geo,
	available bool,
	activeOrderID *kernel.UUID,
	version int,
) (*Courier, error) {
	courier := &Courier{
		available:        available,
		version:          version,
		persistedVersion: version,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setLocation(location),
		courier.setActiveOrderID(activeOrderID),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks that the Courier was built by NewCourier or RestoreCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Name() string {
	return c.name
}

// Location returns the last reported position of the courier.
func (c *Courier) Location() kernel.Geo {
	return c.location
}

// Available reports the partner-controlled shift flag, regardless of the active order.
func (c *Courier) Available() bool {
	return c.available
}

// ActiveOrderID returns the order being carried, or nil.
func (c *Courier) ActiveOrderID() *kernel.UUID {
	if c.activeOrderID == nil {
		return nil
	}
	id := *c.activeOrderID
	return &id
}

// Version counts the changes made to the courier since registration.
func (c *Courier) Version() int { return c.version }

// PersistedVersion is the version the courier had when it was loaded or last saved.
func (c *Courier) PersistedVersion() int { return c.persistedVersion }

// MarkPersisted is called by repositories once the courier is written within the
// current transaction.
func (c *Courier) MarkPersisted() {
	c.persistedVersion = c.version
}

// CanTakeOrder reports whether the courier may be assigned a new order.
func (c *Courier) CanTakeOrder() bool {
	return c.available && c.activeOrderID == nil
}

// SetAvailability puts the courier on or off shift. Going off shift does not drop
// the order being carried.
func (c *Courier) SetAvailability(available bool) {
	if c.available == available {
		return
	}
	c.available = available
	c.version++
}

// TakeOrder makes orderID the courier's active order.
//
// Business rules:
//   - the courier must be available
//   - the courier must not carry another order
//   - taking the order already carried is a no-op
func (c *Courier) TakeOrder(orderID kernel.UUID) error {
	if err := errors.Join(c.Validate(), orderID.Validate()); err != nil {
		return err
	}
	if c.activeOrderID != nil {
		if c.activeOrderID.IsEqual(orderID) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrCourierIsBusy, c.activeOrderID)
	}
	if !c.available {
		return ErrCourierIsOffline
	}

	c.activeOrderID = &orderID
	c.version++
	return nil
}

// CompleteOrder releases the courier from orderID once it is delivered.
func (c *Courier) CompleteOrder(orderID kernel.UUID) error {
	if err := errors.Join(c.Validate(), orderID.Validate()); err != nil {
		return err
	}
	if c.activeOrderID == nil || !c.activeOrderID.IsEqual(orderID) {
		return ErrOrderIsNotCarried
	}

	c.activeOrderID = nil
	c.version++
	return nil
}

// MoveTo records a new reported position.
func (c *Courier) MoveTo(location kernel.Geo) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.setLocation(location); err != nil {
		return err
	}
	c.version++
	return nil
}

// DistanceKmTo returns the great-circle distance from the courier to target.
func (c *Courier) DistanceKmTo(target kernel.Geo) (float64, error) {
	return c.location.DistanceKm(target)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setLocation(location kernel.Geo) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

func (c *Courier) setActiveOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		c.activeOrderID = nil
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	id := *orderID
	c.activeOrderID = &id
	return nil
}
