package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidTransition is the sentinel behind every InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnauthorized is returned when the actor's role does not allow the operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyAssigned is returned when a delivery partner is attached twice.
	ErrAlreadyAssigned = errors.New("delivery partner already assigned")

	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// InvalidTransitionError identifies the current and the requested status.
type InvalidTransitionError struct {
	From   Status
	To     Status
	Reason string
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func unauthorized(actor kernel.Actor, action string) error {
	return fmt.Errorf("%w: %s may not %s", ErrUnauthorized, actor, action)
}

// Order is the aggregate root of a customer's purchase from one restaurant.
//
// Order follows these invariants:
//   - total == subtotal + deliveryFee - discount and is never negative
//   - subtotal is the sum of the item line totals
//   - status is the projection of the latest status_* event in the trail
//   - events are only ever appended
//
// Fields are private; every mutation goes through a method that appends the matching
// Event, so persisting the order and its pending events is one atomic unit.
type Order struct {
	id                  kernel.UUID
	customerID          kernel.UUID
	restaurantID        kernel.UUID
	courierID           *kernel.UUID
	status              Status
	subtotal            kernel.Money
	deliveryFee         kernel.Money
	discount            kernel.Money
	total               kernel.Money
	paymentStatus       PaymentStatus
	deliveryAddress     string
	specialInstructions string
	createdAt           time.Time
	items               []Item
	events              []Event

	// version increases with every mutation; repositories use it for guarded updates.
	version int
	// persistedVersion is the version the order had when it was loaded.
	persistedVersion int
	// persistedEvents is how many events of the trail are already stored.
	persistedEvents int

	isConstructed bool
}

// NewOrder places a new order in Pending status and records order_created.
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), menuItemID, "Margherita", 2, kernel.MustMoney("10.00"))
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, []order.Item{item},
//	    kernel.MustMoney("3.00"), kernel.ZeroMoney(), "1 Main St", "", time.Now())
func NewOrder(
	id, customerID, restaurantID kernel.UUID,
	items []Item,
	deliveryFee, discount kernel.Money,
	deliveryAddress, specialInstructions string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:              Pending,
		paymentStatus:       PaymentPending,
		deliveryFee:         deliveryFee,
		discount:            discount,
		specialInstructions: strings.TrimSpace(specialInstructions),
		createdAt:           now.UTC(),
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setDeliveryAddress(deliveryAddress),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.computeTotals(); err != nil {
		return nil, err
	}

	o.appendEvent(EventOrderCreated, nil, kernel.Actor{}, o.createdAt)
	return o, nil
}

// RestoreOrder rebuilds an order from storage. The trail must be ordered by Seq and
// its latest status event must match status.
func RestoreOrder(
	id, customerID, restaurantID kernel.UUID,
	courierID *kernel.UUID,
	status Status,
	deliveryFee, discount kernel.Money,
	paymentStatus PaymentStatus,
	deliveryAddress, specialInstructions string,
	createdAt time.Time,
	items []Item,
	events []Event,
	version int,
) (*Order, error) {
	o := &Order{
		courierID:           courierID,
		status:              status,
		deliveryFee:         deliveryFee,
		discount:            discount,
		paymentStatus:       paymentStatus,
		deliveryAddress:     deliveryAddress,
		specialInstructions: specialInstructions,
		createdAt:           createdAt.UTC(),
		events:              append([]Event(nil), events...),
		version:             version,
		persistedVersion:    version,
		persistedEvents:     len(events),
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		status.Validate(),
		paymentStatus.Validate(),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.computeTotals(); err != nil {
		return nil, err
	}

	if trail := o.StatusFromTrail(); len(events) > 0 && trail != status {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("status %s does not match trail %s", status, trail))
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }
func (o *Order) Status() Status { return o.status }
func (o *Order) Subtotal() kernel.Money { return o.subtotal }
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }
func (o *Order) Discount() kernel.Money { return o.discount }
func (o *Order) Total() kernel.Money { return o.total }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) SpecialInstructions() string { return o.specialInstructions }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) Version() int { return o.version }
func (o *Order) PersistedVersion() int { return o.persistedVersion }

// Courier returns the assigned delivery partner, nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Events returns a copy of the full trail ordered by Seq.
func (o *Order) Events() []Event {
	return append([]Event(nil), o.events...)
}

// LastSeq is the sequence number of the newest event in the trail.
func (o *Order) LastSeq() int {
	if len(o.events) == 0 {
		return 0
	}
	return o.events[len(o.events)-1].seq
}

// PendingEvents returns the events appended since the order was loaded or last saved.
func (o *Order) PendingEvents() []Event {
	return append([]Event(nil), o.events[o.persistedEvents:]...)
}

// MarkPersisted is called by repositories once the order and its pending events are
// written within the current transaction.
func (o *Order) MarkPersisted() {
	o.persistedEvents = len(o.events)
	o.persistedVersion = o.version
}

// StatusFromTrail replays the trail and returns the status of the latest status
// event, or Pending when none was recorded yet.
func (o *Order) StatusFromTrail() Status {
	for i := len(o.events) - 1; i >= 0; i-- {
		if s, ok := o.events[i].Type().Status(); ok {
			return s
		}
	}
	return Pending
}

// ApplyTransition moves the order to the requested status on behalf of actor.
//
// Business rules:
//   - to must be a direct successor of the current status (cancellation only from
//     pending, confirmed or preparing)
//   - restaurant steps need staff of the owning restaurant, delivery steps the assigned
//     partner or the system, cancellation the owning staff or an admin
//   - requesting the current status again is a no-op that returns changed == false
//
// On success the status changes and a status_<to> event is appended together.
func (o *Order) ApplyTransition(to Status, actor kernel.Actor, now time.Time) (changed bool, err error) {
	if err = o.Validate(); err != nil {
		return false, err
	}
	if err = to.Validate(); err != nil {
		return false, err
	}
	if to == Pending {
		return false, NewInvalidTransitionError(o.status, to)
	}

	if err = o.authorizeTransition(to, actor); err != nil {
		return false, err
	}

	if o.status == to {
		return false, nil
	}

	if !o.status.CanTransition(to) {
		return false, NewInvalidTransitionError(o.status, to)
	}

	if to == OutForDelivery && o.courierID == nil {
		return false, &InvalidTransitionError{From: o.status, To: to, Reason: "no delivery partner assigned"}
	}

	o.status = to
	o.appendEvent(to.EventType(), nil, actor, now)
	return true, nil
}

// CanBeAssigned reports whether a delivery partner may be attached now.
func (o *Order) CanBeAssigned() bool {
	return o.status == ReadyForPickup && o.courierID == nil
}

// AssignCourier attaches a delivery partner and records delivery_assigned. The
// status is left untouched.
func (o *Order) AssignCourier(courierID kernel.UUID, actor kernel.Actor, now time.Time) error {
	if err := errors.Join(o.Validate(), courierID.Validate()); err != nil {
		return err
	}
	if !actor.Is(kernel.RoleSystem) && !actor.Is(kernel.RoleAdmin) {
		return unauthorized(actor, "assign delivery partners")
	}
	if o.courierID != nil {
		return ErrAlreadyAssigned
	}
	if o.status != ReadyForPickup {
		return &InvalidTransitionError{From: o.status, To: o.status, Reason: "assignment requires ready_for_pickup"}
	}

	payload, err := json.Marshal(AssignmentPayload{CourierID: courierID})
	if err != nil {
		return err
	}

	o.courierID = &courierID
	o.appendEvent(EventDeliveryAssigned, payload, actor, now)
	return nil
}

// RecordLocation appends a location_update reported by the assigned partner while
// the order is being picked up or delivered.
func (o *Order) RecordLocation(point kernel.Geo, actor kernel.Actor, now time.Time) error {
	if err := errors.Join(o.Validate(), point.Validate()); err != nil {
		return err
	}
	if !o.isAssignedCourier(actor) {
		return unauthorized(actor, "report location for this order")
	}
	if o.status != ReadyForPickup && o.status != OutForDelivery {
		return &InvalidTransitionError{From: o.status, To: o.status, Reason: "order is not in delivery"}
	}

	payload, err := json.Marshal(LocationPayload{Lat: point.Lat(), Lon: point.Lon()})
	if err != nil {
		return err
	}

	o.appendEvent(EventLocationUpdate, payload, actor, now)
	return nil
}

// MarkPayment records the outcome reported by the payment collaborator.
func (o *Order) MarkPayment(status PaymentStatus, actor kernel.Actor, now time.Time) (changed bool, err error) {
	if err = errors.Join(o.Validate(), status.Validate()); err != nil {
		return false, err
	}
	if !actor.Is(kernel.RoleAdmin) && !actor.Is(kernel.RoleSystem) {
		return false, unauthorized(actor, "change payment status")
	}
	if o.paymentStatus == status {
		return false, nil
	}

	o.paymentStatus = status
	o.appendEvent(paymentEventType(status), nil, actor, now)
	return true, nil
}

// CanBeReadBy reports whether actor participates in the order.
func (o *Order) CanBeReadBy(actor kernel.Actor) bool {
	switch actor.Role() {
	case kernel.RoleAdmin, kernel.RoleSystem:
		return true
	case kernel.RoleCustomer:
		return actor.ID().IsEqual(o.customerID)
	case kernel.RoleRestaurantStaff:
		return actor.WorksFor(o.restaurantID)
	case kernel.RoleDelivery:
		return o.isAssignedCourier(actor)
	default:
		return false
	}
}

func (o *Order) authorizeTransition(to Status, actor kernel.Actor) error {
	switch to {
	case Confirmed, Preparing, ReadyForPickup:
		if actor.WorksFor(o.restaurantID) {
			return nil
		}
	case OutForDelivery, Delivered:
		if actor.Is(kernel.RoleSystem) || o.isAssignedCourier(actor) {
			return nil
		}
	case Cancelled:
		if actor.WorksFor(o.restaurantID) || actor.Is(kernel.RoleAdmin) {
			return nil
		}
	case Unknown, Pending:
	}
	return unauthorized(actor, "move order to "+to.String())
}

func (o *Order) isAssignedCourier(actor kernel.Actor) bool {
	return actor.Is(kernel.RoleDelivery) && o.courierID != nil && o.courierID.IsEqual(actor.ID())
}

func (o *Order) appendEvent(eventType EventType, payload []byte, actor kernel.Actor, now time.Time) {
	by := actor.String()
	if actor.Role() == "" {
		by = fmt.Sprintf("%s:%s", kernel.RoleCustomer, o.customerID)
	}

	o.events = append(o.events, Event{
		id:        kernel.NewUUID(),
		orderID:   o.id,
		seq:       len(o.events) + 1,
		eventType: eventType,
		payload:   payload,
		actor:     by,
		createdAt: now.UTC(),
	})
	o.version++
}

func (o *Order) computeTotals() error {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	total, err := subtotal.Add(o.deliveryFee).Sub(o.discount)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("discount %s exceeds subtotal plus delivery fee", o.discount))
	}

	o.subtotal = subtotal
	o.total = total
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}
