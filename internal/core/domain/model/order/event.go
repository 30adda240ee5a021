package order

import (
	"encoding/json"
	"strings"
	"time"

	"foodorder/internal/core/domain/model/kernel"
)

// EventType tags an Event. Status changes use "status_<status>".
type EventType string

const (
	EventOrderCreated     EventType = "order_created"
	EventDeliveryAssigned EventType = "delivery_assigned"
	EventLocationUpdate   EventType = "location_update"

	statusEventPrefix  = "status_"
	paymentEventPrefix = "payment_"
)

// IsStatus reports whether the event records a status change.
func (t EventType) IsStatus() bool {
	return strings.HasPrefix(string(t), statusEventPrefix)
}

// Status returns the status a status_* event moved the order into.
func (t EventType) Status() (Status, bool) {
	if !t.IsStatus() {
		return Unknown, false
	}
	s, err := ParseStatus(strings.TrimPrefix(string(t), statusEventPrefix))
	if err != nil {
		return Unknown, false
	}
	return s, true
}

func paymentEventType(p PaymentStatus) EventType {
	return EventType(paymentEventPrefix + string(p))
}

// LocationPayload is the body of a location_update event.
type LocationPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AssignmentPayload is the body of a delivery_assigned event.
type AssignmentPayload struct {
	CourierID kernel.UUID `json:"courierId"`
}

// Event is one immutable entry of an order's trail. Seq starts at 1 and grows by
// one per event of the same order.
type Event struct {
	id        kernel.UUID
	orderID   kernel.UUID
	seq       int
	eventType EventType
	payload   json.RawMessage
	actor     string
	createdAt time.Time
}

// RestoreEvent rebuilds a persisted event.
func RestoreEvent(
	id, orderID kernel.UUID,
	seq int,
	eventType EventType,
	payload []byte,
	actor string,
	createdAt time.Time,
) Event {
	return Event{
		id:        id,
		orderID:   orderID,
		seq:       seq,
		eventType: eventType,
		payload:   append(json.RawMessage(nil), payload...),
		actor:     actor,
		createdAt: createdAt,
	}
}

func (e Event) ID() kernel.UUID { return e.id }
func (e Event) OrderID() kernel.UUID { return e.orderID }
func (e Event) Seq() int { return e.seq }
func (e Event) Type() EventType { return e.eventType }
func (e Event) Actor() string { return e.actor }
func (e Event) CreatedAt() time.Time { return e.createdAt }
func (e Event) Payload() json.RawMessage {
	return append(json.RawMessage(nil), e.payload...)
}

// Location decodes the payload of a location_update event.
func (e Event) Location() (LocationPayload, bool) {
	var p LocationPayload
	if e.eventType != EventLocationUpdate || len(e.payload) == 0 {
		return p, false
	}
	if err := json.Unmarshal(e.payload, &p); err != nil {
		return p, false
	}
	return p, true
}
