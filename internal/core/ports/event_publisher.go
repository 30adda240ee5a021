package ports

import (
	"context"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// Recipient addresses live messages. Users are addressed as "user:<id>", the staff
// of a restaurant as "restaurant:<id>".
type Recipient string

func UserRecipient(id kernel.UUID) Recipient {
	return Recipient("user:" + id.String())
}

func RestaurantRecipient(id kernel.UUID) Recipient {
	return Recipient("restaurant:" + id.String())
}

// RecipientsOf returns every identity a connection of actor subscribes to.
func RecipientsOf(actor kernel.Actor) []Recipient {
	out := []Recipient{UserRecipient(actor.ID())}
	if actor.Is(kernel.RoleRestaurantStaff) && actor.RestaurantID() != nil {
		out = append(out, RestaurantRecipient(*actor.RestaurantID()))
	}
	return out
}

// OrderUpdateRecipients is the customer, the restaurant's staff and, once assigned,
// the delivery partner.
func OrderUpdateRecipients(o *order.Order) []Recipient {
	out := []Recipient{UserRecipient(o.CustomerID()), RestaurantRecipient(o.RestaurantID())}
	if c := o.Courier(); c != nil {
		out = append(out, UserRecipient(*c))
	}
	return out
}

// LocationUpdateRecipients is the order's customer.
func LocationUpdateRecipients(o *order.Order) []Recipient {
	return []Recipient{UserRecipient(o.CustomerID())}
}

// MessageType tags a live message.
type MessageType string

const (
	MessageOrderUpdate    MessageType = "order_update"
	MessageLocationUpdate MessageType = "location_update"
)

// LiveMessage is the body pushed to subscribers.
//
// Seq is the trail sequence number of the order event the message reports. Pushes
// for one order are not guaranteed to arrive in commit order, so a subscriber keeps
// the highest Seq per order and message type and drops anything lower. Zero means
// the sequence is unknown.
type LiveMessage struct {
	Type    MessageType `json:"type"`
	OrderID kernel.UUID `json:"orderId"`
	Seq     int         `json:"seq,omitempty"`
	Status  string      `json:"status,omitempty"`
	Lat     *float64    `json:"lat,omitempty"`
	Lon     *float64    `json:"lon,omitempty"`
}

func NewOrderUpdate(orderID kernel.UUID, status order.Status) LiveMessage {
	return LiveMessage{Type: MessageOrderUpdate, OrderID: orderID, Status: status.String()}
}

func NewLocationUpdate(orderID kernel.UUID, point kernel.Geo) LiveMessage {
	lat, lon := point.Lat(), point.Lon()
	return LiveMessage{Type: MessageLocationUpdate, OrderID: orderID, Lat: &lat, Lon: &lon}
}

// OrderUpdateOf reports the current status of o, stamped with its newest event.
func OrderUpdateOf(o *order.Order) LiveMessage {
	msg := NewOrderUpdate(o.ID(), o.Status())
	msg.Seq = o.LastSeq()
	return msg
}

// LocationUpdateOf reports point, recorded as the newest event of o.
func LocationUpdateOf(o *order.Order, point kernel.Geo) LiveMessage {
	msg := NewLocationUpdate(o.ID(), point)
	msg.Seq = o.LastSeq()
	return msg
}

// EventPublisher fans a message out to the live connections of recipients.
// Delivery is best effort: a recipient without an open connection simply misses the
// message, so Publish reports nothing back to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, recipients []Recipient, msg LiveMessage)
}

// LiveEnvelope carries a LiveMessage together with its recipients between server
// instances.
type LiveEnvelope struct {
	Recipients []Recipient `json:"recipients"`
	Message    LiveMessage `json:"message"`
}
