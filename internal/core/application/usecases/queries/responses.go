package queries

import (
	"encoding/json"
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
)

// OrderSnapshot is the full view of one order as polled by tracking clients.
type OrderSnapshot struct {
	ID                  kernel.UUID        `json:"id"`
	CustomerID          kernel.UUID        `json:"customerId"`
	RestaurantID        kernel.UUID        `json:"restaurantId"`
	CourierID           *kernel.UUID       `json:"courierId,omitempty"`
	Status              string             `json:"status"`
	PaymentStatus       string             `json:"paymentStatus"`
	Subtotal            kernel.Money       `json:"subtotal"`
	DeliveryFee         kernel.Money       `json:"deliveryFee"`
	Discount            kernel.Money       `json:"discount"`
	Total               kernel.Money       `json:"total"`
	DeliveryAddress     string             `json:"deliveryAddress"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	Items               []OrderItemView    `json:"items"`
	Events              []OrderEventView   `json:"events"`
	Restaurant          *RestaurantSummary `json:"restaurant,omitempty"`
}

type OrderItemView struct {
	ID         kernel.UUID  `json:"id"`
	MenuItemID kernel.UUID  `json:"menuItemId"`
	Name       string       `json:"name"`
	Quantity   int          `json:"quantity"`
	UnitPrice  kernel.Money `json:"unitPrice"`
	LineTotal  kernel.Money `json:"lineTotal"`
}

// OrderEventView is one trail entry; Payload is the raw JSON the event carries.
type OrderEventView struct {
	ID        kernel.UUID     `json:"id"`
	Seq       int             `json:"seq"`
	Type      string          `json:"type"`
	Actor     string          `json:"actor"`
	CreatedAt time.Time       `json:"createdAt"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type RestaurantSummary struct {
	ID      kernel.UUID `json:"id"`
	Name    string      `json:"name"`
	Address string      `json:"address"`
}

// OrderSummary is a row of the "my orders" list.
type OrderSummary struct {
	ID           kernel.UUID  `json:"id"`
	RestaurantID kernel.UUID  `json:"restaurantId"`
	CourierID    *kernel.UUID `json:"courierId,omitempty"`
	Status       string       `json:"status"`
	Total        kernel.Money `json:"total"`
	CreatedAt    time.Time    `json:"createdAt"`
}

type CartView struct {
	CustomerID   kernel.UUID    `json:"customerId"`
	RestaurantID *kernel.UUID   `json:"restaurantId,omitempty"`
	Lines        []CartLineView `json:"lines"`
	Subtotal     kernel.Money   `json:"subtotal"`
	ItemCount    int            `json:"itemCount"`
}

type CartLineView struct {
	MenuItemID kernel.UUID  `json:"menuItemId"`
	Name       string       `json:"name"`
	UnitPrice  kernel.Money `json:"unitPrice"`
	Quantity   int          `json:"quantity"`
	LineTotal  kernel.Money `json:"lineTotal"`
}

// CourierView is a delivery partner as listed to admins.
type CourierView struct {
	ID            kernel.UUID  `json:"id"`
	Name          string       `json:"name"`
	Lat           float64      `json:"lat"`
	Lon           float64      `json:"lon"`
	Available     bool         `json:"available"`
	ActiveOrderID *kernel.UUID `json:"activeOrderId,omitempty"`
}

func newOrderSnapshot(o *order.Order) OrderSnapshot {
	snapshot := OrderSnapshot{
		ID:                  o.ID(),
		CustomerID:          o.CustomerID(),
		RestaurantID:        o.RestaurantID(),
		CourierID:           o.Courier(),
		Status:              o.Status().String(),
		PaymentStatus:       string(o.PaymentStatus()),
		Subtotal:            o.Subtotal(),
		DeliveryFee:         o.DeliveryFee(),
		Discount:            o.Discount(),
		Total:               o.Total(),
		DeliveryAddress:     o.DeliveryAddress(),
		SpecialInstructions: o.SpecialInstructions(),
		CreatedAt:           o.CreatedAt(),
		Items:               make([]OrderItemView, 0, len(o.Items())),
		Events:              make([]OrderEventView, 0, len(o.Events())),
	}

	for _, item := range o.Items() {
		snapshot.Items = append(snapshot.Items, OrderItemView{
			ID:         item.ID(),
			MenuItemID: item.MenuItemID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			LineTotal:  item.LineTotal(),
		})
	}

	for _, e := range o.Events() {
		snapshot.Events = append(snapshot.Events, OrderEventView{
			ID:        e.ID(),
			Seq:       e.Seq(),
			Type:      string(e.Type()),
			Actor:     e.Actor(),
			CreatedAt: e.CreatedAt(),
			Payload:   e.Payload(),
		})
	}

	return snapshot
}

func newOrderSummary(o *order.Order) OrderSummary {
	return OrderSummary{
		ID:           o.ID(),
		RestaurantID: o.RestaurantID(),
		CourierID:    o.Courier(),
		Status:       o.Status().String(),
		Total:        o.Total(),
		CreatedAt:    o.CreatedAt(),
	}
}

// NewCartView shapes a cart for the request surface.
func NewCartView(c *cart.Cart) CartView {
	view := CartView{
		CustomerID:   c.CustomerID(),
		RestaurantID: c.RestaurantID(),
		Lines:        make([]CartLineView, 0, len(c.Lines())),
		Subtotal:     c.Subtotal(),
		ItemCount:    c.ItemCount(),
	}
	for _, line := range c.Lines() {
		view.Lines = append(view.Lines, CartLineView{
			MenuItemID: line.MenuItemID(),
			Name:       line.Name(),
			UnitPrice:  line.UnitPrice(),
			Quantity:   line.Quantity(),
			LineTotal:  line.LineTotal(),
		})
	}
	return view
}
