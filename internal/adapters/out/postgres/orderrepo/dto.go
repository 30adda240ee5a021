// Package orderrepo maps order aggregates, their items and their event trail onto
// the orders, order_items and order_events tables.
package orderrepo

import (
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Items and Events are loaded with Preload and always
// ordered by position and seq respectively.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CourierID           *uuid.UUID      `gorm:"type:uuid;index"`
	Status              string          `gorm:"type:varchar(32);not null"`
	DeliveryFee         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Discount            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentStatus       string          `gorm:"type:varchar(32);not null"`
	DeliveryAddress     string          `gorm:"type:text;not null"`
	SpecialInstructions string          `gorm:"type:text;not null"`
	CreatedAt           time.Time       `gorm:"not null"`
	Version             int             `gorm:"not null"`
	Items               []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Events              []EventDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one priced line of an order, frozen at checkout.
type ItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// EventDTO is one append-only entry of the order trail.
type EventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_events_seq"`
	Seq       int       `gorm:"not null;uniqueIndex:idx_order_events_seq"`
	Type      string    `gorm:"type:varchar(64);not null"`
	Payload   []byte    `gorm:"type:jsonb"`
	Actor     string    `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (EventDTO) TableName() string {
	return "order_events"
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]ItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, ItemDTO{
			ID:         item.ID().Bytes(),
			OrderID:    o.ID().Bytes(),
			Position:   i,
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Amount(),
		})
	}

	return OrderDTO{
		ID:                  o.ID().Bytes(),
		CustomerID:          o.CustomerID().Bytes(),
		RestaurantID:        o.RestaurantID().Bytes(),
		CourierID:           courierID,
		Status:              o.Status().String(),
		DeliveryFee:         o.DeliveryFee().Amount(),
		Discount:            o.Discount().Amount(),
		PaymentStatus:       string(o.PaymentStatus()),
		DeliveryAddress:     o.DeliveryAddress(),
		SpecialInstructions: o.SpecialInstructions(),
		CreatedAt:           o.CreatedAt(),
		Version:             o.Version(),
		Items:               items,
		Events:              eventsFromDomain(o.Events()),
	}
}

func eventsFromDomain(events []order.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		var payload []byte
		if p := e.Payload(); len(p) > 0 {
			payload = p
		}
		out = append(out, EventDTO{
			ID:        e.ID().Bytes(),
			OrderID:   e.OrderID().Bytes(),
			Seq:       e.Seq(),
			Type:      string(e.Type()),
			Payload:   payload,
			Actor:     e.Actor(),
			CreatedAt: e.CreatedAt(),
		})
	}
	return out
}

// toDomain rebuilds the aggregate with RestoreOrder. dto.Items and dto.Events must
// already be sorted.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	events := make([]order.Event, 0, len(dto.Events))
	for _, eventDTO := range dto.Events {
		eventID, eventErr := kernel.UUIDFromBytes(eventDTO.ID[:])
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, order.RestoreEvent(
			eventID, id, eventDTO.Seq, order.EventType(eventDTO.Type),
			eventDTO.Payload, eventDTO.Actor, eventDTO.CreatedAt.UTC(),
		))
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, courierID, status,
		fee, discount, order.PaymentStatus(dto.PaymentStatus),
		dto.DeliveryAddress, dto.SpecialInstructions, dto.CreatedAt,
		items, events, dto.Version,
	)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Item{}, err
	}
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(id, menuItemID, dto.Name, dto.Quantity, price)
}
