// Package cartrepo stores one cart per customer in the carts and cart_lines tables.
package cartrepo

import (
	"time"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartDTO struct {
	CustomerID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RestaurantID *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime:false"`
	Lines        []LineDTO  `gorm:"foreignKey:CustomerID;references:CustomerID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

type LineDTO struct {
	CustomerID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position   int             `gorm:"not null"`
	Name       string          `gorm:"type:varchar(255);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity   int             `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(c *cart.Cart) CartDTO {
	var restaurantID *uuid.UUID
	if id := c.RestaurantID(); id != nil {
		raw := id.Bytes()
		restaurantID = &raw
	}

	customerID := c.CustomerID().Bytes()
	lines := make([]LineDTO, 0, len(c.Lines()))
	for i, line := range c.Lines() {
		lines = append(lines, LineDTO{
			CustomerID: customerID,
			MenuItemID: line.MenuItemID().Bytes(),
			Position:   i,
			Name:       line.Name(),
			UnitPrice:  line.UnitPrice().Amount(),
			Quantity:   line.Quantity(),
		})
	}

	return CartDTO{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		UpdatedAt:    c.UpdatedAt(),
		Lines:        lines,
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var restaurantID *kernel.UUID
	if dto.RestaurantID != nil {
		rID, restaurantErr := kernel.UUIDFromBytes((*dto.RestaurantID)[:])
		if restaurantErr != nil {
			return nil, restaurantErr
		}
		restaurantID = &rID
	}

	lines := make([]cart.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		menuItemID, lineErr := kernel.UUIDFromBytes(lineDTO.MenuItemID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		price, lineErr := kernel.NewMoney(lineDTO.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		line, lineErr := cart.NewLine(menuItemID, lineDTO.Name, price, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(customerID, restaurantID, lines, dto.UpdatedAt.UTC())
}
