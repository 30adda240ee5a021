// Package courierrepo provides data transfer objects and mapping functions for
// delivery partner persistence.
package courierrepo

import (
	"foodorder/internal/core/domain/model/courier"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the couriers row. The last reported position is stored in
// the embedded location columns.
type CourierDTO struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name          string      `gorm:"type:varchar(255);not null"`
	Location      LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Available     bool        `gorm:"not null;default:true"`
	ActiveOrderID *uuid.UUID  `gorm:"type:uuid"`
	Version       int         `gorm:"not null;default:0"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO holds WGS84 coordinates in degrees.
type LocationDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lon float64 `gorm:"type:double precision;not null"`
}

func fromDomain(c *courier.Courier) CourierDTO {
	var activeOrderID *uuid.UUID
	if id := c.ActiveOrderID(); id != nil {
		raw := id.Bytes()
		activeOrderID = &raw
	}

	return CourierDTO{
		ID:   c.ID().Bytes(),
		Name: c.Name(),
		Location: LocationDTO{
			Lat: c.Location().Lat(),
			Lon: c.Location().Lon(),
		},
		Available:     c.Available(),
		ActiveOrderID: activeOrderID,
		Version:       c.Version(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewGeo(dto.Location.Lat, dto.Location.Lon)
	if err != nil {
		return nil, err
	}

	var activeOrderID *kernel.UUID
	if dto.ActiveOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.ActiveOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		activeOrderID = &oID
	}

	return courier.RestoreCourier(id, dto.Name, loc, dto.Available, activeOrderID, dto.Version)
}
