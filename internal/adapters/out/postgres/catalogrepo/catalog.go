// Package catalogrepo reads restaurants and menu items from postgres. Prices are
// copied out on every lookup.
package catalogrepo

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RestaurantDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Address     string          `gorm:"type:text;not null"`
	LocationLat float64         `gorm:"type:double precision;not null"`
	LocationLon float64         `gorm:"type:double precision;not null"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MenuItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Available    bool            `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormCatalog implements ports.Catalog. It always reads through the connection,
// never through a unit of work.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) GetMenuItem(ctx context.Context, id kernel.UUID) (ports.MenuItem, error) {
	if err := id.Validate(); err != nil {
		return ports.MenuItem{}, err
	}

	var dto MenuItemDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MenuItem{}, errs.NewObjectNotFoundError("menuItemID", id)
		}
		return ports.MenuItem{}, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return ports.MenuItem{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.MenuItem{}, err
	}

	return ports.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         dto.Name,
		Price:        price,
		Available:    dto.Available,
	}, nil
}

func (c *GormCatalog) GetRestaurant(ctx context.Context, id kernel.UUID) (ports.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return ports.Restaurant{}, err
	}

	var dto RestaurantDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Restaurant{}, errs.NewObjectNotFoundError("restaurantID", id)
		}
		return ports.Restaurant{}, err
	}

	location, err := kernel.NewGeo(dto.LocationLat, dto.LocationLon)
	if err != nil {
		return ports.Restaurant{}, err
	}
	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return ports.Restaurant{}, err
	}

	return ports.Restaurant{
		ID:          id,
		Name:        dto.Name,
		Address:     dto.Address,
		Location:    location,
		DeliveryFee: fee,
	}, nil
}

// PutRestaurant inserts or replaces a restaurant. Used for seeding.
func (c *GormCatalog) PutRestaurant(ctx context.Context, r ports.Restaurant) error {
	dto := RestaurantDTO{
		ID:          r.ID.Bytes(),
		Name:        r.Name,
		Address:     r.Address,
		LocationLat: r.Location.Lat(),
		LocationLon: r.Location.Lon(),
		DeliveryFee: r.DeliveryFee.Amount(),
	}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}

// PutMenuItem inserts or replaces a menu item. The restaurant must exist.
func (c *GormCatalog) PutMenuItem(ctx context.Context, item ports.MenuItem) error {
	dto := MenuItemDTO{
		ID:           item.ID.Bytes(),
		RestaurantID: item.RestaurantID.Bytes(),
		Name:         item.Name,
		Price:        item.Price.Amount(),
		Available:    item.Available,
	}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}
