package cartrepo

import (
	"context"
	"errors"

	"foodorder/internal/core/domain/model/cart"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Get returns the customer's cart with its lines in insertion order.
func (r *GormCartRepository) Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&dto, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", customerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Save upserts the cart row and replaces its lines.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	lines := dto.Lines
	dto.Lines = nil

	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"restaurant_id", "updated_at"}),
	}).Create(&dto).Error; err != nil {
		return err
	}

	if err := db.Where("customer_id = ?", dto.CustomerID).Delete(&LineDTO{}).Error; err != nil {
		return err
	}

	if len(lines) == 0 {
		return nil
	}
	return db.Create(&lines).Error
}

// Delete removes the cart and, by cascade, its lines.
func (r *GormCartRepository) Delete(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("customer_id = ?", customerID.Bytes()).Delete(&CartDTO{}).Error
}
