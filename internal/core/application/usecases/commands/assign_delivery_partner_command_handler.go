package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/keylock"
)

// AssignDeliveryPartnerCommandHandler selects a free partner through the
// DeliveryAssigner and stores the order and the partner in one transaction.
//
// Returns services.ErrNoPartnerAvailable when nobody can take the order and
// order.ErrAlreadyAssigned when a partner is attached already.
type AssignDeliveryPartnerCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.Catalog
	assigner   services.DeliveryAssigner
	locker     *keylock.Locker
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewAssignDeliveryPartnerCommandHandler(
	uowFactory UoWFactory,
	catalog ports.Catalog,
	assigner services.DeliveryAssigner,
	locker *keylock.Locker,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignDeliveryPartnerCommandHandler {
	return AssignDeliveryPartnerCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		assigner:   assigner,
		locker:     locker,
		publisher:  publisher,
		logger:     logger.With("component", "assign_delivery_partner"),
	}
}

func (h AssignDeliveryPartnerCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryPartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, changed, err := mutateOrder[UoW](ctx, h.locker, h.uowFactory.Create, cmd.OrderID(),
		func(ctx context.Context, uow UoW, o *order.Order) (bool, error) {
			pickup, err := h.pickupPoint(ctx, o)
			if err != nil {
				return false, err
			}

			courierRepo := uow.CourierRepository()
			couriers, err := courierRepo.GetAllFree(ctx)
			if err != nil {
				return false, err
			}

			chosen, err := h.assigner.Assign(o, pickup, couriers, cmd.Actor(), time.Now())
			if err != nil {
				return false, err
			}

			if err = courierRepo.Update(ctx, chosen); err != nil {
				return false, err
			}
			return true, nil
		})
	if err != nil {
		return err
	}

	if changed {
		h.logger.Info("delivery partner assigned", "order_id", o.ID().String(), "courier_id", o.Courier().String())
		h.publisher.Publish(ctx, ports.OrderUpdateRecipients(o), ports.OrderUpdateOf(o))
	}
	return nil
}

// pickupPoint is the restaurant's position, or the zero Geo when the catalog does
// not know it.
func (h AssignDeliveryPartnerCommandHandler) pickupPoint(ctx context.Context, o *order.Order) (kernel.Geo, error) {
	restaurant, err := h.catalog.GetRestaurant(ctx, o.RestaurantID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.Geo{}, nil
	}
	if err != nil {
		return kernel.Geo{}, err
	}
	return restaurant.Location, nil
}
