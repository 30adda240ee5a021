package cmd

import (
	"fmt"
	"log/slog"

	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/services"
	"foodorder/internal/core/ports"
	"foodorder/internal/jobs"
	"foodorder/internal/pkg/keylock"
)

// CompositionRoot builds the use case handlers on top of one storage backend. All
// handlers share the same order locks, so a status change and an assignment for
// one order never interleave.
type CompositionRoot struct {
	cfg       Config
	logger    *slog.Logger
	uows      ports.UnitOfWorkFactory
	catalog   ports.Catalog
	publisher ports.EventPublisher
	locker    *keylock.Locker
	policy    services.SelectionPolicy
}

func NewCompositionRoot(
	cfg Config,
	logger *slog.Logger,
	uows ports.UnitOfWorkFactory,
	catalog ports.Catalog,
	publisher ports.EventPublisher,
) (*CompositionRoot, error) {
	policy, err := services.NewSelectionPolicy(cfg.AssignmentPolicy)
	if err != nil {
		return nil, fmt.Errorf("ASSIGNMENT_POLICY: %w", err)
	}

	return &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		uows:      uows,
		catalog:   catalog,
		publisher: publisher,
		locker:    keylock.New(),
		policy:    policy,
	}, nil
}

func (c *CompositionRoot) CreateAssignDeliveryPartnerCommandHandler() commands.AssignDeliveryPartnerCommandHandler {
	return commands.NewAssignDeliveryPartnerCommandHandler(c.uowFactory(), c.catalog,
		services.NewDeliveryAssigner(c.policy), c.locker, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.uowFactory(), c.locker, c.publisher,
		c.CreateAssignDeliveryPartnerCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateCreateOrderFromCartCommandHandler() commands.CreateOrderFromCartCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uows.Create()
	})
	return commands.NewCreateOrderFromCartCommandHandler(f, c.catalog, c.publisher)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(c.uowFactory(), c.locker, c.publisher)
}

func (c *CompositionRoot) CreateMarkPaymentCommandHandler() commands.MarkPaymentCommandHandler {
	return commands.NewMarkPaymentCommandHandler(c.orderUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateAddToCartCommandHandler() commands.AddToCartCommandHandler {
	return commands.NewAddToCartCommandHandler(c.cartUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateUpdateCartItemCommandHandler() commands.UpdateCartItemCommandHandler {
	return commands.NewUpdateCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	return commands.NewSetCourierAvailabilityCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateAssignPendingOrdersCommandHandler() commands.AssignPendingOrdersCommandHandler {
	return commands.NewAssignPendingOrdersCommandHandler(c.orderUoWFactory(), c.CreateAssignDeliveryPartnerCommandHandler())
}

func (c *CompositionRoot) CreateGetOrderSnapshotQueryHandler() queries.GetOrderSnapshotQueryHandler {
	return queries.NewGetOrderSnapshotQueryHandler(c.orderReaderFactory(), c.catalog)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderReaderFactory())
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	var f queries.CartReaderFactory = FuncCartReaderFactory(func() queries.CartReader {
		return c.uows.Create()
	})
	return queries.NewGetCartQueryHandler(f)
}

func (c *CompositionRoot) CreateListFreeCouriersQueryHandler() queries.ListFreeCouriersQueryHandler {
	var f queries.CourierReaderFactory = FuncCourierReaderFactory(func() queries.CourierReader {
		return c.uows.Create()
	})
	return queries.NewListFreeCouriersQueryHandler(f)
}

// CreateHTTPHandlers returns every use case served by the HTTP adapter.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrderFromCart:   c.CreateCreateOrderFromCartCommandHandler(),
		ChangeOrderStatus:     c.CreateChangeOrderStatusCommandHandler(),
		AssignDeliveryPartner: c.CreateAssignDeliveryPartnerCommandHandler(),
		ReportLocation:        c.CreateReportLocationCommandHandler(),
		MarkPayment:           c.CreateMarkPaymentCommandHandler(),
		AddToCart:             c.CreateAddToCartCommandHandler(),
		UpdateCartItem:        c.CreateUpdateCartItemCommandHandler(),
		ClearCart:             c.CreateClearCartCommandHandler(),
		CreateCourier:         c.CreateCreateCourierCommandHandler(),
		SetAvailability:       c.CreateSetCourierAvailabilityCommandHandler(),

		GetOrderSnapshot: c.CreateGetOrderSnapshotQueryHandler(),
		ListOrders:       c.CreateListOrdersQueryHandler(),
		GetCart:          c.CreateGetCartQueryHandler(),
		ListFreeCouriers: c.CreateListFreeCouriersQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAssignPendingOrdersCommandHandler(), c.cfg.AssignmentSchedule, c.logger)
}

func (c *CompositionRoot) uowFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uows.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uows.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uows.Create()
	})
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uows.Create()
	})
}

func (c *CompositionRoot) orderReaderFactory() queries.OrderReaderFactory {
	return FuncOrderReaderFactory(func() queries.OrderReader {
		return c.uows.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderReaderFactory func() queries.OrderReader

func (f FuncOrderReaderFactory) Create() queries.OrderReader {
	return f()
}

type FuncCartReaderFactory func() queries.CartReader

func (f FuncCartReaderFactory) Create() queries.CartReader {
	return f()
}

type FuncCourierReaderFactory func() queries.CourierReader

func (f FuncCourierReaderFactory) Create() queries.CourierReader {
	return f()
}
