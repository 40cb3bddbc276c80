package cmd

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	httpin "github.com/p-thanks/RouteX/internal/adapters/in/http"
	"github.com/p-thanks/RouteX/internal/adapters/in/ws"
	"github.com/p-thanks/RouteX/internal/adapters/out/broadcast"
	"github.com/p-thanks/RouteX/internal/adapters/out/geo"
	"github.com/p-thanks/RouteX/internal/adapters/out/postgres"
	"github.com/p-thanks/RouteX/internal/core/application/usecases/commands"
	"github.com/p-thanks/RouteX/internal/core/application/usecases/queries"
	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/domain/services"
	"github.com/p-thanks/RouteX/internal/jobs"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// CompositionRoot wires every adapter and handler together. All singletons
// (geo index, broadcast hub, pricing engine, lock tables) live here.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	geoIndex    *geo.InMemoryIndex
	hub         *broadcast.Hub
	pricing     *services.PricingEngine
	ranker      services.DispatchRanker
	orderLocks  *keyedmutex.KeyedMutex
	driverLocks *keyedmutex.KeyedMutex
	logger      *slog.Logger
}

// NewCompositionRoot assembles the object graph from the configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	pricing, err := services.NewPricingEngine(config.Pricing)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		geoIndex:    geo.NewInMemoryIndex(config.MaxConcurrentOrders),
		hub:         broadcast.NewHub(config.BroadcastQueueSize),
		pricing:     pricing,
		ranker:      services.NewDispatchRanker(0),
		orderLocks:  keyedmutex.New(),
		driverLocks: keyedmutex.New(),
		logger:      logger,
	}, nil
}

// WarmGeoIndex seeds the in-memory index from the drivers that were on
// shift when the service last stopped. Without this a restart would strand
// online drivers outside the dispatch pool until their next location report.
func (c *CompositionRoot) WarmGeoIndex(ctx context.Context) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback(ctx)

	online, err := uow.DriverRepository().GetAllOnline(ctx)
	if err != nil {
		return err
	}

	for _, d := range online {
		c.geoIndex.SetAvailability(d.ID(), driver.StatusOnline)
		c.geoIndex.SetRating(d.ID(), d.Rating())
		if pos := d.Position(); pos != nil {
			if err = c.geoIndex.UpdatePosition(d.ID(), pos.Point, pos.ReportedAt); err != nil {
				return err
			}
		}
	}

	c.logger.InfoContext(ctx, "Geo index warmed", "drivers", len(online))
	return nil
}

func (c *CompositionRoot) uowFactoryAdapter() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactoryAdapter() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactoryAdapter() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactoryAdapter(), c.pricing, c.hub)
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.driverUoWFactoryAdapter())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(
		c.uowFactoryAdapter(), c.geoIndex, c.ranker, c.hub, c.orderLocks, c.driverLocks,
		commands.DispatchConfig{
			SearchRadiusKm:      c.config.SearchRadiusKm,
			MaxSearchRounds:     c.config.MaxSearchRounds,
			MaxConcurrentOrders: c.config.MaxConcurrentOrders,
		})
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	return commands.NewReportLocationCommandHandler(c.uowFactoryAdapter(), c.geoIndex, c.hub, c.driverLocks, c.logger)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(c.uowFactoryAdapter(), c.geoIndex, c.hub, c.orderLocks, c.driverLocks)
}

func (c *CompositionRoot) CreateMarkInTransitCommandHandler() commands.MarkInTransitCommandHandler {
	return commands.NewMarkInTransitCommandHandler(c.uowFactoryAdapter(), c.geoIndex, c.hub, c.orderLocks, c.driverLocks)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.uowFactoryAdapter(), c.geoIndex, c.hub, c.orderLocks, c.driverLocks)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uowFactoryAdapter(), c.geoIndex, c.hub, c.orderLocks, c.driverLocks)
}

func (c *CompositionRoot) CreateFailOrderCommandHandler() commands.FailOrderCommandHandler {
	return commands.NewFailOrderCommandHandler(c.uowFactoryAdapter(), c.geoIndex, c.hub, c.orderLocks, c.driverLocks)
}

func (c *CompositionRoot) CreateRateDriverCommandHandler() commands.RateDriverCommandHandler {
	return commands.NewRateDriverCommandHandler(c.uowFactoryAdapter(), c.geoIndex, c.orderLocks, c.driverLocks)
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	return commands.NewSetDriverAvailabilityCommandHandler(c.driverUoWFactoryAdapter(), c.geoIndex, c.driverLocks)
}

func (c *CompositionRoot) CreateAddPromoCodeCommandHandler() commands.AddPromoCodeCommandHandler {
	return commands.NewAddPromoCodeCommandHandler(c.pricing)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the API server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateRegisterDriverCommandHandler(),
		c.CreateDispatchOrderCommandHandler(),
		c.CreateReportLocationCommandHandler(),
		c.CreateMarkPickedUpCommandHandler(),
		c.CreateMarkInTransitCommandHandler(),
		c.CreateCompleteDeliveryCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateFailOrderCommandHandler(),
		c.CreateRateDriverCommandHandler(),
		c.CreateSetDriverAvailabilityCommandHandler(),
		c.CreateAddPromoCodeCommandHandler(),
		c.CreateGetOrderTrackingQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.pricing,
	)
}

// CreateWSHandler builds the WebSocket endpoint over the broadcast hub.
func (c *CompositionRoot) CreateWSHandler() *ws.Handler {
	return ws.NewHandler(c.hub, c.logger)
}

// CreateJobManager builds the background sweeps.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	redispatch := jobs.NewRedispatchJob(
		c.orderUoWFactoryAdapter(),
		c.CreateDispatchOrderCommandHandler(),
		c.config.RedispatchSchedule,
		c.logger,
	)
	staleDriver := jobs.NewStaleDriverJob(
		c.driverUoWFactoryAdapter(),
		c.geoIndex,
		c.config.StaleDriverThreshold,
		c.config.StaleDriverSchedule,
		c.logger,
	)
	return jobs.NewJobManager(redispatch, staleDriver)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
