package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	httpadapter "printfarm/internal/adapters/in/http"
	"printfarm/internal/adapters/out/kafka"
	"printfarm/internal/adapters/out/metrics"
	"printfarm/internal/adapters/out/postgres"
	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/application/usecases/queries"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/core/ports"
	"printfarm/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	logger      *slog.Logger
	metrics     *metrics.Metrics
	publisher   *kafka.Publisher
	uowFactory  *postgres.GormUnitOfWorkFactory
	allocator   services.BobbinAllocator
	fulfillment services.OrderFulfillment
}

// NewCompositionRoot wires the unit of work with its event publishers:
// Prometheus counters always, Kafka when KAFKA_HOST is set.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	policy, err := services.ParseSufficiencyPolicy(configs.FilamentSufficiency)
	if err != nil {
		return nil, fmt.Errorf("FILAMENT_SUFFICIENCY: %w", err)
	}
	if _, err = statusDecoder(configs.StatusDecoding); err != nil {
		return nil, err
	}

	m := metrics.New()
	publishers := []ports.EventPublisher{m}

	var publisher *kafka.Publisher
	if configs.KafkaHost != "" {
		publisher = kafka.NewPublisher(kafka.Config{
			Brokers:    strings.Split(configs.KafkaHost, ","),
			OrderTopic: configs.KafkaOrderChangedTopic,
			StockTopic: configs.KafkaStockChangedTopic,
		}, logger)
		publishers = append(publishers, publisher)
	}

	allocator := services.NewBobbinAllocator(policy)
	return &CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		logger:      logger,
		metrics:     m,
		publisher:   publisher,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, logger, publishers...),
		allocator:   allocator,
		fulfillment: services.NewOrderFulfillment(allocator),
	}, nil
}

func (c *CompositionRoot) productUoWFactory() commands.ProductUoWFactory {
	return FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) bobbinUoWFactory() commands.BobbinUoWFactory {
	return FuncBobbinUoWFactory(func() commands.BobbinUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.productUoWFactory())
}

func (c *CompositionRoot) CreateReduceStockCommandHandler() commands.ReduceStockCommandHandler {
	return commands.NewReduceStockCommandHandler(c.productUoWFactory())
}

func (c *CompositionRoot) CreateCreateBobbinCommandHandler() commands.CreateBobbinCommandHandler {
	return commands.NewCreateBobbinCommandHandler(c.bobbinUoWFactory())
}

func (c *CompositionRoot) CreateConsumeFilamentCommandHandler() commands.ConsumeFilamentCommandHandler {
	return commands.NewConsumeFilamentCommandHandler(c.bobbinUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.fulfillment)
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWFactory(), c.fulfillment)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.fulfillment)
}

func (c *CompositionRoot) CreateGetProductQueryHandler() queries.GetProductQueryHandler {
	return queries.NewGetProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListProductsQueryHandler() queries.ListProductsQueryHandler {
	return queries.NewListProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListStockMovementsQueryHandler() queries.ListStockMovementsQueryHandler {
	return queries.NewListStockMovementsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAllocateBobbinsQueryHandler() queries.AllocateBobbinsQueryHandler {
	return queries.NewAllocateBobbinsQueryHandler(c.allocator)
}

func (c *CompositionRoot) CreateAllocateBobbinsForProductQueryHandler() queries.AllocateBobbinsForProductQueryHandler {
	return queries.NewAllocateBobbinsForProductQueryHandler(c.gormDB, c.allocator)
}

func (c *CompositionRoot) CreateListBobbinsQueryHandler() queries.ListBobbinsQueryHandler {
	return queries.NewListBobbinsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuditReservationsQueryHandler() queries.AuditReservationsQueryHandler {
	return queries.NewAuditReservationsQueryHandler(c.gormDB)
}

// NewRouter builds the HTTP entry point over every handler.
func (c *CompositionRoot) NewRouter() (*echo.Echo, error) {
	decode, err := statusDecoder(c.configs.StatusDecoding)
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateProduct:   c.CreateCreateProductCommandHandler(),
		ReduceStock:     c.CreateReduceStockCommandHandler(),
		CreateBobbin:    c.CreateCreateBobbinCommandHandler(),
		ConsumeFilament: c.CreateConsumeFilamentCommandHandler(),
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		SetOrderStatus:  c.CreateSetOrderStatusCommandHandler(),
		DeleteOrder:     c.CreateDeleteOrderCommandHandler(),

		GetProduct:                c.CreateGetProductQueryHandler(),
		ListProducts:              c.CreateListProductsQueryHandler(),
		ListStockMovements:        c.CreateListStockMovementsQueryHandler(),
		AllocateBobbins:           c.CreateAllocateBobbinsQueryHandler(),
		AllocateBobbinsForProduct: c.CreateAllocateBobbinsForProductQueryHandler(),
		ListBobbins:               c.CreateListBobbinsQueryHandler(),
		GetOrder:                  c.CreateGetOrderQueryHandler(),
		ListOrders:                c.CreateListOrdersQueryHandler(),
	}, decode)

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		Logger:         c.logger,
		Observer:       c.metrics,
		MetricsHandler: c.metrics.Handler(),
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	audit := jobs.NewStockAuditJob(
		c.CreateAuditReservationsQueryHandler(),
		c.metrics,
		c.configs.StockAuditSchedule,
		c.logger,
	)
	return jobs.NewJobManager(audit)
}

// Close flushes the Kafka writers.
func (c *CompositionRoot) Close() error {
	if c.publisher == nil {
		return nil
	}
	return c.publisher.Close()
}

func statusDecoder(mode string) (httpadapter.StatusDecoder, error) {
	switch strings.ToLower(mode) {
	case "", "lenient":
		return httpadapter.LenientStatusDecoder, nil
	case "strict":
		return httpadapter.StrictStatusDecoder, nil
	default:
		return nil, fmt.Errorf("STATUS_DECODING: %q is neither lenient nor strict", mode)
	}
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncBobbinUoWFactory func() commands.BobbinUoW

func (f FuncBobbinUoWFactory) Create() commands.BobbinUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
