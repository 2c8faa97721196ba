// Package postgres implements the unit of work and the schema setup on top
// of GORM.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it after Begin share that transaction. Aggregates written through the
// repositories are tracked, and once the transaction commits their pending
// domain events are handed to the configured publishers.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Publishing is at-most-once: a publisher failure after commit is logged and
// does not undo the transaction.
package postgres

import (
	"context"
	"log/slog"

	"printfarm/internal/adapters/out/postgres/bobbinrepo"
	"printfarm/internal/adapters/out/postgres/movementrepo"
	"printfarm/internal/adapters/out/postgres/orderrepo"
	"printfarm/internal/adapters/out/postgres/productrepo"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db         *gorm.DB
	logger     *slog.Logger
	publishers []ports.EventPublisher
}

// NewGormUnitOfWorkFactory returns a factory whose units of work publish
// committed events to every publisher in order.
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger, publishers ...ports.EventPublisher) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{db: db, logger: logger, publishers: publishers}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		publishers:        f.publishers,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *slog.Logger
	publishers        []ports.EventPublisher
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publish(ctx)
	return nil
}

// Rollback aborts the transaction. It is a no-op once Commit has run.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return productrepo.NewGormProductRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BobbinRepository() ports.BobbinRepository {
	return bobbinrepo.NewGormBobbinRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StockMovementRepository() ports.StockMovementRepository {
	return movementrepo.NewGormStockMovementRepository(uow.conn())
}

func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	events := pullEvents(tracked)
	if len(events) == 0 {
		return
	}

	for _, p := range uow.publishers {
		if err := p.Publish(ctx, events...); err != nil {
			uow.logger.ErrorContext(ctx, "failed to publish domain events",
				slog.Int("events", len(events)),
				slog.String("error", err.Error()))
		}
	}
}

// pullEvents drains pending events from the tracked aggregates in tracking
// order. An aggregate tracked twice is drained once.
func pullEvents(tracked []trackedAggregate) []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, t := range tracked {
		src, ok := t.Aggregate.(kernel.EventSource)
		if !ok {
			continue
		}
		events = append(events, src.PullEvents()...)
	}
	return events
}
