package memory

import (
	"context"
	"errors"
	"log/slog"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/ports"
)

var ErrNoTransaction = errors.New("unit of work has no open transaction")

type UnitOfWorkFactory struct {
	store      *Store
	logger     *slog.Logger
	publishers []ports.EventPublisher
}

func NewUnitOfWorkFactory(store *Store, logger *slog.Logger, publishers ...ports.EventPublisher) *UnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWorkFactory{store: store, logger: logger, publishers: publishers}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store, logger: f.logger, publishers: f.publishers}
}

// UnitOfWork works on a private copy of the store between Begin and Commit.
// Repositories used without Begin read committed data and their writes are
// discarded.
type UnitOfWork struct {
	store      *Store
	logger     *slog.Logger
	publishers []ports.EventPublisher

	tx      *state
	tracked []kernel.EventSource
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.tx != nil {
		return nil
	}
	u.store.txMu.Lock()
	st := u.store.snapshot()
	u.tx = &st
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	u.store.commit(*u.tx)
	u.tx = nil
	u.store.txMu.Unlock()

	tracked := u.tracked
	u.tracked = nil

	var events []kernel.DomainEvent
	for _, src := range tracked {
		events = append(events, src.PullEvents()...)
	}
	if len(events) == 0 {
		return nil
	}
	for _, p := range u.publishers {
		if err := p.Publish(ctx, events...); err != nil {
			u.logger.ErrorContext(ctx, "failed to publish domain events",
				slog.Int("events", len(events)),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.tracked = nil
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.store.txMu.Unlock()
	return nil
}

func (u *UnitOfWork) ProductRepository() ports.ProductRepository {
	return &productRepository{state: u.state(), track: u.track}
}

func (u *UnitOfWork) BobbinRepository() ports.BobbinRepository {
	return &bobbinRepository{state: u.state()}
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{state: u.state(), track: u.track}
}

func (u *UnitOfWork) StockMovementRepository() ports.StockMovementRepository {
	return &movementRepository{state: u.state()}
}

func (u *UnitOfWork) state() *state {
	if u.tx != nil {
		return u.tx
	}
	st := u.store.snapshot()
	return &st
}

func (u *UnitOfWork) track(src kernel.EventSource) {
	u.tracked = append(u.tracked, src)
}
