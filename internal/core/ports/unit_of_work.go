package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories it hands out are bound
// to the transaction started by Begin. Rollback after Commit is a no-op, so
// callers may defer it unconditionally.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ProductRepository() ProductRepository
	BobbinRepository() BobbinRepository
	OrderRepository() OrderRepository
	StockMovementRepository() StockMovementRepository
}
