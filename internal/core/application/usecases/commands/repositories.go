// Package commands contains the write side of the application: one command
// and one handler per state-changing operation. Every handler runs inside a
// single unit of work and rolls back on any error.
package commands

import (
	"context"

	"printfarm/internal/core/ports"
)

// Unit of Work views. Each handler asks only for the repositories it uses.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	BobbinRepoFactory interface {
		BobbinRepository() ports.BobbinRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StockMovementRepoFactory interface {
		StockMovementRepository() ports.StockMovementRepository
	}

	// ProductUoW covers catalog and manual stock operations.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
		StockMovementRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// BobbinUoW covers spool registration and consumption.
	BobbinUoW interface {
		TxManager
		BobbinRepoFactory
	}

	BobbinUoWFactory interface {
		Create() BobbinUoW
	}

	// UoW spans orders, products, bobbins and the stock ledger. Order
	// lifecycle commands use it.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { ... }
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate through services.OrderFulfillment
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ProductRepoFactory
		BobbinRepoFactory
		OrderRepoFactory
		StockMovementRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
