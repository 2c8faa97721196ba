package ports

import (
	"context"

	"printfarm/internal/core/domain/model/product"
)

// StockMovementRepository is the append-only stock ledger.
type StockMovementRepository interface {
	Append(ctx context.Context, movements ...product.StockMovement) error
}
