package ports

import (
	"context"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
)

// OrderRepository persists orders with their line items, production lines
// and bobbin selections. Deleted orders are invisible to Get and GetForUpdate.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error
	Update(ctx context.Context, aggregate *order.Order) error
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads and row-locks the order so transitions on it serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete stores the (cancelled) order and soft-deletes it.
	Delete(ctx context.Context, aggregate *order.Order) error
}
