// Package ports defines the persistence and messaging contracts the core
// depends on. Adapters under internal/adapters/out implement them.
package ports

import (
	"context"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
)

// ProductRepository persists products together with their stock counters.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error

	// Update writes the product only if the stored version still equals
	// aggregate.OriginalVersion(); otherwise it returns errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetForUpdate loads and row-locks the given products in ascending id
	// order. A missing id yields errs.ObjectNotFoundError.
	GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*product.Product, error)
}
