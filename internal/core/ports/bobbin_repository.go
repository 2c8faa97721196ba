package ports

import (
	"context"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
)

type BobbinRepository interface {
	Add(ctx context.Context, aggregate *bobbin.Bobbin) error
	Update(ctx context.Context, aggregate *bobbin.Bobbin) error
	Get(ctx context.Context, id kernel.UUID) (*bobbin.Bobbin, error)

	// GetForUpdate loads and row-locks one bobbin.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*bobbin.Bobbin, error)

	// GetAll returns every bobbin, ordered by id. It is the snapshot the
	// allocator works on.
	GetAll(ctx context.Context) ([]*bobbin.Bobbin, error)
}
