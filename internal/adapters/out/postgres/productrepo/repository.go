package productrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"printfarm/internal/adapters/out/postgres/pgerrors"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the product and its filament requirements. A taken code is
// reported as errs.ValueIsInvalidError.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("product code",
				fmt.Errorf("code %q is already used: %w", aggregate.Code(), err))
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the stock counters and the new version, provided nobody
// else has written the row since it was loaded.
func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stock := aggregate.Stock()
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.OriginalVersion()).
		Updates(map[string]any{
			"available_stock": stock.Available,
			"reserved_stock":  stock.Reserved,
			"version":         aggregate.Version(),
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ProductDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("product", aggregate.ID())
		}
		return errs.NewVersionIsInvalidErrorWithCause("product", fmt.Errorf(
			"product %s changed since version %d was read", aggregate.Code(), aggregate.OriginalVersion()))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).Preload("Filaments").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate locks the rows in ascending id order so that concurrent
// commands touching overlapping products cannot deadlock.
func (r *GormProductRepository) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*product.Product, error) {
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if !slices.ContainsFunc(unique, id.IsEqual) {
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}
	slices.SortFunc(unique, kernel.UUID.Compare)

	raw := make([]any, 0, len(unique))
	for _, id := range unique {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Preload("Filaments").
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	for _, id := range unique {
		if !slices.ContainsFunc(products, func(p *product.Product) bool { return p.ID().IsEqual(id) }) {
			return nil, errs.NewObjectNotFoundError("product", id)
		}
	}

	return products, nil
}
