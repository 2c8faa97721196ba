package bobbinrepo

import (
	"context"
	"errors"
	"time"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormBobbinRepository struct {
	db *gorm.DB
}

func NewGormBobbinRepository(db *gorm.DB) *GormBobbinRepository {
	return &GormBobbinRepository{db: db}
}

func (r *GormBobbinRepository) Add(ctx context.Context, aggregate *bobbin.Bobbin) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the remaining weight; everything else about a spool is fixed.
func (r *GormBobbinRepository) Update(ctx context.Context, aggregate *bobbin.Bobbin) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&BobbinDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"remaining_weight": aggregate.RemainingWeight(),
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bobbin", aggregate.ID())
	}
	return nil
}

func (r *GormBobbinRepository) Get(ctx context.Context, id kernel.UUID) (*bobbin.Bobbin, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormBobbinRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*bobbin.Bobbin, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (r *GormBobbinRepository) GetAll(ctx context.Context) ([]*bobbin.Bobbin, error) {
	var dtos []BobbinDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	bobbins := make([]*bobbin.Bobbin, 0, len(dtos))
	for _, dto := range dtos {
		b, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		bobbins = append(bobbins, b)
	}
	return bobbins, nil
}

func (r *GormBobbinRepository) get(db *gorm.DB, id kernel.UUID) (*bobbin.Bobbin, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BobbinDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bobbin", id)
		}
		return nil, err
	}
	return ToDomain(dto)
}
