// Package bobbinrepo persists filament spools.
package bobbinrepo

import (
	"time"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BobbinDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type            string    `gorm:"type:varchar(64);not null;index:idx_bobbins_material"`
	Color           string    `gorm:"type:varchar(64);not null;index:idx_bobbins_material"`
	Brand           string    `gorm:"type:varchar(255)"`
	TotalWeight     float64   `gorm:"type:double precision;not null"`
	RemainingWeight float64   `gorm:"type:double precision;not null;check:remaining_weight >= 0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (BobbinDTO) TableName() string {
	return "bobbins"
}

func fromDomain(b *bobbin.Bobbin) BobbinDTO {
	return BobbinDTO{
		ID:              b.ID().Bytes(),
		Type:            b.Material().Type(),
		Color:           b.Material().Color(),
		Brand:           b.Brand(),
		TotalWeight:     b.TotalWeight(),
		RemainingWeight: b.RemainingWeight(),
	}
}

// ToDomain rebuilds a spool from its row. The allocation read model uses it
// as well.
func ToDomain(dto BobbinDTO) (*bobbin.Bobbin, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	m, err := kernel.NewMaterial(dto.Type, dto.Color)
	if err != nil {
		return nil, err
	}
	return bobbin.RestoreBobbin(id, m, dto.Brand, dto.TotalWeight, dto.RemainingWeight)
}
