// Package productrepo maps the product aggregate, its filament requirements
// and its stock counters to the products and product_filaments tables.
package productrepo

import (
	"slices"
	"time"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"

	"github.com/google/uuid"
)

type ProductDTO struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Code           string        `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_code"`
	Name           string        `gorm:"type:varchar(255);not null"`
	Capacity       int           `gorm:"type:int;not null;default:0"`
	AvailableStock int           `gorm:"type:int;not null;default:0;check:available_stock >= 0"`
	ReservedStock  int           `gorm:"type:int;not null;default:0;check:reserved_stock >= 0"`
	Version        int64         `gorm:"type:bigint;not null;default:0"`
	Filaments      []FilamentDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

// FilamentDTO is one filament requirement. Position keeps the order the
// requirements were declared in.
type FilamentDTO struct {
	ProductID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position      int       `gorm:"type:int;primaryKey"`
	Type          string    `gorm:"type:varchar(64);not null"`
	Color         string    `gorm:"type:varchar(64);not null"`
	WeightPerUnit float64   `gorm:"type:double precision;not null"`
}

func (FilamentDTO) TableName() string {
	return "product_filaments"
}

func fromDomain(p *product.Product) ProductDTO {
	id := p.ID().Bytes()
	reqs := p.Requirements()
	filaments := make([]FilamentDTO, 0, len(reqs))
	for i, r := range reqs {
		filaments = append(filaments, FilamentDTO{
			ProductID:     id,
			Position:      i,
			Type:          r.Material().Type(),
			Color:         r.Material().Color(),
			WeightPerUnit: r.WeightPerUnit(),
		})
	}

	return ProductDTO{
		ID:             id,
		Code:           p.Code(),
		Name:           p.Name(),
		Capacity:       p.Capacity(),
		AvailableStock: p.Stock().Available,
		ReservedStock:  p.Stock().Reserved,
		Version:        p.Version(),
		Filaments:      filaments,
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	reqs, err := RequirementsFromDTO(dto.Filaments)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		dto.Code,
		dto.Name,
		dto.Capacity,
		reqs,
		product.Stock{Available: dto.AvailableStock, Reserved: dto.ReservedStock},
		dto.Version,
	)
}

// RequirementsFromDTO rebuilds filament requirements in declaration order.
// Read models share it with the repository.
func RequirementsFromDTO(filaments []FilamentDTO) ([]product.FilamentRequirement, error) {
	ordered := slices.Clone(filaments)
	slices.SortFunc(ordered, func(a, b FilamentDTO) int { return a.Position - b.Position })

	reqs := make([]product.FilamentRequirement, 0, len(ordered))
	for _, f := range ordered {
		m, err := kernel.NewMaterial(f.Type, f.Color)
		if err != nil {
			return nil, err
		}
		r, err := product.NewFilamentRequirement(m, f.WeightPerUnit)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}
