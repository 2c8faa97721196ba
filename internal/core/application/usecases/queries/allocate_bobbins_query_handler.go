package queries

import (
	"context"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AllocateBobbinsQueryHandler struct {
	allocator services.BobbinAllocator
}

func NewAllocateBobbinsQueryHandler(allocator services.BobbinAllocator) AllocateBobbinsQueryHandler {
	return AllocateBobbinsQueryHandler{allocator: allocator}
}

func (h AllocateBobbinsQueryHandler) Handle(_ context.Context, query AllocateBobbinsQuery) (AllocationView, error) {
	if err := query.Validate(); err != nil {
		return AllocationView{}, err
	}

	alloc := h.allocator.Allocate(query.Requirements(), query.Bobbins(), query.Quantity())
	return allocationView(alloc, query.Quantity(), h.allocator.Policy()), nil
}

// AllocateBobbinsForProductQueryHandler reads the product's requirements and
// the spools without locking them.
type AllocateBobbinsForProductQueryHandler struct {
	db        *gorm.DB
	allocator services.BobbinAllocator
}

func NewAllocateBobbinsForProductQueryHandler(
	db *gorm.DB,
	allocator services.BobbinAllocator,
) AllocateBobbinsForProductQueryHandler {
	return AllocateBobbinsForProductQueryHandler{db: db, allocator: allocator}
}

func (h AllocateBobbinsForProductQueryHandler) Handle(
	ctx context.Context,
	query AllocateBobbinsForProductQuery,
) (AllocationView, error) {
	if err := query.Validate(); err != nil {
		return AllocationView{}, err
	}

	db := h.db.WithContext(ctx)
	productID := query.ProductID().Bytes()

	exists, err := productExists(db, productID)
	if err != nil {
		return AllocationView{}, err
	}
	if !exists {
		return AllocationView{}, errs.NewObjectNotFoundError("product", query.ProductID())
	}

	requirements, err := loadRequirements(db, productID)
	if err != nil {
		return AllocationView{}, err
	}
	bobbins, err := loadBobbins(db)
	if err != nil {
		return AllocationView{}, err
	}

	alloc := h.allocator.Allocate(requirements, bobbins, query.Quantity())
	return allocationView(alloc, query.Quantity(), h.allocator.Policy()), nil
}

func loadRequirements(db *gorm.DB, productID uuid.UUID) ([]product.FilamentRequirement, error) {
	rows, err := db.Raw(`
		SELECT type, color, weight_per_unit
		FROM product_filaments
		WHERE product_id = ?
		ORDER BY position
	`, productID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requirements := make([]product.FilamentRequirement, 0)
	for rows.Next() {
		var (
			filamentType, color string
			weight              float64
		)
		if err = rows.Scan(&filamentType, &color, &weight); err != nil {
			return nil, err
		}
		m, mErr := kernel.NewMaterial(filamentType, color)
		if mErr != nil {
			return nil, mErr
		}
		req, rErr := product.NewFilamentRequirement(m, weight)
		if rErr != nil {
			return nil, rErr
		}
		requirements = append(requirements, req)
	}

	return requirements, rows.Err()
}

func loadBobbins(db *gorm.DB) ([]*bobbin.Bobbin, error) {
	rows, err := db.Raw(`
		SELECT id, type, color, brand, total_weight, remaining_weight
		FROM bobbins
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bobbins := make([]*bobbin.Bobbin, 0)
	for rows.Next() {
		var (
			rawID                      uuid.UUID
			filamentType, color, brand string
			total, remaining           float64
		)
		if err = rows.Scan(&rawID, &filamentType, &color, &brand, &total, &remaining); err != nil {
			return nil, err
		}
		id, idErr := toUUID(rawID)
		if idErr != nil {
			return nil, idErr
		}
		m, mErr := kernel.NewMaterial(filamentType, color)
		if mErr != nil {
			return nil, mErr
		}
		b, bErr := bobbin.RestoreBobbin(id, m, brand, total, remaining)
		if bErr != nil {
			return nil, bErr
		}
		bobbins = append(bobbins, b)
	}

	return bobbins, rows.Err()
}
