package queries

import (
	"context"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (ProductView, error) {
	if err := query.Validate(); err != nil {
		return ProductView{}, err
	}

	id := query.ProductID()
	products, err := loadProducts(h.db.WithContext(ctx), &id)
	if err != nil {
		return ProductView{}, err
	}
	if len(products) == 0 {
		return ProductView{}, errs.NewObjectNotFoundError("product", query.ProductID())
	}
	return products[0], nil
}

type ListProductsQueryHandler struct {
	db *gorm.DB
}

func NewListProductsQueryHandler(db *gorm.DB) ListProductsQueryHandler {
	return ListProductsQueryHandler{db: db}
}

func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return loadProducts(h.db.WithContext(ctx), nil)
}

// loadProducts reads one product when id is set, otherwise the catalog.
func loadProducts(db *gorm.DB, id *kernel.UUID) ([]ProductView, error) {
	products := db.Table("products").
		Select("id, code, name, capacity, available_stock, reserved_stock, version").
		Order("code")
	filaments := db.Table("product_filaments").
		Select("product_id, type, color, weight_per_unit").
		Order("product_id, position")
	if id != nil {
		products = products.Where("id = ?", id.Bytes())
		filaments = filaments.Where("product_id = ?", id.Bytes())
	}

	rows, err := products.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ProductView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			v     ProductView
			rawID uuid.UUID
		)
		if err = rows.Scan(&rawID, &v.Code, &v.Name, &v.Capacity, &v.Available, &v.Reserved, &v.Version); err != nil {
			return nil, err
		}
		if v.ID, err = toUUID(rawID); err != nil {
			return nil, err
		}
		v.Filaments = make([]FilamentView, 0)
		index[rawID] = len(views)
		views = append(views, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	frows, err := filaments.Rows()
	if err != nil {
		return nil, err
	}
	defer frows.Close()

	for frows.Next() {
		var (
			f         FilamentView
			productID uuid.UUID
		)
		if err = frows.Scan(&productID, &f.Type, &f.Color, &f.WeightPerUnit); err != nil {
			return nil, err
		}
		if i, ok := index[productID]; ok {
			views[i].Filaments = append(views[i].Filaments, f)
		}
	}

	return views, frows.Err()
}
