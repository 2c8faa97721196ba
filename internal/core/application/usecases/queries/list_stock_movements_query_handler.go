package queries

import (
	"context"
	"time"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovementView struct {
	ID             kernel.UUID
	ProductID      kernel.UUID
	Kind           product.MovementKind
	AvailableDelta int
	ReservedDelta  int
	AvailableAfter int
	ReservedAfter  int
	OrderID        *kernel.UUID
	Reason         product.DeductReason
	Notes          string
	Actor          string
	CreatedAt      time.Time
}

type ListStockMovementsQueryHandler struct {
	db *gorm.DB
}

func NewListStockMovementsQueryHandler(db *gorm.DB) ListStockMovementsQueryHandler {
	return ListStockMovementsQueryHandler{db: db}
}

func (h ListStockMovementsQueryHandler) Handle(
	ctx context.Context,
	query ListStockMovementsQuery,
) ([]MovementView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	productID := query.ProductID().Bytes()

	exists, err := productExists(db, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("product", query.ProductID())
	}

	rows, err := db.Raw(`
		SELECT
			id,
			product_id,
			kind,
			available_delta,
			reserved_delta,
			available_after,
			reserved_after,
			order_id,
			reason,
			notes,
			actor,
			created_at
		FROM stock_movements
		WHERE product_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, productID, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make([]MovementView, 0)
	for rows.Next() {
		var (
			m                MovementView
			id, rawProductID uuid.UUID
			orderID          uuid.NullUUID
			kind, reason     string
		)
		err = rows.Scan(
			&id,
			&rawProductID,
			&kind,
			&m.AvailableDelta,
			&m.ReservedDelta,
			&m.AvailableAfter,
			&m.ReservedAfter,
			&orderID,
			&reason,
			&m.Notes,
			&m.Actor,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if m.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if m.ProductID, err = toUUID(rawProductID); err != nil {
			return nil, err
		}
		if m.OrderID, err = toOptionalUUID(orderID); err != nil {
			return nil, err
		}
		m.Kind = product.MovementKind(kind)
		m.Reason = product.DeductReason(reason)
		movements = append(movements, m)
	}

	return movements, rows.Err()
}

func productExists(db *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.Table("products").Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
