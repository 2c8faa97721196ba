package queries

import (
	"context"

	"printfarm/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id, o.code, o.customer_id, o.status, o.skip_production,
			COUNT(i.position),
			COALESCE(SUM(i.quantity), 0),
			COALESCE(SUM(i.quantity * i.unit_price), 0),
			o.created_at, o.updated_at`).
		Joins("LEFT JOIN order_items AS i ON i.order_id = o.id").
		Where("o.deleted_at IS NULL")
	if s := query.Status(); s != nil {
		tx = tx.Where("o.status = ?", int(*s))
	}

	rows, err := tx.Group("o.id").Order("o.created_at DESC, o.id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0)
	for rows.Next() {
		var (
			s          OrderSummary
			id         uuid.UUID
			customerID uuid.NullUUID
			status     int
		)
		err = rows.Scan(
			&id,
			&s.Code,
			&customerID,
			&status,
			&s.SkipProduction,
			&s.ItemCount,
			&s.TotalQuantity,
			&s.Total,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if s.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		if s.CustomerID, err = toOptionalUUID(customerID); err != nil {
			return nil, err
		}
		s.Status = order.Status(status)
		summaries = append(summaries, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
