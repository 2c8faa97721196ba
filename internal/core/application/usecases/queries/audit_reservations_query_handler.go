package queries

import (
	"context"

	"printfarm/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditReservationsQueryHandler struct {
	db *gorm.DB
}

func NewAuditReservationsQueryHandler(db *gorm.DB) AuditReservationsQueryHandler {
	return AuditReservationsQueryHandler{db: db}
}

// Handle reads a consistent snapshot of counters and order lines in one
// statement. Products that agree with their orders are counted but not
// returned.
func (h AuditReservationsQueryHandler) Handle(
	ctx context.Context,
	query AuditReservationsQuery,
) (AuditReservationsResponse, error) {
	if err := query.Validate(); err != nil {
		return AuditReservationsResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.code,
			p.reserved_stock,
			COALESCE(SUM(i.quantity) FILTER (WHERE o.id IS NOT NULL), 0) AS expected
		FROM products p
		LEFT JOIN order_items i ON i.product_id = p.id
		LEFT JOIN orders o ON o.id = i.order_id
			AND o.deleted_at IS NULL
			AND o.status <> ?
		GROUP BY p.id, p.code, p.reserved_stock
		ORDER BY p.code
	`, int(order.Cancelled)).Rows()
	if err != nil {
		return AuditReservationsResponse{}, err
	}
	defer rows.Close()

	resp := AuditReservationsResponse{Drifts: make([]ReservationDrift, 0)}
	for rows.Next() {
		var (
			d  ReservationDrift
			id uuid.UUID
		)
		if err = rows.Scan(&id, &d.Code, &d.Reserved, &d.Expected); err != nil {
			return AuditReservationsResponse{}, err
		}
		resp.Checked++
		if d.Drift() == 0 {
			continue
		}
		if d.ProductID, err = toUUID(id); err != nil {
			return AuditReservationsResponse{}, err
		}
		resp.Drifts = append(resp.Drifts, d)
	}

	if err = rows.Err(); err != nil {
		return AuditReservationsResponse{}, err
	}
	return resp, nil
}
