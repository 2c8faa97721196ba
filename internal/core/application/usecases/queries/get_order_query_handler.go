package queries

import (
	"context"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)
	view, found, err := h.loadHeader(db, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	if !found {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	if view.Items, err = h.loadItems(db, query.OrderID()); err != nil {
		return OrderView{}, err
	}
	view.Total = decimal.Zero
	for _, it := range view.Items {
		view.Total = view.Total.Add(it.Subtotal)
	}

	if view.ProductionLines, err = h.loadProductionLines(db, query.OrderID()); err != nil {
		return OrderView{}, err
	}
	if view.BobbinSelections, err = h.loadSelections(db, query.OrderID()); err != nil {
		return OrderView{}, err
	}

	return view, nil
}

func (h GetOrderQueryHandler) loadHeader(db *gorm.DB, id kernel.UUID) (OrderView, bool, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			code,
			customer_id,
			status,
			skip_production,
			production_mode,
			table_count,
			created_by,
			updated_by,
			created_at,
			updated_at
		FROM orders
		WHERE id = ? AND deleted_at IS NULL
	`, id.Bytes()).Rows()
	if err != nil {
		return OrderView{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return OrderView{}, false, rows.Err()
	}

	var (
		view       OrderView
		rawID      uuid.UUID
		customerID uuid.NullUUID
		status     int
		mode       int
	)
	err = rows.Scan(
		&rawID,
		&view.Code,
		&customerID,
		&status,
		&view.SkipProduction,
		&mode,
		&view.TableCount,
		&view.CreatedBy,
		&view.UpdatedBy,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return OrderView{}, false, err
	}

	if view.ID, err = toUUID(rawID); err != nil {
		return OrderView{}, false, err
	}
	if view.CustomerID, err = toOptionalUUID(customerID); err != nil {
		return OrderView{}, false, err
	}
	view.Status = order.Status(status)
	view.ProductionMode = production.Mode(mode)

	return view, true, rows.Err()
}

func (h GetOrderQueryHandler) loadItems(db *gorm.DB, id kernel.UUID) ([]OrderItemView, error) {
	rows, err := db.Raw(`
		SELECT product_id, product_code, product_name, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var (
			item      OrderItemView
			productID uuid.UUID
		)
		if err = rows.Scan(&productID, &item.ProductCode, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		if item.ProductID, err = toUUID(productID); err != nil {
			return nil, err
		}
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) loadProductionLines(db *gorm.DB, id kernel.UUID) ([]order.ProductionLine, error) {
	rows, err := db.Raw(`
		SELECT product_id, quantity
		FROM order_production_lines
		WHERE order_id = ?
		ORDER BY product_id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]order.ProductionLine, 0)
	for rows.Next() {
		var (
			line      order.ProductionLine
			productID uuid.UUID
		)
		if err = rows.Scan(&productID, &line.Quantity); err != nil {
			return nil, err
		}
		if line.ProductID, err = toUUID(productID); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (h GetOrderQueryHandler) loadSelections(db *gorm.DB, id kernel.UUID) ([]order.BobbinSelection, error) {
	rows, err := db.Raw(`
		SELECT product_id, requirement_key, bobbin_id
		FROM order_bobbin_selections
		WHERE order_id = ?
		ORDER BY product_id, requirement_key
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	selections := make([]order.BobbinSelection, 0)
	for rows.Next() {
		var (
			sel                 order.BobbinSelection
			productID, bobbinID uuid.UUID
		)
		if err = rows.Scan(&productID, &sel.RequirementKey, &bobbinID); err != nil {
			return nil, err
		}
		if sel.ProductID, err = toUUID(productID); err != nil {
			return nil, err
		}
		if sel.BobbinID, err = toUUID(bobbinID); err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}

	return selections, rows.Err()
}
