package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListBobbinsQueryHandler struct {
	db *gorm.DB
}

func NewListBobbinsQueryHandler(db *gorm.DB) ListBobbinsQueryHandler {
	return ListBobbinsQueryHandler{db: db}
}

func (h ListBobbinsQueryHandler) Handle(ctx context.Context, query ListBobbinsQuery) ([]BobbinView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("bobbins").
		Select("id, type, color, brand, total_weight, remaining_weight")
	if query.Type() != "" {
		tx = tx.Where("LOWER(type) = LOWER(?)", query.Type())
	}
	if query.Color() != "" {
		tx = tx.Where("LOWER(color) = LOWER(?)", query.Color())
	}

	rows, err := tx.Order("LOWER(type), LOWER(color), remaining_weight DESC, id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bobbins := make([]BobbinView, 0)
	for rows.Next() {
		var (
			b  BobbinView
			id uuid.UUID
		)
		if err = rows.Scan(&id, &b.Type, &b.Color, &b.Brand, &b.TotalWeight, &b.RemainingWeight); err != nil {
			return nil, err
		}
		if b.ID, err = toUUID(id); err != nil {
			return nil, err
		}
		bobbins = append(bobbins, b)
	}

	return bobbins, rows.Err()
}
