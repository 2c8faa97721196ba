// Package movementrepo is the append-only stock ledger table.
package movementrepo

import (
	"context"
	"time"

	"printfarm/internal/core/domain/model/product"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockMovementDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_stock_movements_product,priority:1"`
	Kind           string     `gorm:"type:varchar(16);not null"`
	AvailableDelta int        `gorm:"type:int;not null"`
	ReservedDelta  int        `gorm:"type:int;not null"`
	AvailableAfter int        `gorm:"type:int;not null"`
	ReservedAfter  int        `gorm:"type:int;not null"`
	OrderID        *uuid.UUID `gorm:"type:uuid;index"`
	Reason         string     `gorm:"type:varchar(16)"`
	Notes          string     `gorm:"type:text"`
	Actor          string     `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time  `gorm:"not null;index:idx_stock_movements_product,priority:2"`
}

func (StockMovementDTO) TableName() string {
	return "stock_movements"
}

func fromDomain(m product.StockMovement) StockMovementDTO {
	var orderID *uuid.UUID
	if m.OrderID != nil {
		raw := m.OrderID.Bytes()
		orderID = &raw
	}
	return StockMovementDTO{
		ID:             m.ID.Bytes(),
		ProductID:      m.ProductID.Bytes(),
		Kind:           string(m.Kind),
		AvailableDelta: m.AvailableDelta,
		ReservedDelta:  m.ReservedDelta,
		AvailableAfter: m.AvailableAfter,
		ReservedAfter:  m.ReservedAfter,
		OrderID:        orderID,
		Reason:         string(m.Reason),
		Notes:          m.Notes,
		Actor:          m.Actor,
		CreatedAt:      m.CreatedAt,
	}
}

type GormStockMovementRepository struct {
	db *gorm.DB
}

func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

func (r *GormStockMovementRepository) Append(ctx context.Context, movements ...product.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	dtos := make([]StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		dtos = append(dtos, fromDomain(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}
