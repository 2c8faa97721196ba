// Package orderrepo maps the order aggregate onto the orders table and its
// child tables.
package orderrepo

import (
	"time"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code           string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_orders_code"`
	CustomerID     *uuid.UUID `gorm:"type:uuid;index"`
	Status         int        `gorm:"type:smallint;not null;index"`
	SkipProduction bool       `gorm:"not null;default:false"`
	ProductionMode int        `gorm:"type:smallint;not null;default:0"`
	TableCount     int        `gorm:"not null;default:0"`
	CreatedBy      string     `gorm:"type:varchar(255);not null"`
	UpdatedBy      string     `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	Items           []OrderItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ProductionLines []ProductionLineDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Selections      []BobbinSelectionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type OrderItemDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductCode string          `gorm:"type:varchar(64);not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	Quantity    int             `gorm:"not null;check:quantity > 0"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type ProductionLineDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null"`
}

func (ProductionLineDTO) TableName() string {
	return "order_production_lines"
}

type BobbinSelectionDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequirementKey string    `gorm:"type:varchar(128);primaryKey"`
	BobbinID       uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (BobbinSelectionDTO) TableName() string {
	return "order_bobbin_selections"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	var customerID *uuid.UUID
	if c := o.CustomerID(); c != nil {
		raw := c.Bytes()
		customerID = &raw
	}

	dto := OrderDTO{
		ID:             id,
		Code:           o.Code(),
		CustomerID:     customerID,
		Status:         int(o.Status()),
		SkipProduction: o.SkipProduction(),
		ProductionMode: int(o.ProductionMode()),
		TableCount:     o.TableCount(),
		CreatedBy:      o.CreatedBy(),
		UpdatedBy:      o.UpdatedBy(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}

	for i, it := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:     id,
			Position:    i,
			ProductID:   it.ProductID().Bytes(),
			ProductCode: it.ProductCode(),
			ProductName: it.ProductName(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
		})
	}
	dto.ProductionLines = productionLinesFromDomain(id, o.ProductionLines())
	dto.Selections = selectionsFromDomain(id, o.BobbinSelections())

	return dto
}

func productionLinesFromDomain(orderID uuid.UUID, lines []order.ProductionLine) []ProductionLineDTO {
	dtos := make([]ProductionLineDTO, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, ProductionLineDTO{OrderID: orderID, ProductID: l.ProductID.Bytes(), Quantity: l.Quantity})
	}
	return dtos
}

func selectionsFromDomain(orderID uuid.UUID, selections []order.BobbinSelection) []BobbinSelectionDTO {
	dtos := make([]BobbinSelectionDTO, 0, len(selections))
	for _, s := range selections {
		dtos = append(dtos, BobbinSelectionDTO{
			OrderID:        orderID,
			ProductID:      s.ProductID.Bytes(),
			RequirementKey: s.RequirementKey,
			BobbinID:       s.BobbinID.Bytes(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	items := make([]order.LineItem, len(dto.Items))
	for _, it := range dto.Items {
		if it.Position < 0 || it.Position >= len(items) {
			return nil, errs.NewValueIsOutOfRangeError("item position", it.Position, 0, len(items)-1)
		}
		productID, pErr := kernel.UUIDFromBytes(it.ProductID[:])
		if pErr != nil {
			return nil, pErr
		}
		li, liErr := order.NewLineItem(productID, it.ProductCode, it.ProductName, it.Quantity, it.UnitPrice)
		if liErr != nil {
			return nil, liErr
		}
		items[it.Position] = li
	}

	lines := make([]order.ProductionLine, 0, len(dto.ProductionLines))
	for _, l := range dto.ProductionLines {
		productID, pErr := kernel.UUIDFromBytes(l.ProductID[:])
		if pErr != nil {
			return nil, pErr
		}
		lines = append(lines, order.ProductionLine{ProductID: productID, Quantity: l.Quantity})
	}

	selections := make([]order.BobbinSelection, 0, len(dto.Selections))
	for _, s := range dto.Selections {
		productID, pErr := kernel.UUIDFromBytes(s.ProductID[:])
		if pErr != nil {
			return nil, pErr
		}
		bobbinID, bErr := kernel.UUIDFromBytes(s.BobbinID[:])
		if bErr != nil {
			return nil, bErr
		}
		selections = append(selections, order.BobbinSelection{
			ProductID:      productID,
			RequirementKey: s.RequirementKey,
			BobbinID:       bobbinID,
		})
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:             id,
		Code:           dto.Code,
		CustomerID:     customerID,
		Items:          items,
		Status:         order.Status(dto.Status),
		SkipProduction: dto.SkipProduction,
		ProductionMode: production.Mode(dto.ProductionMode),
		TableCount:     dto.TableCount,
		Production:     lines,
		Selections:     selections,
		CreatedBy:      dto.CreatedBy,
		UpdatedBy:      dto.UpdatedBy,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
	})
}
