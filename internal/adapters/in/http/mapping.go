package http

import (
	"printfarm/internal/core/application/usecases/queries"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/generated/servers"
	"printfarm/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// bindBody decodes the JSON body and runs the registered validator on it.
func bindBody(ctx echo.Context, dst any) error {
	if err := ctx.Bind(dst); err != nil {
		return err
	}
	return ctx.Validate(dst)
}

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return u, nil
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	u := id.Bytes()
	return &u
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toProduct(v queries.ProductView) servers.Product {
	filaments := make([]servers.Filament, 0, len(v.Filaments))
	for _, f := range v.Filaments {
		filaments = append(filaments, servers.Filament{Type: f.Type, Color: f.Color, Weight: f.WeightPerUnit})
	}
	return servers.Product{
		Id:             v.ID.Bytes(),
		Code:           v.Code,
		Name:           v.Name,
		Capacity:       v.Capacity,
		Filaments:      filaments,
		AvailableStock: v.Available,
		ReservedStock:  v.Reserved,
		TotalStock:     v.Total(),
		Version:        v.Version,
	}
}

func toStockMovement(m queries.MovementView) servers.StockMovement {
	return servers.StockMovement{
		Id:             m.ID.Bytes(),
		ProductId:      m.ProductID.Bytes(),
		Kind:           string(m.Kind),
		AvailableDelta: m.AvailableDelta,
		ReservedDelta:  m.ReservedDelta,
		AvailableAfter: m.AvailableAfter,
		ReservedAfter:  m.ReservedAfter,
		OrderId:        optionalID(m.OrderID),
		Reason:         nonEmpty(string(m.Reason)),
		Notes:          nonEmpty(m.Notes),
		Actor:          m.Actor,
		CreatedAt:      m.CreatedAt,
	}
}

func toBobbin(v queries.BobbinView) servers.Bobbin {
	return servers.Bobbin{
		Id:              v.ID.Bytes(),
		Type:            v.Type,
		Color:           v.Color,
		Brand:           v.Brand,
		TotalWeight:     v.TotalWeight,
		RemainingWeight: v.RemainingWeight,
	}
}

func toAllocation(v queries.AllocationView) servers.Allocation {
	selections := make([]servers.AllocationSelection, 0, len(v.Selections))
	for _, s := range v.Selections {
		sel := servers.AllocationSelection{
			RequirementKey: s.RequirementKey,
			Type:           s.Type,
			Color:          s.Color,
			Needed:         s.Needed,
			BobbinId:       optionalID(s.BobbinID),
			Error:          nonEmpty(s.Error),
		}
		if s.BobbinID != nil {
			remaining := s.Remaining
			sel.RemainingWeight = &remaining
		}
		selections = append(selections, sel)
	}
	return servers.Allocation{
		Quantity:   v.Quantity,
		Policy:     v.Policy,
		Satisfied:  v.Satisfied,
		Selections: selections,
	}
}

func toOrder(v queries.OrderView) servers.Order {
	items := make([]servers.OrderItem, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, servers.OrderItem{
			ProductId:   it.ProductID.Bytes(),
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Subtotal:    it.Subtotal.StringFixed(2),
		})
	}

	lines := make([]servers.ProductionLine, 0, len(v.ProductionLines))
	for _, l := range v.ProductionLines {
		lines = append(lines, servers.ProductionLine{ProductId: l.ProductID.Bytes(), Quantity: l.Quantity})
	}

	selections := make([]servers.BobbinSelection, 0, len(v.BobbinSelections))
	for _, s := range v.BobbinSelections {
		selections = append(selections, servers.BobbinSelection{
			ProductId:      s.ProductID.Bytes(),
			RequirementKey: s.RequirementKey,
			BobbinId:       s.BobbinID.Bytes(),
		})
	}

	o := servers.Order{
		Id:               v.ID.Bytes(),
		Code:             v.Code,
		CustomerId:       optionalID(v.CustomerID),
		Status:           v.Status.String(),
		StatusLabel:      v.Status.Label(),
		SkipProduction:   v.SkipProduction,
		Items:            items,
		ProductionLines:  lines,
		BobbinSelections: selections,
		Total:            v.Total.StringFixed(2),
		CreatedBy:        nonEmpty(v.CreatedBy),
		UpdatedBy:        nonEmpty(v.UpdatedBy),
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.ProductionMode != production.ModeUnknown {
		mode := v.ProductionMode.String()
		o.ProductionType = &mode
	}
	if v.TableCount > 0 {
		tables := v.TableCount
		o.TableCount = &tables
	}
	if len(v.ProductionLines) > 0 {
		qty := v.ProductionQuantity()
		o.ProductionQuantity = &qty
	}
	return o
}

func toOrderSummary(v queries.OrderSummary) servers.OrderSummary {
	return servers.OrderSummary{
		Id:             v.ID.Bytes(),
		Code:           v.Code,
		CustomerId:     optionalID(v.CustomerID),
		Status:         v.Status.String(),
		StatusLabel:    v.Status.Label(),
		SkipProduction: v.SkipProduction,
		ItemCount:      v.ItemCount,
		TotalQuantity:  v.TotalQuantity,
		Total:          v.Total.StringFixed(2),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
