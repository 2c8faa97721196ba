package queries

import (
	"time"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// OrderView is the read shape of an order. Command results are converted to
// it as well so both sides of the API render orders the same way.
type OrderView struct {
	ID               kernel.UUID
	Code             string
	CustomerID       *kernel.UUID
	Status           order.Status
	SkipProduction   bool
	ProductionMode   production.Mode
	TableCount       int
	Items            []OrderItemView
	ProductionLines  []order.ProductionLine
	BobbinSelections []order.BobbinSelection
	Total            decimal.Decimal
	CreatedBy        string
	UpdatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderItemView struct {
	ProductID   kernel.UUID
	ProductCode string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ProductionQuantity sums the production lines.
func (v OrderView) ProductionQuantity() int {
	total := 0
	for _, l := range v.ProductionLines {
		total += l.Quantity
	}
	return total
}

func OrderViewFromDomain(o *order.Order) OrderView {
	v := OrderView{
		ID:               o.ID(),
		Code:             o.Code(),
		CustomerID:       o.CustomerID(),
		Status:           o.Status(),
		SkipProduction:   o.SkipProduction(),
		ProductionMode:   o.ProductionMode(),
		TableCount:       o.TableCount(),
		ProductionLines:  o.ProductionLines(),
		BobbinSelections: o.BobbinSelections(),
		Total:            o.Total(),
		CreatedBy:        o.CreatedBy(),
		UpdatedBy:        o.UpdatedBy(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
	for _, it := range o.Items() {
		v.Items = append(v.Items, OrderItemView{
			ProductID:   it.ProductID(),
			ProductCode: it.ProductCode(),
			ProductName: it.ProductName(),
			Quantity:    it.Quantity(),
			UnitPrice:   it.UnitPrice(),
			Subtotal:    it.Subtotal(),
		})
	}
	return v
}

// OrderSummary is one row of the order list.
type OrderSummary struct {
	ID             kernel.UUID
	Code           string
	CustomerID     *kernel.UUID
	Status         order.Status
	SkipProduction bool
	ItemCount      int
	TotalQuantity  int
	Total          decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ProductView struct {
	ID        kernel.UUID
	Code      string
	Name      string
	Capacity  int
	Filaments []FilamentView
	Available int
	Reserved  int
	Version   int64
}

// Total is available plus reserved.
func (v ProductView) Total() int {
	return v.Available + v.Reserved
}

type FilamentView struct {
	Type          string
	Color         string
	WeightPerUnit float64
}

func ProductViewFromDomain(p *product.Product) ProductView {
	v := ProductView{
		ID:        p.ID(),
		Code:      p.Code(),
		Name:      p.Name(),
		Capacity:  p.Capacity(),
		Available: p.Stock().Available,
		Reserved:  p.Stock().Reserved,
		Version:   p.Version(),
		Filaments: make([]FilamentView, 0, len(p.Requirements())),
	}
	for _, r := range p.Requirements() {
		v.Filaments = append(v.Filaments, FilamentView{
			Type:          r.Material().Type(),
			Color:         r.Material().Color(),
			WeightPerUnit: r.WeightPerUnit(),
		})
	}
	return v
}

type BobbinView struct {
	ID              kernel.UUID
	Type            string
	Color           string
	Brand           string
	TotalWeight     float64
	RemainingWeight float64
}

func BobbinViewFromDomain(b *bobbin.Bobbin) BobbinView {
	return BobbinView{
		ID:              b.ID(),
		Type:            b.Material().Type(),
		Color:           b.Material().Color(),
		Brand:           b.Brand(),
		TotalWeight:     b.TotalWeight(),
		RemainingWeight: b.RemainingWeight(),
	}
}

// AllocationView reports the allocator's choice for every requirement.
// Unsatisfied requirements carry the reason instead of a bobbin.
type AllocationView struct {
	Quantity   int
	Policy     string
	Satisfied  bool
	Selections []SelectionView
}

type SelectionView struct {
	RequirementKey string
	Type           string
	Color          string
	Needed         float64
	BobbinID       *kernel.UUID
	Remaining      float64
	Error          string
}

func allocationView(a services.Allocation, quantity int, policy services.SufficiencyPolicy) AllocationView {
	v := AllocationView{
		Quantity:   quantity,
		Policy:     policy.String(),
		Satisfied:  a.Satisfied(),
		Selections: make([]SelectionView, 0, len(a.Selections)),
	}
	for _, s := range a.Selections {
		sv := SelectionView{
			RequirementKey: s.Requirement.Key(),
			Type:           s.Requirement.Material().Type(),
			Color:          s.Requirement.Material().Color(),
			Needed:         s.Needed,
			BobbinID:       s.BobbinID,
			Remaining:      s.Remaining,
		}
		if s.Err != nil {
			sv.Error = s.Err.Error()
		}
		v.Selections = append(v.Selections, sv)
	}
	return v
}
