package services

import (
	"errors"
	"fmt"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/pkg/errs"
)

// TransitionRequest is a status change asked of OrderFulfillment.Advance.
//
// Plan applies to every product on the order; PerProduct overrides it for
// individual products. Tray plans get their capacity from the product.
type TransitionRequest struct {
	Target         order.Status
	SkipProduction *bool
	Plan           *production.Plan
	PerProduct     map[kernel.UUID]production.Plan
	Selections     []order.BobbinSelection
	Actor          string
}

// OrderFulfillment is the only code path that moves an order through its
// lifecycle while touching product stock. Callers load the order, its
// products and (for PRODUCING) the bobbins inside one unit of work, call a
// method here and persist whatever it mutated.
//
// Transition side effects:
//
//	(new)     -> PENDING    Reserve each line item
//	PENDING   -> PRODUCING  record production lines and bobbin selections
//	PRODUCING -> PRODUCED   Produce each production line (unless skipping)
//	any live  -> CANCELLED  Release each line item
type OrderFulfillment struct {
	allocator BobbinAllocator
}

func NewOrderFulfillment(allocator BobbinAllocator) OrderFulfillment {
	return OrderFulfillment{allocator: allocator}
}

func (f OrderFulfillment) Allocator() BobbinAllocator {
	return f.allocator
}

// Place reserves stock for every line of a freshly created order. It fails
// as a whole if any line cannot be reserved.
func (f OrderFulfillment) Place(
	o *order.Order,
	products map[kernel.UUID]*product.Product,
	actor string,
) ([]product.StockMovement, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Pending {
		return nil, &order.InvalidTransitionError{From: o.Status(), To: order.Pending}
	}

	movements := make([]product.StockMovement, 0, len(o.Items()))
	for _, it := range o.Items() {
		p, err := lookupProduct(products, it.ProductID())
		if err != nil {
			return nil, err
		}
		m, err := p.Reserve(it.Quantity(), o.ID(), actor)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

// Advance applies one forward transition. Requesting the current status is
// a no-op. Cancellation is not a forward transition; use Cancel.
func (f OrderFulfillment) Advance(
	o *order.Order,
	req TransitionRequest,
	products map[kernel.UUID]*product.Product,
	bobbins []*bobbin.Bobbin,
) ([]product.StockMovement, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := req.Target.Validate(); err != nil {
		return nil, err
	}
	if o.Status() == req.Target {
		return nil, nil
	}
	if err := o.Status().CanTransitionTo(req.Target); err != nil {
		return nil, err
	}

	skip, err := o.EffectiveSkipProduction(req.SkipProduction)
	if err != nil {
		return nil, err
	}

	switch req.Target {
	case order.Producing:
		run, err := f.planRun(o, req, skip, products, bobbins)
		if err != nil {
			return nil, err
		}
		return nil, o.StartProduction(run, req.Actor)

	case order.Produced:
		if err := o.CompleteProduction(req.Actor); err != nil {
			return nil, err
		}
		if o.SkipProduction() {
			return nil, nil
		}
		return f.produce(o, products, req.Actor)

	case order.Preparing:
		return nil, o.StartPreparing(req.Actor)

	case order.Ready:
		return nil, o.MarkReady(req.Actor)

	default:
		return nil, &order.InvalidTransitionError{From: o.Status(), To: req.Target}
	}
}

// Cancel makes the order terminal and releases its reservation. Units
// already produced stay in available stock.
func (f OrderFulfillment) Cancel(
	o *order.Order,
	products map[kernel.UUID]*product.Product,
	confirmed bool,
	actor string,
) ([]product.StockMovement, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.Cancel(confirmed, actor); err != nil {
		return nil, err
	}

	movements := make([]product.StockMovement, 0, len(o.Items()))
	for _, it := range o.Items() {
		p, err := lookupProduct(products, it.ProductID())
		if err != nil {
			return nil, err
		}
		m, err := p.Release(it.Quantity(), o.ID(), actor)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func (f OrderFulfillment) produce(
	o *order.Order,
	products map[kernel.UUID]*product.Product,
	actor string,
) ([]product.StockMovement, error) {
	lines := o.ProductionLines()
	movements := make([]product.StockMovement, 0, len(lines))
	for _, l := range lines {
		p, err := lookupProduct(products, l.ProductID)
		if err != nil {
			return nil, err
		}
		m, err := p.Produce(l.Quantity, o.ID(), actor)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func (f OrderFulfillment) planRun(
	o *order.Order,
	req TransitionRequest,
	skip bool,
	products map[kernel.UUID]*product.Product,
	bobbins []*bobbin.Bobbin,
) (order.ProductionRun, error) {
	if skip {
		return order.ProductionRun{SkipProduction: true}, nil
	}

	if err := checkSelectionsOnOrder(o, req.Selections); err != nil {
		return order.ProductionRun{}, err
	}

	run := order.ProductionRun{}
	plans := make([]production.Plan, 0, len(o.Items()))
	var unsatisfied error
	for _, it := range o.Items() {
		p, err := lookupProduct(products, it.ProductID())
		if err != nil {
			return order.ProductionRun{}, err
		}

		plan, err := planFor(req, p)
		if err != nil {
			return order.ProductionRun{}, err
		}
		qty, err := plan.Resolve()
		if err != nil {
			return order.ProductionRun{}, fmt.Errorf("product %s: %w", p.Code(), err)
		}
		plans = append(plans, plan)
		run.Lines = append(run.Lines, order.ProductionLine{ProductID: p.ID(), Quantity: qty})

		selections, err := f.selectBobbins(p, qty, req.Selections, bobbins)
		if err != nil {
			var unsat *UnsatisfiableFilamentRequirementError
			if !errors.As(err, &unsat) {
				return order.ProductionRun{}, err
			}
			unsatisfied = errors.Join(unsatisfied, fmt.Errorf("product %s: %w", p.Code(), err))
			continue
		}
		run.Selections = append(run.Selections, selections...)
	}
	if unsatisfied != nil {
		return order.ProductionRun{}, unsatisfied
	}
	run.Mode, run.TableCount = recordedShape(req.Plan, plans)
	return run, nil
}

// recordedShape picks the mode and table count stored on the order. The
// order-wide plan wins. Without one, per-product plans are recorded only
// when they all agree.
func recordedShape(shared *production.Plan, plans []production.Plan) (production.Mode, int) {
	if shared != nil {
		return shared.Mode(), shared.TableCount()
	}
	if len(plans) == 0 {
		return production.ModeUnknown, 0
	}
	mode, tables := plans[0].Mode(), plans[0].TableCount()
	for _, p := range plans[1:] {
		if p.Mode() != mode {
			return production.ModeUnknown, 0
		}
		if p.TableCount() != tables {
			tables = 0
		}
	}
	return mode, tables
}

func checkSelectionsOnOrder(o *order.Order, selections []order.BobbinSelection) error {
	for _, s := range selections {
		onOrder := false
		for _, it := range o.Items() {
			if it.ProductID().IsEqual(s.ProductID) {
				onOrder = true
				break
			}
		}
		if !onOrder {
			return errs.NewValueIsInvalidErrorWithCause(
				"bobbin selection is invalid",
				fmt.Errorf("product %s is not on the order", s.ProductID),
			)
		}
	}
	return nil
}

// selectBobbins merges explicit selections with the allocator's choice.
// An explicit selection wins and skips the sufficiency check.
func (f OrderFulfillment) selectBobbins(
	p *product.Product,
	qty int,
	explicit []order.BobbinSelection,
	bobbins []*bobbin.Bobbin,
) ([]order.BobbinSelection, error) {
	picked := make(map[string]kernel.UUID)
	for _, s := range explicit {
		if !s.ProductID.IsEqual(p.ID()) {
			continue
		}
		req, ok := p.RequirementFor(s.RequirementKey)
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"bobbin selection is invalid",
				fmt.Errorf("product %s has no %s requirement", p.Code(), s.RequirementKey),
			)
		}
		b := findBobbin(bobbins, s.BobbinID)
		if b == nil {
			return nil, errs.NewObjectNotFoundError("bobbin", s.BobbinID)
		}
		if !b.Material().Matches(req.Material()) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"bobbin selection is invalid",
				fmt.Errorf("bobbin %s holds %s, requirement needs %s", b.ID(), b.Material(), req.Material()),
			)
		}
		picked[req.Key()] = b.ID()
	}

	alloc := f.allocator.Allocate(p.Requirements(), bobbins, qty)
	selections := make([]order.BobbinSelection, 0, len(alloc.Selections))
	var unsatisfied error
	for _, s := range alloc.Selections {
		key := s.Requirement.Key()
		if id, ok := picked[key]; ok {
			selections = append(selections, order.BobbinSelection{ProductID: p.ID(), RequirementKey: key, BobbinID: id})
			continue
		}
		if s.Err != nil {
			unsatisfied = errors.Join(unsatisfied, s.Err)
			continue
		}
		selections = append(selections, order.BobbinSelection{ProductID: p.ID(), RequirementKey: key, BobbinID: *s.BobbinID})
	}
	if unsatisfied != nil {
		return nil, unsatisfied
	}
	return selections, nil
}

func planFor(req TransitionRequest, p *product.Product) (production.Plan, error) {
	plan, ok := req.PerProduct[p.ID()]
	if !ok {
		if req.Plan == nil {
			return production.Plan{}, errs.NewValueIsRequiredErrorWithCause(
				"production quantity", fmt.Errorf("no production plan for product %s", p.Code()))
		}
		plan = *req.Plan
	}
	if plan.Mode() == production.ModeTray {
		plan.SetCapacity(p.Capacity())
	}
	return plan, nil
}

func lookupProduct(products map[kernel.UUID]*product.Product, id kernel.UUID) (*product.Product, error) {
	p, ok := products[id]
	if !ok || p == nil {
		return nil, errs.NewObjectNotFoundError("product", id)
	}
	return p, nil
}

func findBobbin(bobbins []*bobbin.Bobbin, id kernel.UUID) *bobbin.Bobbin {
	for _, b := range bobbins {
		if b != nil && b.ID().IsEqual(id) {
			return b
		}
	}
	return nil
}
