package commands

import (
	"errors"
	"fmt"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusParams holds the optional parts of a status change. Only
// PENDING -> PRODUCING reads the production fields; only a cancellation of
// a READY order reads Confirm.
type SetOrderStatusParams struct {
	ProductionQuantity *int
	ProductionType     *production.Mode
	TableCount         *int
	// ProductQuantities overrides the unit count for individual products.
	ProductQuantities map[kernel.UUID]int
	SkipProduction    *bool
	BobbinSelections  []order.BobbinSelection
	Confirm           bool
	Actor             string
}

type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	params  SetOrderStatusParams

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	params SetOrderStatusParams,
) (SetOrderStatusCommand, error) {
	var typeErr error
	if params.ProductionType != nil && *params.ProductionType != production.ModeTray &&
		*params.ProductionType != production.ModeUnit {
		typeErr = errs.NewValueIsInvalidErrorWithCause(
			"production type is invalid", fmt.Errorf("%s is neither tray nor unit", *params.ProductionType))
	}

	var selectionErr error
	for _, s := range params.BobbinSelections {
		selectionErr = errors.Join(selectionErr, s.ProductID.Validate(), s.BobbinID.Validate())
	}

	if err := errors.Join(orderID.Validate(), target.Validate(), typeErr, selectionErr); err != nil {
		return SetOrderStatusCommand{}, err
	}

	params.Actor = normalizeActor(params.Actor)
	params.BobbinSelections = append([]order.BobbinSelection(nil), params.BobbinSelections...)
	if params.ProductQuantities != nil {
		quantities := make(map[kernel.UUID]int, len(params.ProductQuantities))
		for id, q := range params.ProductQuantities {
			quantities[id] = q
		}
		params.ProductQuantities = quantities
	}

	return SetOrderStatusCommand{
		orderID: orderID,
		target:  target,
		params:  params,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c SetOrderStatusCommand) Target() order.Status { return c.target }
func (c SetOrderStatusCommand) SkipProduction() *bool { return c.params.SkipProduction }
func (c SetOrderStatusCommand) Confirm() bool { return c.params.Confirm }
func (c SetOrderStatusCommand) Actor() string { return c.params.Actor }

func (c SetOrderStatusCommand) BobbinSelections() []order.BobbinSelection {
	return append([]order.BobbinSelection(nil), c.params.BobbinSelections...)
}

// Plan derives the order-wide production plan. A tray type, or a table
// count given without a unit count, selects tray mode; otherwise the unit
// count is used. It returns nil when neither was supplied.
func (c SetOrderStatusCommand) Plan() *production.Plan {
	p := c.params
	trays := p.ProductionType != nil && *p.ProductionType == production.ModeTray
	if p.ProductionType == nil && p.TableCount != nil && p.ProductionQuantity == nil {
		trays = true
	}

	switch {
	case trays:
		tables := 0
		if p.TableCount != nil {
			tables = *p.TableCount
		}
		plan := production.NewTrayPlan(tables, 0)
		return &plan
	case p.ProductionQuantity != nil:
		plan := production.NewUnitPlan(*p.ProductionQuantity)
		return &plan
	case p.ProductionType != nil:
		plan := production.NewUnitPlan(0)
		return &plan
	default:
		return nil
	}
}

// PerProduct returns unit plans for products with an explicit quantity.
func (c SetOrderStatusCommand) PerProduct() map[kernel.UUID]production.Plan {
	if len(c.params.ProductQuantities) == 0 {
		return nil
	}
	plans := make(map[kernel.UUID]production.Plan, len(c.params.ProductQuantities))
	for id, q := range c.params.ProductQuantities {
		plans[id] = production.NewUnitPlan(q)
	}
	return plans
}
