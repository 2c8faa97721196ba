package commands

import (
	"context"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SetOrderStatusCommandHandler is the single entry point for moving an order
// through its lifecycle. It locks the order row, then the products on it in
// id order, applies the transition with its stock side effects and commits
// both together.
//
// Requesting the status the order already has returns the order unchanged
// without writing anything.
//
// Example:
//
//	qty := 20
//	cmd, _ := NewSetOrderStatusCommand(orderID, order.Producing, SetOrderStatusParams{
//	    ProductionQuantity: &qty,
//	    Actor:              "alice",
//	})
//	o, err := handler.Handle(ctx, cmd)
//	var unsat *services.UnsatisfiableFilamentRequirementError
//	if errors.As(err, &unsat) {
//	    // no spool holds enough unsat.Material
//	}
type SetOrderStatusCommandHandler struct {
	uowFactory  UoWFactory
	fulfillment services.OrderFulfillment
	tracer      trace.Tracer
}

func NewSetOrderStatusCommandHandler(
	uowFactory UoWFactory,
	fulfillment services.OrderFulfillment,
) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		fulfillment: fulfillment,
		tracer:      tracing.Tracer("commands"),
	}
}

func (h SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (*order.Order, error) {
	return tracing.Traced(ctx, h.tracer, "SetOrderStatus", func(ctx context.Context) (*order.Order, error) {
		return h.handle(ctx, cmd)
	},
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.target_status", cmd.Target().String()),
	)
}

func (h SetOrderStatusCommandHandler) handle(ctx context.Context, cmd SetOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if o.Status() == cmd.Target() {
		return o, nil
	}
	if err = checkTransition(o, cmd); err != nil {
		return nil, err
	}

	productRepo := uow.ProductRepository()
	var byID map[kernel.UUID]*product.Product
	if needsProducts(cmd.Target()) {
		products, err := productRepo.GetForUpdate(ctx, orderProductIDs(o)...)
		if err != nil {
			return nil, err
		}
		byID = indexProducts(products)
	}

	var movements []product.StockMovement
	if cmd.Target() == order.Cancelled {
		movements, err = h.fulfillment.Cancel(o, byID, cmd.Confirm(), cmd.Actor())
	} else {
		movements, err = h.advance(ctx, uow, o, cmd, byID)
	}
	if err != nil {
		return nil, err
	}

	if err = saveStock(ctx, productRepo, uow.StockMovementRepository(), byID, movements); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h SetOrderStatusCommandHandler) advance(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	cmd SetOrderStatusCommand,
	byID map[kernel.UUID]*product.Product,
) ([]product.StockMovement, error) {
	var bobbins []*bobbin.Bobbin
	if cmd.Target() == order.Producing {
		skip, err := o.EffectiveSkipProduction(cmd.SkipProduction())
		if err != nil {
			return nil, err
		}
		if !skip {
			if bobbins, err = uow.BobbinRepository().GetAll(ctx); err != nil {
				return nil, err
			}
		}
	}

	return h.fulfillment.Advance(o, services.TransitionRequest{
		Target:         cmd.Target(),
		SkipProduction: cmd.SkipProduction(),
		Plan:           cmd.Plan(),
		PerProduct:     cmd.PerProduct(),
		Selections:     cmd.BobbinSelections(),
		Actor:          cmd.Actor(),
	}, byID, bobbins)
}

// checkTransition rejects an illegal target before any product row is locked.
func checkTransition(o *order.Order, cmd SetOrderStatusCommand) error {
	if cmd.Target() == order.Cancelled {
		return o.Status().CanCancel(cmd.Confirm())
	}
	return o.Status().CanTransitionTo(cmd.Target())
}

func needsProducts(target order.Status) bool {
	return target == order.Producing || target == order.Produced || target == order.Cancelled
}

func orderProductIDs(o *order.Order) []kernel.UUID {
	items := o.Items()
	ids := make([]kernel.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID())
	}
	return ids
}
