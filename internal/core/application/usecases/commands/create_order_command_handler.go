package commands

import (
	"context"
	"time"

	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CreateOrderCommandHandler creates a Pending order and reserves every line
// in the same transaction. If any line cannot be reserved nothing is stored.
//
// Example:
//
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), nil, []OrderItem{
//	    {ProductID: keychainID, Quantity: 10, UnitPrice: decimal.RequireFromString("12.50")},
//	}, false, "alice")
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, product.ErrInsufficientStock) {
//	    // not enough available units to reserve
//	}
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	fulfillment services.OrderFulfillment
	tracer      trace.Tracer
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, fulfillment services.OrderFulfillment) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		fulfillment: fulfillment,
		tracer:      tracing.Tracer("commands"),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	return tracing.Traced(ctx, h.tracer, "CreateOrder", func(ctx context.Context) (*order.Order, error) {
		return h.handle(ctx, cmd)
	},
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.Int("order.items", len(cmd.Items())),
	)
}

func (h CreateOrderCommandHandler) handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	productRepo := uow.ProductRepository()
	products, err := productRepo.GetForUpdate(ctx, cmd.ProductIDs()...)
	if err != nil {
		return nil, err
	}
	byID := indexProducts(products)

	items := make([]order.LineItem, 0, len(cmd.Items()))
	for _, it := range cmd.Items() {
		p, err := requireProduct(byID, it.ProductID)
		if err != nil {
			return nil, err
		}
		li, err := order.NewLineItem(p.ID(), p.Code(), p.Name(), it.Quantity, it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		order.NewCode(time.Now().UTC()),
		cmd.CustomerID(),
		items,
		cmd.SkipProduction(),
		cmd.Actor(),
	)
	if err != nil {
		return nil, err
	}

	movements, err := h.fulfillment.Place(o, byID, cmd.Actor())
	if err != nil {
		return nil, err
	}

	if err = saveStock(ctx, productRepo, uow.StockMovementRepository(), byID, movements); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
