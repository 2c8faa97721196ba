package commands

import (
	"context"

	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReduceStockCommandHandler applies a manual write-off. It bypasses the order
// lifecycle entirely and commits immediately.
//
// Example:
//
//	cmd, _ := NewReduceStockCommand(productID, 5, "defective", "layer shift", "alice")
//	p, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, product.ErrInsufficientStock) {
//	    // fewer than 5 units available, nothing changed
//	}
type ReduceStockCommandHandler struct {
	uowFactory ProductUoWFactory
	tracer     trace.Tracer
}

func NewReduceStockCommandHandler(uowFactory ProductUoWFactory) ReduceStockCommandHandler {
	return ReduceStockCommandHandler{
		uowFactory: uowFactory,
		tracer:     tracing.Tracer("commands"),
	}
}

func (h ReduceStockCommandHandler) Handle(ctx context.Context, cmd ReduceStockCommand) (*product.Product, error) {
	return tracing.Traced(ctx, h.tracer, "ReduceStock", func(ctx context.Context) (*product.Product, error) {
		return h.handle(ctx, cmd)
	},
		attribute.String("product.id", cmd.ProductID().String()),
		attribute.Int("stock.quantity", cmd.Quantity()),
		attribute.String("stock.reason", cmd.Reason().String()),
	)
}

func (h ReduceStockCommandHandler) handle(ctx context.Context, cmd ReduceStockCommand) (*product.Product, error) {
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
	products, err := productRepo.GetForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}
	byID := indexProducts(products)
	p, err := requireProduct(byID, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	m, err := p.Deduct(cmd.Quantity(), cmd.Reason(), cmd.Notes(), cmd.Actor())
	if err != nil {
		return nil, err
	}

	if err = saveStock(ctx, productRepo, uow.StockMovementRepository(), byID, []product.StockMovement{m}); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
