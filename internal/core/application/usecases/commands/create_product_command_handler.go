package commands

import (
	"context"

	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	tracer     trace.Tracer
}

func NewCreateProductCommandHandler(uowFactory ProductUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		tracer:     tracing.Tracer("commands"),
	}
}

// Handle validates the product aggregate and stores it. A duplicate code is
// reported by the repository.
func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	return tracing.Traced(ctx, h.tracer, "CreateProduct", func(ctx context.Context) (*product.Product, error) {
		return h.handle(ctx, cmd)
	}, attribute.String("product.code", cmd.Code()))
}

func (h CreateProductCommandHandler) handle(ctx context.Context, cmd CreateProductCommand) (*product.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := product.NewProduct(cmd.ProductID(), cmd.Code(), cmd.Name(), cmd.Capacity(), cmd.Requirements())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
