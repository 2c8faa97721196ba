package commands

import (
	"context"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type CreateBobbinCommandHandler struct {
	uowFactory BobbinUoWFactory
	tracer     trace.Tracer
}

func NewCreateBobbinCommandHandler(uowFactory BobbinUoWFactory) CreateBobbinCommandHandler {
	return CreateBobbinCommandHandler{
		uowFactory: uowFactory,
		tracer:     tracing.Tracer("commands"),
	}
}

func (h CreateBobbinCommandHandler) Handle(ctx context.Context, cmd CreateBobbinCommand) (*bobbin.Bobbin, error) {
	return tracing.Traced(ctx, h.tracer, "CreateBobbin", func(ctx context.Context) (*bobbin.Bobbin, error) {
		return h.handle(ctx, cmd)
	}, attribute.String("bobbin.material", cmd.Material().Key()))
}

func (h CreateBobbinCommandHandler) handle(ctx context.Context, cmd CreateBobbinCommand) (*bobbin.Bobbin, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	b, err := bobbin.RestoreBobbin(cmd.BobbinID(), cmd.Material(), cmd.Brand(), cmd.TotalWeight(), cmd.RemainingWeight())
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

	if err = uow.BobbinRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
