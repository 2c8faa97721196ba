package commands

import (
	"context"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ConsumeFilamentCommandHandler row-locks the spool, decrements it and
// commits. Asking for more than the spool holds fails with
// bobbin.ErrInsufficientFilament and leaves it untouched.
type ConsumeFilamentCommandHandler struct {
	uowFactory BobbinUoWFactory
	tracer     trace.Tracer
}

func NewConsumeFilamentCommandHandler(uowFactory BobbinUoWFactory) ConsumeFilamentCommandHandler {
	return ConsumeFilamentCommandHandler{
		uowFactory: uowFactory,
		tracer:     tracing.Tracer("commands"),
	}
}

func (h ConsumeFilamentCommandHandler) Handle(ctx context.Context, cmd ConsumeFilamentCommand) (*bobbin.Bobbin, error) {
	return tracing.Traced(ctx, h.tracer, "ConsumeFilament", func(ctx context.Context) (*bobbin.Bobbin, error) {
		return h.handle(ctx, cmd)
	},
		attribute.String("bobbin.id", cmd.BobbinID().String()),
		attribute.Float64("bobbin.grams", cmd.Grams()),
	)
}

func (h ConsumeFilamentCommandHandler) handle(ctx context.Context, cmd ConsumeFilamentCommand) (*bobbin.Bobbin, error) {
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

	repo := uow.BobbinRepository()
	b, err := repo.GetForUpdate(ctx, cmd.BobbinID())
	if err != nil {
		return nil, err
	}

	if err = b.Consume(cmd.Grams()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}
