package commands

import (
	"context"

	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DeleteOrderCommandHandler releases a live order's reservation, marks it
// CANCELLED and soft-deletes it in one transaction. An order that is already
// cancelled is only soft-deleted.
type DeleteOrderCommandHandler struct {
	uowFactory  UoWFactory
	fulfillment services.OrderFulfillment
	tracer      trace.Tracer
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, fulfillment services.OrderFulfillment) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory:  uowFactory,
		fulfillment: fulfillment,
		tracer:      tracing.Tracer("commands"),
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	_, err := tracing.Traced(ctx, h.tracer, "DeleteOrder", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.handle(ctx, cmd)
	}, attribute.String("order.id", cmd.OrderID().String()))
	return err
}

func (h DeleteOrderCommandHandler) handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status() != order.Cancelled {
		if err = o.Status().CanCancel(cmd.Confirm()); err != nil {
			return err
		}

		productRepo := uow.ProductRepository()
		products, err := productRepo.GetForUpdate(ctx, orderProductIDs(o)...)
		if err != nil {
			return err
		}
		byID := indexProducts(products)

		movements, err := h.fulfillment.Cancel(o, byID, cmd.Confirm(), cmd.Actor())
		if err != nil {
			return err
		}
		if err = saveStock(ctx, productRepo, uow.StockMovementRepository(), byID, movements); err != nil {
			return err
		}
	}

	if err = orderRepo.Delete(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
