package http

import (
	"fmt"
	"net/http"

	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/application/usecases/queries"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/generated/servers"
	"printfarm/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ListOrders handles GET /api/v1/orders, optionally filtered by status.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var status *order.Status
	if params.Status != nil && *params.Status != "" {
		st, err := s.decodeStatus(*params.Status)
		if err != nil {
			return err
		}
		status = &st
	}

	query, err := queries.NewListOrdersQuery(status)
	if err != nil {
		return err
	}

	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.OrderSummary, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderSummary(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders. Stock for every line is reserved
// before the order is stored.
func (s *Server) CreateOrder(ctx echo.Context, params servers.CreateOrderParams) error {
	var body servers.NewOrder
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	items := make([]commands.OrderItem, 0, len(body.Items))
	for i, it := range body.Items {
		productID, err := toKernelID(it.ProductId)
		if err != nil {
			return err
		}
		price := decimal.Zero
		if it.UnitPrice != nil {
			if price, err = decimal.NewFromString(*it.UnitPrice); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("item %d: %w", i, err))
			}
		}
		items = append(items, commands.OrderItem{ProductID: productID, Quantity: it.Quantity, UnitPrice: price})
	}

	var customerID *kernel.UUID
	if body.CustomerId != nil {
		id, err := toKernelID(*body.CustomerId)
		if err != nil {
			return err
		}
		customerID = &id
	}

	skip := body.SkipProduction != nil && *body.SkipProduction
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, items, skip, actorOf(params.XActorID))
	if err != nil {
		return err
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toOrder(queries.OrderViewFromDomain(o)))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderID) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	o, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// SetOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) SetOrderStatus(ctx echo.Context, orderId servers.OrderID, params servers.SetOrderStatusParams) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return err
	}

	var body servers.StatusChange
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	target, err := s.decodeStatus(body.Status)
	if err != nil {
		return err
	}

	cmdParams, err := statusParams(body)
	if err != nil {
		return err
	}
	cmdParams.Actor = actorOf(params.XActorID)

	cmd, err := commands.NewSetOrderStatusCommand(id, target, cmdParams)
	if err != nil {
		return err
	}

	o, err := s.h.SetOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(queries.OrderViewFromDomain(o)))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}. A live order is
// cancelled first so its reservation goes back to available stock.
func (s *Server) DeleteOrder(ctx echo.Context, orderId servers.OrderID, params servers.DeleteOrderParams) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return err
	}

	confirm := params.Confirm != nil && *params.Confirm
	cmd, err := commands.NewDeleteOrderCommand(id, confirm, actorOf(params.XActorID))
	if err != nil {
		return err
	}

	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func statusParams(body servers.StatusChange) (commands.SetOrderStatusParams, error) {
	p := commands.SetOrderStatusParams{
		ProductionQuantity: body.ProductionQuantity,
		TableCount:         body.TableCount,
		SkipProduction:     body.SkipProduction,
		Confirm:            body.Confirm != nil && *body.Confirm,
	}

	if body.ProductionType != nil {
		mode, err := production.ParseMode(string(*body.ProductionType))
		if err != nil {
			return commands.SetOrderStatusParams{}, err
		}
		p.ProductionType = &mode
	}

	if body.ProductQuantities != nil {
		p.ProductQuantities = make(map[kernel.UUID]int, len(*body.ProductQuantities))
		for raw, qty := range *body.ProductQuantities {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return commands.SetOrderStatusParams{}, errs.NewValueIsInvalidErrorWithCause("product quantities", err)
			}
			p.ProductQuantities[id] = qty
		}
	}

	if body.BobbinSelections != nil {
		for _, sel := range *body.BobbinSelections {
			productID, err := toKernelID(sel.ProductId)
			if err != nil {
				return commands.SetOrderStatusParams{}, err
			}
			bobbinID, err := toKernelID(sel.BobbinId)
			if err != nil {
				return commands.SetOrderStatusParams{}, err
			}
			p.BobbinSelections = append(p.BobbinSelections, order.BobbinSelection{
				ProductID:      productID,
				RequirementKey: sel.RequirementKey,
				BobbinID:       bobbinID,
			})
		}
	}

	return p, nil
}
