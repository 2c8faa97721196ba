package http

import (
	"net/http"

	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/application/usecases/queries"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// ListProducts handles GET /api/v1/products.
func (s *Server) ListProducts(ctx echo.Context) error {
	products, err := s.h.ListProducts.Handle(ctx.Request().Context(), queries.NewListProductsQuery())
	if err != nil {
		return err
	}

	response := make([]servers.Product, 0, len(products))
	for _, p := range products {
		response = append(response, toProduct(p))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/products. New products start with
// empty stock.
func (s *Server) CreateProduct(ctx echo.Context, _ servers.CreateProductParams) error {
	var body servers.NewProduct
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	filaments := make([]commands.FilamentSpec, 0, len(body.Filaments))
	for _, f := range body.Filaments {
		filaments = append(filaments, commands.FilamentSpec{Type: f.Type, Color: f.Color, Weight: f.Weight})
	}

	cmd, err := commands.NewCreateProductCommand(kernel.NewUUID(), body.Code, body.Name, body.Capacity, filaments)
	if err != nil {
		return err
	}

	p, err := s.h.CreateProduct.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toProduct(queries.ProductViewFromDomain(p)))
}

// GetProduct handles GET /api/v1/products/{productId}.
func (s *Server) GetProduct(ctx echo.Context, productId servers.ProductID) error {
	id, err := toKernelID(productId)
	if err != nil {
		return err
	}
	query, err := queries.NewGetProductQuery(id)
	if err != nil {
		return err
	}

	p, err := s.h.GetProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toProduct(p))
}

// ReduceStock handles POST /api/v1/products/{productId}/reductions.
func (s *Server) ReduceStock(ctx echo.Context, productId servers.ProductID, params servers.ReduceStockParams) error {
	id, err := toKernelID(productId)
	if err != nil {
		return err
	}

	var body servers.StockReduction
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewReduceStockCommand(id, body.Quantity, string(body.Reason), deref(body.Notes), actorOf(params.XActorID))
	if err != nil {
		return err
	}

	p, err := s.h.ReduceStock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toProduct(queries.ProductViewFromDomain(p)))
}

// ListProductMovements handles GET /api/v1/products/{productId}/movements.
func (s *Server) ListProductMovements(
	ctx echo.Context,
	productId servers.ProductID,
	params servers.ListProductMovementsParams,
) error {
	id, err := toKernelID(productId)
	if err != nil {
		return err
	}
	query, err := queries.NewListStockMovementsQuery(id, params.Limit)
	if err != nil {
		return err
	}

	movements, err := s.h.ListStockMovements.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.StockMovement, 0, len(movements))
	for _, m := range movements {
		response = append(response, toStockMovement(m))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetProductAllocation handles GET /api/v1/products/{productId}/allocation.
// Unsatisfied requirements are reported in the body, not as an error.
func (s *Server) GetProductAllocation(
	ctx echo.Context,
	productId servers.ProductID,
	params servers.GetProductAllocationParams,
) error {
	id, err := toKernelID(productId)
	if err != nil {
		return err
	}
	query, err := queries.NewAllocateBobbinsForProductQuery(id, params.Quantity)
	if err != nil {
		return err
	}

	allocation, err := s.h.AllocateBobbinsForProduct.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toAllocation(allocation))
}
