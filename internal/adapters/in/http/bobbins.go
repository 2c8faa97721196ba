package http

import (
	"net/http"

	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/application/usecases/queries"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ListBobbins handles GET /api/v1/bobbins.
func (s *Server) ListBobbins(ctx echo.Context, params servers.ListBobbinsParams) error {
	query := queries.NewListBobbinsQuery(deref(params.Type), deref(params.Color))

	bobbins, err := s.h.ListBobbins.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.Bobbin, 0, len(bobbins))
	for _, b := range bobbins {
		response = append(response, toBobbin(b))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateBobbin handles POST /api/v1/bobbins.
func (s *Server) CreateBobbin(ctx echo.Context) error {
	var body servers.NewBobbin
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateBobbinCommand(
		kernel.NewUUID(), body.Type, body.Color, deref(body.Brand), body.TotalWeight, body.RemainingWeight)
	if err != nil {
		return err
	}

	b, err := s.h.CreateBobbin.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toBobbin(queries.BobbinViewFromDomain(b)))
}

// ConsumeFilament handles POST /api/v1/bobbins/{bobbinId}/consumptions.
func (s *Server) ConsumeFilament(ctx echo.Context, bobbinId openapi_types.UUID) error {
	id, err := toKernelID(bobbinId)
	if err != nil {
		return err
	}

	var body servers.Consumption
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewConsumeFilamentCommand(id, body.Grams)
	if err != nil {
		return err
	}

	b, err := s.h.ConsumeFilament.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toBobbin(queries.BobbinViewFromDomain(b)))
}

// AllocateBobbins handles POST /api/v1/allocations. Nothing is read from
// storage; the caller supplies both sides.
func (s *Server) AllocateBobbins(ctx echo.Context) error {
	var body servers.AllocationRequest
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	requirements := make([]queries.RequirementInput, 0, len(body.Requirements))
	for _, r := range body.Requirements {
		requirements = append(requirements, queries.RequirementInput{Type: r.Type, Color: r.Color, Weight: r.Weight})
	}

	bobbins := make([]queries.BobbinInput, 0, len(body.Bobbins))
	for _, b := range body.Bobbins {
		id, err := toKernelID(b.Id)
		if err != nil {
			return err
		}
		bobbins = append(bobbins, queries.BobbinInput{
			ID:              id,
			Type:            b.Type,
			Color:           b.Color,
			TotalWeight:     deref(b.TotalWeight),
			RemainingWeight: b.RemainingWeight,
		})
	}

	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	query, err := queries.NewAllocateBobbinsQuery(requirements, bobbins, quantity)
	if err != nil {
		return err
	}

	allocation, err := s.h.AllocateBobbins.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toAllocation(allocation))
}
