package commands

import (
	"errors"
	"fmt"
	"strings"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var ErrCreateBobbinCommandIsNotConstructed = errors.New(
	"CreateBobbinCommand must be created via NewCreateBobbinCommand constructor",
)

// CreateBobbinCommand registers a spool. A nil remaining weight means the
// spool is full.
type CreateBobbinCommand struct { //nolint:recvcheck //using for validation
	bobbinID        kernel.UUID
	material        kernel.Material
	brand           string
	totalWeight     float64
	remainingWeight float64

	guard guard.ConstructorGuard
}

func NewCreateBobbinCommand(
	bobbinID kernel.UUID,
	filamentType string,
	color string,
	brand string,
	totalWeight float64,
	remainingWeight *float64,
) (CreateBobbinCommand, error) {
	material, materialErr := kernel.NewMaterial(filamentType, color)

	var weightErr error
	if totalWeight <= 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause(
			"total weight is invalid", fmt.Errorf("%g is not greater than 0", totalWeight))
	}

	remaining := totalWeight
	if remainingWeight != nil {
		remaining = *remainingWeight
	}

	if err := errors.Join(bobbinID.Validate(), materialErr, weightErr); err != nil {
		return CreateBobbinCommand{}, err
	}

	return CreateBobbinCommand{
		bobbinID:        bobbinID,
		material:        material,
		brand:           strings.TrimSpace(brand),
		totalWeight:     totalWeight,
		remainingWeight: remaining,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBobbinCommand) Validate() error {
	return c.guard.Validate(ErrCreateBobbinCommandIsNotConstructed)
}

func (c CreateBobbinCommand) BobbinID() kernel.UUID { return c.bobbinID }
func (c CreateBobbinCommand) Material() kernel.Material { return c.material }
func (c CreateBobbinCommand) Brand() string { return c.brand }
func (c CreateBobbinCommand) TotalWeight() float64 { return c.totalWeight }
func (c CreateBobbinCommand) RemainingWeight() float64 { return c.remainingWeight }
