package product

import (
	"errors"
	"fmt"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var ErrFilamentRequirementIsNotConstructed = errors.New("filament requirement must be created via NewFilamentRequirement")

// FilamentRequirement is the amount of one material needed to print a single unit.
type FilamentRequirement struct {
	material      kernel.Material
	weightPerUnit float64
	guard         guard.ConstructorGuard
}

func NewFilamentRequirement(material kernel.Material, weightPerUnit float64) (FilamentRequirement, error) {
	if err := material.Validate(); err != nil {
		return FilamentRequirement{}, err
	}
	if weightPerUnit <= 0 {
		return FilamentRequirement{}, errs.NewValueIsInvalidErrorWithCause(
			"filament weight is invalid",
			fmt.Errorf("%g is not greater than 0", weightPerUnit),
		)
	}
	return FilamentRequirement{
		material:      material,
		weightPerUnit: weightPerUnit,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (r FilamentRequirement) Material() kernel.Material {
	return r.material
}

// WeightPerUnit is in grams.
func (r FilamentRequirement) WeightPerUnit() float64 {
	return r.weightPerUnit
}

// Key identifies the requirement within its product.
func (r FilamentRequirement) Key() string {
	return r.material.Key()
}

func (r FilamentRequirement) Validate() error {
	return r.guard.Validate(ErrFilamentRequirementIsNotConstructed)
}
