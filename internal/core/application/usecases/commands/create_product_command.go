package commands

import (
	"errors"
	"fmt"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// FilamentSpec is the raw form of a filament requirement: grams of one
// material per printed unit.
type FilamentSpec struct {
	Type   string
	Color  string
	Weight float64
}

// CreateProductCommand registers a catalog item. New products start with
// empty stock.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID    kernel.UUID
	code         string
	name         string
	capacity     int
	requirements []product.FilamentRequirement

	guard guard.ConstructorGuard
}

func NewCreateProductCommand(
	productID kernel.UUID,
	code string,
	name string,
	capacity int,
	filaments []FilamentSpec,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		productID: productID,
		code:      code,
		name:      name,
		capacity:  capacity,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productID.Validate(),
		cmd.setRequirements(filaments),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID { return c.productID }
func (c CreateProductCommand) Code() string { return c.code }
func (c CreateProductCommand) Name() string { return c.name }
func (c CreateProductCommand) Capacity() int { return c.capacity }

func (c CreateProductCommand) Requirements() []product.FilamentRequirement {
	return append([]product.FilamentRequirement(nil), c.requirements...)
}

func (c *CreateProductCommand) setRequirements(filaments []FilamentSpec) error {
	var err error
	for i, f := range filaments {
		m, e := kernel.NewMaterial(f.Type, f.Color)
		if e != nil {
			err = errors.Join(err, fmt.Errorf("filament %d: %w", i, e))
			continue
		}
		r, e := product.NewFilamentRequirement(m, f.Weight)
		if e != nil {
			err = errors.Join(err, fmt.Errorf("filament %d: %w", i, e))
			continue
		}
		c.requirements = append(c.requirements, r)
	}
	return err
}
