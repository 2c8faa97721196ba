// Package bobbin models physical filament spools.
package bobbin

import (
	"errors"
	"fmt"
	"strings"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var (
	ErrBobbinIsNotConstructed = errors.New("bobbin must be created via NewBobbin or RestoreBobbin")
	ErrInsufficientFilament   = errors.New("insufficient filament")
)

// InsufficientFilamentError is returned by Consume when a spool holds less
// than requested.
type InsufficientFilamentError struct {
	BobbinID  kernel.UUID
	Requested float64
	Remaining float64
}

func (e *InsufficientFilamentError) Error() string {
	return fmt.Sprintf("%s: bobbin %s has %gg left, %gg requested", ErrInsufficientFilament, e.BobbinID, e.Remaining, e.Requested)
}

func (e *InsufficientFilamentError) Unwrap() error {
	return ErrInsufficientFilament
}

// Bobbin is a filament spool. Weights are in grams and satisfy
// 0 <= remainingWeight <= totalWeight, totalWeight > 0.
type Bobbin struct {
	id              kernel.UUID
	material        kernel.Material
	brand           string
	totalWeight     float64
	remainingWeight float64
	guard           guard.ConstructorGuard
}

// NewBobbin registers a full spool.
func NewBobbin(id kernel.UUID, material kernel.Material, brand string, totalWeight float64) (*Bobbin, error) {
	return RestoreBobbin(id, material, brand, totalWeight, totalWeight)
}

func RestoreBobbin(
	id kernel.UUID,
	material kernel.Material,
	brand string,
	totalWeight float64,
	remainingWeight float64,
) (*Bobbin, error) {
	b := &Bobbin{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		b.setID(id),
		b.setMaterial(material),
		b.setWeights(totalWeight, remainingWeight),
	); err != nil {
		return nil, err
	}
	b.brand = strings.TrimSpace(brand)

	return b, nil
}

func (b *Bobbin) Validate() error {
	if b == nil {
		return ErrBobbinIsNotConstructed
	}
	return b.guard.Validate(ErrBobbinIsNotConstructed)
}

func (b *Bobbin) ID() kernel.UUID {
	return b.id
}

func (b *Bobbin) Material() kernel.Material {
	return b.material
}

func (b *Bobbin) Brand() string {
	return b.brand
}

func (b *Bobbin) TotalWeight() float64 {
	return b.totalWeight
}

func (b *Bobbin) RemainingWeight() float64 {
	return b.remainingWeight
}

// Consume takes grams of filament off the spool. It never drives the
// remaining weight below zero.
func (b *Bobbin) Consume(grams float64) error {
	if grams <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("grams is invalid", fmt.Errorf("%g is not greater than 0", grams))
	}
	if grams > b.remainingWeight {
		return &InsufficientFilamentError{BobbinID: b.id, Requested: grams, Remaining: b.remainingWeight}
	}
	b.remainingWeight -= grams
	return nil
}

func (b *Bobbin) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bobbin) setMaterial(m kernel.Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	b.material = m
	return nil
}

func (b *Bobbin) setWeights(total, remaining float64) error {
	if total <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total weight is invalid", fmt.Errorf("%g is not greater than 0", total))
	}
	if remaining < 0 || remaining > total {
		return errs.NewValueIsOutOfRangeError("remaining weight", remaining, 0, total)
	}
	b.totalWeight = total
	b.remainingWeight = remaining
	return nil
}
