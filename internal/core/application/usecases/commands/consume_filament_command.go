package commands

import (
	"errors"
	"fmt"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var ErrConsumeFilamentCommandIsNotConstructed = errors.New(
	"ConsumeFilamentCommand must be created via NewConsumeFilamentCommand constructor",
)

// ConsumeFilamentCommand takes grams off a spool after a print. Allocation
// never does this on its own.
type ConsumeFilamentCommand struct { //nolint:recvcheck //using for validation
	bobbinID kernel.UUID
	grams    float64

	guard guard.ConstructorGuard
}

func NewConsumeFilamentCommand(bobbinID kernel.UUID, grams float64) (ConsumeFilamentCommand, error) {
	var gramsErr error
	if grams <= 0 {
		gramsErr = errs.NewValueIsInvalidErrorWithCause("grams is invalid", fmt.Errorf("%g is not greater than 0", grams))
	}
	if err := errors.Join(bobbinID.Validate(), gramsErr); err != nil {
		return ConsumeFilamentCommand{}, err
	}

	return ConsumeFilamentCommand{
		bobbinID: bobbinID,
		grams:    grams,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ConsumeFilamentCommand) Validate() error {
	return c.guard.Validate(ErrConsumeFilamentCommandIsNotConstructed)
}

func (c ConsumeFilamentCommand) BobbinID() kernel.UUID { return c.bobbinID }
func (c ConsumeFilamentCommand) Grams() float64 { return c.grams }
