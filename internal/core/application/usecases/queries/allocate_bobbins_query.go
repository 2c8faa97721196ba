package queries

import (
	"errors"
	"fmt"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var (
	ErrAllocateBobbinsQueryIsNotConstructed = errors.New(
		"AllocateBobbinsQuery must be created via NewAllocateBobbinsQuery constructor",
	)
	ErrAllocateBobbinsForProductQueryIsNotConstructed = errors.New(
		"AllocateBobbinsForProductQuery must be created via NewAllocateBobbinsForProductQuery constructor",
	)
)

type RequirementInput struct {
	Type   string
	Color  string
	Weight float64
}

// BobbinInput describes a candidate spool. A zero TotalWeight is taken to
// equal RemainingWeight.
type BobbinInput struct {
	ID              kernel.UUID
	Type            string
	Color           string
	TotalWeight     float64
	RemainingWeight float64
}

// AllocateBobbinsQuery runs the allocator over caller-supplied requirements
// and spools. Nothing is read from storage.
type AllocateBobbinsQuery struct {
	requirements []product.FilamentRequirement
	bobbins      []*bobbin.Bobbin
	quantity     int
	guard        guard.ConstructorGuard
}

func NewAllocateBobbinsQuery(
	requirements []RequirementInput,
	bobbins []BobbinInput,
	quantity int,
) (AllocateBobbinsQuery, error) {
	q := AllocateBobbinsQuery{quantity: quantity, guard: guard.NewConstructorGuard()}

	var errList []error
	if len(requirements) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("requirements"))
	}
	if quantity < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is negative", quantity)))
	}

	for i, in := range requirements {
		m, err := kernel.NewMaterial(in.Type, in.Color)
		if err != nil {
			errList = append(errList, fmt.Errorf("requirement %d: %w", i, err))
			continue
		}
		req, err := product.NewFilamentRequirement(m, in.Weight)
		if err != nil {
			errList = append(errList, fmt.Errorf("requirement %d: %w", i, err))
			continue
		}
		q.requirements = append(q.requirements, req)
	}

	for i, in := range bobbins {
		m, err := kernel.NewMaterial(in.Type, in.Color)
		if err != nil {
			errList = append(errList, fmt.Errorf("bobbin %d: %w", i, err))
			continue
		}
		total := in.TotalWeight
		if total == 0 {
			total = in.RemainingWeight
		}
		b, err := bobbin.RestoreBobbin(in.ID, m, "", total, in.RemainingWeight)
		if err != nil {
			errList = append(errList, fmt.Errorf("bobbin %d: %w", i, err))
			continue
		}
		q.bobbins = append(q.bobbins, b)
	}

	if err := errors.Join(errList...); err != nil {
		return AllocateBobbinsQuery{}, err
	}
	return q, nil
}

func (q AllocateBobbinsQuery) Validate() error {
	return q.guard.Validate(ErrAllocateBobbinsQueryIsNotConstructed)
}

func (q AllocateBobbinsQuery) Requirements() []product.FilamentRequirement { return q.requirements }
func (q AllocateBobbinsQuery) Bobbins() []*bobbin.Bobbin                   { return q.bobbins }
func (q AllocateBobbinsQuery) Quantity() int                               { return q.quantity }

// AllocateBobbinsForProductQuery previews the allocation for a stored
// product against the current spools. The preview changes nothing.
type AllocateBobbinsForProductQuery struct {
	productID kernel.UUID
	quantity  int
	guard     guard.ConstructorGuard
}

// NewAllocateBobbinsForProductQuery treats a nil quantity as one unit.
func NewAllocateBobbinsForProductQuery(productID kernel.UUID, quantity *int) (AllocateBobbinsForProductQuery, error) {
	q := AllocateBobbinsForProductQuery{productID: productID, quantity: 1, guard: guard.NewConstructorGuard()}

	var quantityErr error
	if quantity != nil {
		if *quantity <= 0 {
			quantityErr = errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid", fmt.Errorf("%d is not greater than 0", *quantity))
		}
		q.quantity = *quantity
	}

	if err := errors.Join(productID.Validate(), quantityErr); err != nil {
		return AllocateBobbinsForProductQuery{}, err
	}
	return q, nil
}

func (q AllocateBobbinsForProductQuery) Validate() error {
	return q.guard.Validate(ErrAllocateBobbinsForProductQueryIsNotConstructed)
}

func (q AllocateBobbinsForProductQuery) ProductID() kernel.UUID { return q.productID }
func (q AllocateBobbinsForProductQuery) Quantity() int          { return q.quantity }
