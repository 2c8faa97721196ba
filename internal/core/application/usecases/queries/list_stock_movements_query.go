package queries

import (
	"errors"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

const (
	DefaultMovementLimit = 100
	MaxMovementLimit     = 1000
)

var ErrListStockMovementsQueryIsNotConstructed = errors.New(
	"ListStockMovementsQuery must be created via NewListStockMovementsQuery constructor",
)

// ListStockMovementsQuery reads a product's ledger, newest first.
type ListStockMovementsQuery struct {
	productID kernel.UUID
	limit     int
	guard     guard.ConstructorGuard
}

// NewListStockMovementsQuery accepts a nil limit for DefaultMovementLimit.
func NewListStockMovementsQuery(productID kernel.UUID, limit *int) (ListStockMovementsQuery, error) {
	q := ListStockMovementsQuery{productID: productID, limit: DefaultMovementLimit, guard: guard.NewConstructorGuard()}

	var limitErr error
	if limit != nil {
		if *limit < 1 || *limit > MaxMovementLimit {
			limitErr = errs.NewValueIsOutOfRangeError("limit", *limit, 1, MaxMovementLimit)
		}
		q.limit = *limit
	}

	if err := errors.Join(productID.Validate(), limitErr); err != nil {
		return ListStockMovementsQuery{}, err
	}
	return q, nil
}

func (q ListStockMovementsQuery) Validate() error {
	return q.guard.Validate(ErrListStockMovementsQueryIsNotConstructed)
}

func (q ListStockMovementsQuery) ProductID() kernel.UUID { return q.productID }
func (q ListStockMovementsQuery) Limit() int             { return q.limit }
