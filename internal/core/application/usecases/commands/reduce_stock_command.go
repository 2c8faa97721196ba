package commands

import (
	"errors"
	"fmt"
	"strings"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var ErrReduceStockCommandIsNotConstructed = errors.New(
	"ReduceStockCommand must be created via NewReduceStockCommand constructor",
)

// ReduceStockCommand writes off available units of a product outside any
// order: burnt prints, lost parcels, defects.
type ReduceStockCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	reason    product.DeductReason
	notes     string
	actor     string

	guard guard.ConstructorGuard
}

func NewReduceStockCommand(
	productID kernel.UUID,
	quantity int,
	reason string,
	notes string,
	actor string,
) (ReduceStockCommand, error) {
	cmd := ReduceStockCommand{
		productID: productID,
		quantity:  quantity,
		notes:     strings.TrimSpace(notes),
		actor:     normalizeActor(actor),
		guard:     guard.NewConstructorGuard(),
	}

	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	r, reasonErr := product.ParseDeductReason(reason)
	cmd.reason = r

	if err := errors.Join(productID.Validate(), quantityErr, reasonErr); err != nil {
		return ReduceStockCommand{}, err
	}

	return cmd, nil
}

func (c ReduceStockCommand) Validate() error {
	return c.guard.Validate(ErrReduceStockCommandIsNotConstructed)
}

func (c ReduceStockCommand) ProductID() kernel.UUID { return c.productID }
func (c ReduceStockCommand) Quantity() int { return c.quantity }
func (c ReduceStockCommand) Reason() product.DeductReason { return c.reason }
func (c ReduceStockCommand) Notes() string { return c.notes }
func (c ReduceStockCommand) Actor() string { return c.actor }
