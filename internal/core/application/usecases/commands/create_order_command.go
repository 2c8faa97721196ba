package commands

import (
	"errors"
	"fmt"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItem is one requested line. Code and name are filled in from the
// catalog by the handler.
type OrderItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand places a new order and reserves its stock.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerID     *kernel.UUID
	items          []OrderItem
	skipProduction bool
	actor          string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID *kernel.UUID,
	items []OrderItem,
	skipProduction bool,
	actor string,
) (CreateOrderCommand, error) {
	var customerErr error
	if customerID != nil {
		customerErr = customerID.Validate()
	}

	if err := errors.Join(orderID.Validate(), customerErr, validateItems(items)); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		orderID:        orderID,
		customerID:     customerID,
		items:          append([]OrderItem(nil), items...),
		skipProduction: skipProduction,
		actor:          normalizeActor(actor),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func validateItems(items []OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var err error
	seen := make(map[kernel.UUID]struct{}, len(items))
	for i, it := range items {
		if e := it.ProductID.Validate(); e != nil {
			err = errors.Join(err, fmt.Errorf("item %d: %w", i, e))
			continue
		}
		if _, dup := seen[it.ProductID]; dup {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"items are invalid", fmt.Errorf("product %s is ordered more than once", it.ProductID)))
		}
		seen[it.ProductID] = struct{}{}
		if it.Quantity <= 0 {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"quantity is invalid", fmt.Errorf("item %d: %d is not greater than 0", i, it.Quantity)))
		}
		if it.UnitPrice.IsNegative() {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
				"unit price is invalid", fmt.Errorf("item %d: %s is negative", i, it.UnitPrice)))
		}
	}
	return err
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) CustomerID() *kernel.UUID { return c.customerID }
func (c CreateOrderCommand) SkipProduction() bool { return c.skipProduction }
func (c CreateOrderCommand) Actor() string { return c.actor }

func (c CreateOrderCommand) Items() []OrderItem {
	return append([]OrderItem(nil), c.items...)
}

// ProductIDs lists the ordered products in request order.
func (c CreateOrderCommand) ProductIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(c.items))
	for _, it := range c.items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
