package commands

import (
	"errors"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand soft-deletes an order. Deleting a READY order needs
// confirmation, the same as cancelling it.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	confirm bool
	actor   string

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.UUID, confirm bool, actor string) (DeleteOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}

	return DeleteOrderCommand{
		orderID: orderID,
		confirm: confirm,
		actor:   normalizeActor(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c DeleteOrderCommand) Confirm() bool { return c.confirm }
func (c DeleteOrderCommand) Actor() string { return c.actor }
