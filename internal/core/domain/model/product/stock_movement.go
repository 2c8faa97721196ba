package product

import (
	"fmt"
	"time"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
)

const EventStockChanged = "stock.changed"

// MovementKind names the ledger operation that produced a StockMovement.
type MovementKind string

const (
	MovementReserve MovementKind = "reserve"
	MovementRelease MovementKind = "release"
	MovementProduce MovementKind = "produce"
	MovementDeduct  MovementKind = "deduct"
)

func ParseMovementKind(s string) (MovementKind, error) {
	switch k := MovementKind(s); k {
	case MovementReserve, MovementRelease, MovementProduce, MovementDeduct:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("movement kind is invalid", fmt.Errorf("%q is unknown", s))
	}
}

// StockMovement is one immutable ledger line. Deltas are signed; the After
// fields hold the counters once the movement is applied.
type StockMovement struct {
	ID             kernel.UUID
	ProductID      kernel.UUID
	Kind           MovementKind
	AvailableDelta int
	ReservedDelta  int
	AvailableAfter int
	ReservedAfter  int
	OrderID        *kernel.UUID
	Reason         DeductReason
	Notes          string
	Actor          string
	CreatedAt      time.Time
}

func (m StockMovement) EventType() string {
	return EventStockChanged
}

func (m StockMovement) AggregateID() kernel.UUID {
	return m.ProductID
}

func (m StockMovement) OccurredAt() time.Time {
	return m.CreatedAt
}
