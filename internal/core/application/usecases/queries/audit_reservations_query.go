package queries

import (
	"errors"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/guard"
)

var ErrAuditReservationsQueryIsNotConstructed = errors.New(
	"AuditReservationsQuery must be created via NewAuditReservationsQuery constructor",
)

// AuditReservationsQuery compares every product's reserved counter with the
// quantities held by orders that are neither cancelled nor deleted.
type AuditReservationsQuery struct {
	guard guard.ConstructorGuard
}

func NewAuditReservationsQuery() AuditReservationsQuery {
	return AuditReservationsQuery{guard: guard.NewConstructorGuard()}
}

func (q AuditReservationsQuery) Validate() error {
	return q.guard.Validate(ErrAuditReservationsQueryIsNotConstructed)
}

type AuditReservationsResponse struct {
	Checked int
	Drifts  []ReservationDrift
}

// ReservationDrift is a product whose counter disagrees with its orders.
type ReservationDrift struct {
	ProductID kernel.UUID
	Code      string
	Reserved  int
	Expected  int
}

// Drift is positive when the counter holds more than the orders account for.
func (d ReservationDrift) Drift() int {
	return d.Reserved - d.Expected
}
