package product

import (
	"errors"
	"fmt"

	"printfarm/internal/core/domain/model/kernel"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// Stock is the pair of ledger counters kept per product.
type Stock struct {
	Available int
	Reserved  int
}

func (s Stock) Total() int {
	return s.Available + s.Reserved
}

// InsufficientStockError is returned when a ledger operation would drive a
// counter below zero. The counters are the values before the attempt.
type InsufficientStockError struct {
	ProductID kernel.UUID
	Operation MovementKind
	Requested int
	Available int
	Reserved  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s cannot %s %d (available %d, reserved %d)",
		ErrInsufficientStock, e.ProductID, e.Operation, e.Requested, e.Available, e.Reserved)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
