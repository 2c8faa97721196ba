// Package memory is an in-process unit of work over plain maps. It runs the
// command handlers end to end without a database and backs the behavior
// suite. Transactions are serialized on one lock, so a Begin blocks until
// the previous unit of work commits or rolls back.
package memory

import (
	"slices"
	"sync"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/errs"
)

type Store struct {
	txMu sync.Mutex

	mu        sync.RWMutex
	committed state
}

func NewStore() *Store {
	return &Store{committed: newState()}
}

// state holds immutable snapshots; aggregates are cloned on every read and
// write so callers never share memory with the store.
type state struct {
	products  map[kernel.UUID]*product.Product
	bobbins   map[kernel.UUID]*bobbin.Bobbin
	orders    map[kernel.UUID]*order.Order
	deleted   map[kernel.UUID]bool
	movements []product.StockMovement
}

func newState() state {
	return state{
		products: make(map[kernel.UUID]*product.Product),
		bobbins:  make(map[kernel.UUID]*bobbin.Bobbin),
		orders:   make(map[kernel.UUID]*order.Order),
		deleted:  make(map[kernel.UUID]bool),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.bobbins {
		c.bobbins[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.deleted {
		c.deleted[k] = v
	}
	c.movements = slices.Clone(s.movements)
	return c
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed.clone()
}

func (s *Store) commit(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = st
}

// Product returns a committed product.
func (s *Store) Product(id kernel.UUID) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.committed.products[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id)
	}
	return cloneProduct(p)
}

// Order returns a committed order and whether it has been soft-deleted.
func (s *Store) Order(id kernel.UUID) (*order.Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.committed.orders[id]
	if !ok {
		return nil, false, errs.NewObjectNotFoundError("order", id)
	}
	o, err := cloneOrder(stored)
	return o, s.committed.deleted[id], err
}

// Movements returns the committed ledger in append order.
func (s *Store) Movements() []product.StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.committed.movements)
}

func cloneProduct(p *product.Product) (*product.Product, error) {
	return product.RestoreProduct(p.ID(), p.Code(), p.Name(), p.Capacity(), p.Requirements(), p.Stock(), p.Version())
}

func cloneBobbin(b *bobbin.Bobbin) (*bobbin.Bobbin, error) {
	return bobbin.RestoreBobbin(b.ID(), b.Material(), b.Brand(), b.TotalWeight(), b.RemainingWeight())
}

func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(order.RestoreParams{
		ID:             o.ID(),
		Code:           o.Code(),
		CustomerID:     o.CustomerID(),
		Items:          o.Items(),
		Status:         o.Status(),
		SkipProduction: o.SkipProduction(),
		ProductionMode: o.ProductionMode(),
		TableCount:     o.TableCount(),
		Production:     o.ProductionLines(),
		Selections:     o.BobbinSelections(),
		CreatedBy:      o.CreatedBy(),
		UpdatedBy:      o.UpdatedBy(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	})
}
