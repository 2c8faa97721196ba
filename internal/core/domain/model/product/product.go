package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("product must be created via NewProduct or RestoreProduct")

// Product is the aggregate root for a catalog item and its stock ledger.
//
// Invariants:
//   - code and name are non-blank, capacity is not negative
//   - each material appears at most once in the filament requirements
//   - available and reserved stock never go below zero
//
// version counts persisted mutations. Every ledger operation bumps it by one,
// and repositories update the row only while it still holds OriginalVersion.
type Product struct {
	id           kernel.UUID
	code         string
	name         string
	capacity     int
	requirements []FilamentRequirement
	stock        Stock

	version         int64
	originalVersion int64

	events kernel.EventRecorder
	guard  guard.ConstructorGuard
}

// NewProduct registers a catalog item with empty stock. Stock only ever
// enters through Produce.
func NewProduct(
	id kernel.UUID,
	code string,
	name string,
	capacity int,
	requirements []FilamentRequirement,
) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setName(name),
		p.setCapacity(capacity),
		p.setRequirements(requirements),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a product loaded from storage.
func RestoreProduct(
	id kernel.UUID,
	code string,
	name string,
	capacity int,
	requirements []FilamentRequirement,
	stock Stock,
	version int64,
) (*Product, error) {
	p := &Product{
		guard:           guard.NewConstructorGuard(),
		version:         version,
		originalVersion: version,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCode(code),
		p.setName(name),
		p.setCapacity(capacity),
		p.setRequirements(requirements),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Code() string {
	return p.code
}

func (p *Product) Name() string {
	return p.name
}

// Capacity is the number of units one tray yields.
func (p *Product) Capacity() int {
	return p.capacity
}

func (p *Product) Requirements() []FilamentRequirement {
	return append([]FilamentRequirement(nil), p.requirements...)
}

func (p *Product) Stock() Stock {
	return p.stock
}

func (p *Product) Version() int64 {
	return p.version
}

// OriginalVersion is the version the product was loaded with.
func (p *Product) OriginalVersion() int64 {
	return p.originalVersion
}

func (p *Product) PullEvents() []kernel.DomainEvent {
	return p.events.PullEvents()
}

// Reserve earmarks qty units of available stock for an order.
func (p *Product) Reserve(qty int, orderID kernel.UUID, actor string) (StockMovement, error) {
	if err := p.checkQuantity(qty); err != nil {
		return StockMovement{}, err
	}
	if qty > p.stock.Available {
		return StockMovement{}, p.insufficient(MovementReserve, qty)
	}
	return p.apply(MovementReserve, -qty, qty, &orderID, "", "", actor), nil
}

// Release returns qty reserved units to available stock.
func (p *Product) Release(qty int, orderID kernel.UUID, actor string) (StockMovement, error) {
	if err := p.checkQuantity(qty); err != nil {
		return StockMovement{}, err
	}
	if qty > p.stock.Reserved {
		return StockMovement{}, p.insufficient(MovementRelease, qty)
	}
	return p.apply(MovementRelease, qty, -qty, &orderID, "", "", actor), nil
}

// Produce adds freshly manufactured units to available stock.
func (p *Product) Produce(qty int, orderID kernel.UUID, actor string) (StockMovement, error) {
	if err := p.checkQuantity(qty); err != nil {
		return StockMovement{}, err
	}
	return p.apply(MovementProduce, qty, 0, &orderID, "", "", actor), nil
}

// Deduct writes off qty units of available stock. It is independent of any order.
func (p *Product) Deduct(qty int, reason DeductReason, notes string, actor string) (StockMovement, error) {
	if err := errors.Join(p.checkQuantity(qty), reason.Validate()); err != nil {
		return StockMovement{}, err
	}
	if qty > p.stock.Available {
		return StockMovement{}, p.insufficient(MovementDeduct, qty)
	}
	return p.apply(MovementDeduct, -qty, 0, nil, reason, strings.TrimSpace(notes), actor), nil
}

// RequirementFor returns the requirement for the given material key.
func (p *Product) RequirementFor(key string) (FilamentRequirement, bool) {
	for _, r := range p.requirements {
		if r.Key() == key {
			return r, true
		}
	}
	return FilamentRequirement{}, false
}

func (p *Product) apply(
	kind MovementKind,
	availableDelta, reservedDelta int,
	orderID *kernel.UUID,
	reason DeductReason,
	notes string,
	actor string,
) StockMovement {
	p.stock.Available += availableDelta
	p.stock.Reserved += reservedDelta
	p.version++

	m := StockMovement{
		ID:             kernel.NewUUID(),
		ProductID:      p.id,
		Kind:           kind,
		AvailableDelta: availableDelta,
		ReservedDelta:  reservedDelta,
		AvailableAfter: p.stock.Available,
		ReservedAfter:  p.stock.Reserved,
		OrderID:        orderID,
		Reason:         reason,
		Notes:          notes,
		Actor:          actor,
		CreatedAt:      time.Now().UTC(),
	}
	p.events.Record(m)
	return m
}

func (p *Product) insufficient(op MovementKind, qty int) error {
	return &InsufficientStockError{
		ProductID: p.id,
		Operation: op,
		Requested: qty,
		Available: p.stock.Available,
		Reserved:  p.stock.Reserved,
	}
}

func (p *Product) checkQuantity(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", qty))
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("product code")
	}
	p.code = code
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	p.name = name
	return nil
}

func (p *Product) setCapacity(capacity int) error {
	if capacity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity is invalid", fmt.Errorf("%d is negative", capacity))
	}
	p.capacity = capacity
	return nil
}

func (p *Product) setRequirements(requirements []FilamentRequirement) error {
	seen := make(map[string]struct{}, len(requirements))
	for _, r := range requirements {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.Key()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"filament requirements are invalid",
				fmt.Errorf("%s is listed more than once", r.Material()),
			)
		}
		seen[r.Key()] = struct{}{}
	}
	p.requirements = append([]FilamentRequirement(nil), requirements...)
	return nil
}

func (p *Product) setStock(stock Stock) error {
	if stock.Available < 0 || stock.Reserved < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"stock is invalid",
			fmt.Errorf("available %d and reserved %d must not be negative", stock.Available, stock.Reserved),
		)
	}
	p.stock = stock
	return nil
}
