package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of one customer or stock order.
//
// An order is created Pending with its stock already reserved and then moves
// forward one status at a time. Stock side effects of a transition are
// applied by the fulfillment service in the same unit of work; the stored
// status is what keeps a re-submitted transition from applying them twice.
type Order struct {
	id         kernel.UUID
	code       string
	customerID *kernel.UUID
	items      []LineItem
	status     Status

	skipProduction bool
	productionMode production.Mode
	tableCount     int
	production     []ProductionLine
	selections     []BobbinSelection

	createdBy string
	updatedBy string
	createdAt time.Time
	updatedAt time.Time

	events kernel.EventRecorder
	guard  guard.ConstructorGuard
}

// ProductionRun is what PENDING -> PRODUCING records on the order.
// Lines and Selections are ignored when SkipProduction is set.
type ProductionRun struct {
	SkipProduction bool
	Mode           production.Mode
	TableCount     int
	Lines          []ProductionLine
	Selections     []BobbinSelection
}

// NewOrder creates a Pending order. Each product may appear only once.
func NewOrder(
	id kernel.UUID,
	code string,
	customerID *kernel.UUID,
	items []LineItem,
	skipProduction bool,
	actor string,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:         Pending,
		skipProduction: skipProduction,
		createdAt:      now,
		updatedAt:      now,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setActor(actor),
	); err != nil {
		return nil, err
	}
	o.updatedBy = o.createdBy

	snapshot := make([]ItemSnapshot, 0, len(o.items))
	for _, it := range o.items {
		snapshot = append(snapshot, ItemSnapshot{ProductID: it.ProductID(), Quantity: it.Quantity()})
	}
	o.events.Record(CreatedEvent{OrderID: o.id, Code: o.code, Items: snapshot, Actor: o.createdBy, At: now})

	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID             kernel.UUID
	Code           string
	CustomerID     *kernel.UUID
	Items          []LineItem
	Status         Status
	SkipProduction bool
	ProductionMode production.Mode
	TableCount     int
	Production     []ProductionLine
	Selections     []BobbinSelection
	CreatedBy      string
	UpdatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		skipProduction: p.SkipProduction,
		productionMode: p.ProductionMode,
		tableCount:     p.TableCount,
		production:     append([]ProductionLine(nil), p.Production...),
		selections:     append([]BobbinSelection(nil), p.Selections...),
		createdBy:      p.CreatedBy,
		updatedBy:      p.UpdatedBy,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setCode(p.Code),
		o.setCustomerID(p.CustomerID),
		o.setItems(p.Items),
		o.setStatus(p.Status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Code() string { return o.code }
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }
func (o *Order) Status() Status { return o.status }
func (o *Order) SkipProduction() bool { return o.skipProduction }
func (o *Order) ProductionMode() production.Mode { return o.productionMode }
func (o *Order) TableCount() int { return o.tableCount }
func (o *Order) CreatedBy() string { return o.createdBy }
func (o *Order) UpdatedBy() string { return o.updatedBy }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

func (o *Order) ProductionLines() []ProductionLine {
	return append([]ProductionLine(nil), o.production...)
}

func (o *Order) BobbinSelections() []BobbinSelection {
	return append([]BobbinSelection(nil), o.selections...)
}

// ProductionQuantity is the total number of units this order's production run adds.
func (o *Order) ProductionQuantity() int {
	total := 0
	for _, l := range o.production {
		total += l.Quantity
	}
	return total
}

// Total is the sum of line subtotals.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (o *Order) PullEvents() []kernel.DomainEvent {
	return o.events.PullEvents()
}

// EffectiveSkipProduction resolves the skip flag for a transition request.
// While Pending a requested value wins over the creation default; afterwards
// the flag is frozen and a request to change it is rejected.
func (o *Order) EffectiveSkipProduction(requested *bool) (bool, error) {
	if requested == nil {
		return o.skipProduction, nil
	}
	if o.status == Pending {
		return *requested, nil
	}
	if *requested != o.skipProduction {
		return false, errs.NewValueIsInvalidErrorWithCause(
			"skip production is invalid",
			fmt.Errorf("cannot change skip production once the order is %s", o.status),
		)
	}
	return o.skipProduction, nil
}

// StartProduction moves a Pending order to Producing and records the run.
func (o *Order) StartProduction(run ProductionRun, actor string) error {
	if err := o.status.CanTransitionTo(Producing); err != nil {
		return err
	}

	if run.SkipProduction {
		o.skipProduction = true
		o.productionMode = production.ModeUnknown
		o.tableCount = 0
		o.production = nil
		o.selections = nil
		o.transition(Producing, actor)
		return nil
	}

	if err := o.checkProductionLines(run.Lines); err != nil {
		return err
	}
	if err := o.checkSelections(run.Selections); err != nil {
		return err
	}

	o.skipProduction = false
	o.productionMode = run.Mode
	o.tableCount = run.TableCount
	o.production = append([]ProductionLine(nil), run.Lines...)
	o.selections = append([]BobbinSelection(nil), run.Selections...)
	o.transition(Producing, actor)
	return nil
}

// CompleteProduction moves a Producing order to Produced.
func (o *Order) CompleteProduction(actor string) error {
	return o.advance(Produced, actor)
}

// StartPreparing moves a Produced order to Preparing.
func (o *Order) StartPreparing(actor string) error {
	return o.advance(Preparing, actor)
}

// MarkReady moves a Preparing order to Ready.
func (o *Order) MarkReady(actor string) error {
	return o.advance(Ready, actor)
}

// Cancel makes the order terminal. Releasing its reservation is up to the caller.
func (o *Order) Cancel(confirmed bool, actor string) error {
	if err := o.status.CanCancel(confirmed); err != nil {
		return err
	}
	from := o.status
	o.status = Cancelled
	o.touch(actor)
	o.events.Record(CancelledEvent{OrderID: o.id, Code: o.code, From: from, Actor: o.updatedBy, At: o.updatedAt})
	return nil
}

func (o *Order) advance(target Status, actor string) error {
	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}
	o.transition(target, actor)
	return nil
}

func (o *Order) transition(target Status, actor string) {
	from := o.status
	o.status = target
	o.touch(actor)
	o.events.Record(StatusChangedEvent{OrderID: o.id, Code: o.code, From: from, To: target, Actor: o.updatedBy, At: o.updatedAt})
}

func (o *Order) touch(actor string) {
	if actor = strings.TrimSpace(actor); actor != "" {
		o.updatedBy = actor
	}
	o.updatedAt = time.Now().UTC()
}

func (o *Order) checkProductionLines(lines []ProductionLine) error {
	byProduct := make(map[kernel.UUID]int, len(lines))
	for _, l := range lines {
		if !o.hasProduct(l.ProductID) {
			return errs.NewValueIsInvalidErrorWithCause(
				"production line is invalid", fmt.Errorf("product %s is not on the order", l.ProductID))
		}
		if _, dup := byProduct[l.ProductID]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"production line is invalid", fmt.Errorf("product %s is listed more than once", l.ProductID))
		}
		if l.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				"production quantity is invalid", fmt.Errorf("%d is not greater than 0", l.Quantity))
		}
		byProduct[l.ProductID] = l.Quantity
	}
	for _, it := range o.items {
		if _, ok := byProduct[it.ProductID()]; !ok {
			return errs.NewValueIsRequiredErrorWithCause(
				"production quantity", fmt.Errorf("missing for product %s", it.ProductCode()))
		}
	}
	return nil
}

func (o *Order) checkSelections(selections []BobbinSelection) error {
	for _, s := range selections {
		if !o.hasProduct(s.ProductID) {
			return errs.NewValueIsInvalidErrorWithCause(
				"bobbin selection is invalid", fmt.Errorf("product %s is not on the order", s.ProductID))
		}
		if err := s.BobbinID.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Order) hasProduct(id kernel.UUID) bool {
	for _, it := range o.items {
		if it.ProductID().IsEqual(id) {
			return true
		}
	}
	return false
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code string) error {
	if err := validateCode(code); err != nil {
		return err
	}
	o.code = code
	return nil
}

func (o *Order) setCustomerID(id *kernel.UUID) error {
	if id == nil {
		o.customerID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c := *id
	o.customerID = &c
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, dup := seen[it.ProductID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"line items are invalid", fmt.Errorf("product %s is ordered more than once", it.ProductID()))
		}
		seen[it.ProductID()] = struct{}{}
	}
	o.items = append([]LineItem(nil), items...)
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setActor(actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	o.createdBy = actor
	return nil
}
