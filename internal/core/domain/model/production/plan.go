// Package production resolves how many units a production run adds to stock.
package production

import (
	"fmt"

	"printfarm/internal/pkg/errs"
)

// Mode selects how a Plan derives its quantity.
type Mode int

const (
	ModeUnknown Mode = iota
	// ModeTray multiplies the number of trays by the product's tray capacity.
	ModeTray
	// ModeUnit takes a raw unit count.
	ModeUnit
)

func getModeStrings() map[Mode]string {
	return map[Mode]string{
		ModeTray: "tray",
		ModeUnit: "unit",
	}
}

func ParseMode(s string) (Mode, error) {
	for m, str := range getModeStrings() {
		if str == s {
			return m, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"production type is invalid",
		fmt.Errorf("%q is neither tray nor unit", s),
	)
}

func (m Mode) String() string {
	if s, ok := getModeStrings()[m]; ok {
		return s
	}
	return "unknown"
}

// Plan is the editable production request. In tray mode the quantity is
// recomputed on every change of table count or capacity. Switching to unit
// mode keeps only the last unit count written; there is no history.
type Plan struct {
	mode       Mode
	tableCount int
	capacity   int
	units      int
	quantity   int
}

func NewTrayPlan(tableCount, capacity int) Plan {
	p := Plan{mode: ModeTray, tableCount: tableCount, capacity: capacity}
	p.recompute()
	return p
}

func NewUnitPlan(units int) Plan {
	return Plan{mode: ModeUnit, units: units, quantity: units}
}

func (p Plan) Mode() Mode {
	return p.mode
}

func (p Plan) TableCount() int {
	return p.tableCount
}

func (p Plan) Capacity() int {
	return p.capacity
}

// Quantity is the current, unvalidated result.
func (p Plan) Quantity() int {
	return p.quantity
}

func (p *Plan) SetTableCount(n int) {
	p.tableCount = n
	p.recompute()
}

func (p *Plan) SetCapacity(n int) {
	p.capacity = n
	p.recompute()
}

// SetUnits switches the plan to unit mode.
func (p *Plan) SetUnits(n int) {
	p.mode = ModeUnit
	p.units = n
	p.quantity = n
}

// UseTrays switches the plan back to tray mode and recomputes.
func (p *Plan) UseTrays() {
	p.mode = ModeTray
	p.recompute()
}

// Resolve returns the quantity to produce, rejecting results that are not positive.
func (p Plan) Resolve() (int, error) {
	if p.mode != ModeTray && p.mode != ModeUnit {
		return 0, errs.NewValueIsRequiredError("production type")
	}
	if p.quantity <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"production quantity is invalid",
			fmt.Errorf("%s plan resolves to %d", p.mode, p.quantity),
		)
	}
	return p.quantity, nil
}

func (p *Plan) recompute() {
	if p.mode == ModeTray {
		p.quantity = p.tableCount * p.capacity
	}
}
