package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/errs"
)

var ErrUnsatisfiableFilamentRequirement = errors.New("unsatisfiable filament requirement")

// UnsatisfiableFilamentRequirementError names one material no bobbin can serve.
// BestAvailable is the largest remaining weight among spools of that
// material, or zero when none exist.
type UnsatisfiableFilamentRequirementError struct {
	Material      kernel.Material
	Needed        float64
	BestAvailable float64
}

func (e *UnsatisfiableFilamentRequirementError) Error() string {
	return fmt.Sprintf("%s: %s needs %gg, best bobbin has %gg",
		ErrUnsatisfiableFilamentRequirement, e.Material, e.Needed, e.BestAvailable)
}

func (e *UnsatisfiableFilamentRequirementError) Unwrap() error {
	return ErrUnsatisfiableFilamentRequirement
}

// SufficiencyPolicy decides how much filament a bobbin must hold to qualify.
type SufficiencyPolicy int

const (
	// PerUnit requires the weight of a single unit.
	PerUnit SufficiencyPolicy = iota
	// OrderTotal requires the weight of a single unit times the run quantity.
	OrderTotal
)

func ParseSufficiencyPolicy(s string) (SufficiencyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per_unit":
		return PerUnit, nil
	case "order_total":
		return OrderTotal, nil
	default:
		return PerUnit, errs.NewValueIsInvalidErrorWithCause(
			"filament sufficiency is invalid",
			fmt.Errorf("%q is neither per_unit nor order_total", s),
		)
	}
}

func (p SufficiencyPolicy) String() string {
	if p == OrderTotal {
		return "order_total"
	}
	return "per_unit"
}

// Selection is the allocator's answer for one requirement. Exactly one of
// BobbinID and Err is set.
type Selection struct {
	Requirement product.FilamentRequirement
	Needed      float64
	BobbinID    *kernel.UUID
	Remaining   float64
	Err         error
}

// Allocation holds one Selection per requirement, in requirement order.
type Allocation struct {
	Selections []Selection
}

func (a Allocation) Satisfied() bool {
	for _, s := range a.Selections {
		if s.Err != nil {
			return false
		}
	}
	return true
}

// Err joins the per-requirement failures, or returns nil.
func (a Allocation) Err() error {
	var err error
	for _, s := range a.Selections {
		if s.Err != nil {
			err = errors.Join(err, s.Err)
		}
	}
	return err
}

// Chosen maps requirement keys to the selected bobbin.
func (a Allocation) Chosen() map[string]kernel.UUID {
	chosen := make(map[string]kernel.UUID, len(a.Selections))
	for _, s := range a.Selections {
		if s.BobbinID != nil {
			chosen[s.Requirement.Key()] = *s.BobbinID
		}
	}
	return chosen
}

// BobbinAllocator picks a spool for every filament requirement of a product.
//
// For each requirement it keeps the bobbins of the same material whose
// remaining weight covers the needed grams and selects the fullest one. Ties
// go to the smaller bobbin id. Selection never changes a bobbin.
type BobbinAllocator struct {
	policy SufficiencyPolicy
}

func NewBobbinAllocator(policy SufficiencyPolicy) BobbinAllocator {
	return BobbinAllocator{policy: policy}
}

func (a BobbinAllocator) Policy() SufficiencyPolicy {
	return a.policy
}

// Allocate is pure. quantity is the number of units to print and only
// matters under OrderTotal; values below one count as one.
func (a BobbinAllocator) Allocate(
	requirements []product.FilamentRequirement,
	bobbins []*bobbin.Bobbin,
	quantity int,
) Allocation {
	if quantity < 1 {
		quantity = 1
	}

	alloc := Allocation{Selections: make([]Selection, 0, len(requirements))}
	for _, req := range requirements {
		alloc.Selections = append(alloc.Selections, a.selectFor(req, bobbins, quantity))
	}
	return alloc
}

func (a BobbinAllocator) selectFor(req product.FilamentRequirement, bobbins []*bobbin.Bobbin, quantity int) Selection {
	needed := req.WeightPerUnit()
	if a.policy == OrderTotal {
		needed *= float64(quantity)
	}

	var (
		candidates    []*bobbin.Bobbin
		bestAvailable float64
	)
	for _, b := range bobbins {
		if b == nil || !b.Material().Matches(req.Material()) {
			continue
		}
		if b.RemainingWeight() > bestAvailable {
			bestAvailable = b.RemainingWeight()
		}
		if b.RemainingWeight() >= needed {
			candidates = append(candidates, b)
		}
	}

	if len(candidates) == 0 {
		return Selection{
			Requirement: req,
			Needed:      needed,
			Err: &UnsatisfiableFilamentRequirementError{
				Material:      req.Material(),
				Needed:        needed,
				BestAvailable: bestAvailable,
			},
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].RemainingWeight() != candidates[j].RemainingWeight() {
			return candidates[i].RemainingWeight() > candidates[j].RemainingWeight()
		}
		return candidates[i].ID().Compare(candidates[j].ID()) < 0
	})

	best := candidates[0]
	id := best.ID()
	return Selection{
		Requirement: req,
		Needed:      needed,
		BobbinID:    &id,
		Remaining:   best.RemainingWeight(),
	}
}
