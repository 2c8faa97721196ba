package order

import (
	"errors"
	"fmt"
	"strings"

	"printfarm/internal/pkg/errs"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError carries both ends of a rejected transition.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status is the fulfillment state of an order.
//
//	Pending ──> Producing ──> Produced ──> Preparing ──> Ready
//	   │            │             │             │           │
//	   └────────────┴─────────────┴──────┬──────┴───────────┘ (confirm)
//	                                     v
//	                                 Cancelled
//
// Forward moves go one step at a time. Cancelled is terminal and is reached
// by cancelling or deleting the order.
type Status int

const (
	Unknown Status = iota
	Pending
	Producing
	Produced
	Preparing
	Ready
	Cancelled
)

type statusText struct {
	code  string
	label string
}

func getStatusTexts() map[Status]statusText {
	return map[Status]statusText{
		Pending:   {"PENDING", "Beklemede"},
		Producing: {"PRODUCING", "Üretimde"},
		Produced:  {"PRODUCED", "Üretildi"},
		Preparing: {"PREPARING", "Hazırlanıyor"},
		Ready:     {"READY", "Hazır"},
		Cancelled: {"CANCELLED", "İptal Edildi"},
	}
}

func getSuccessors() map[Status]Status {
	return map[Status]Status{
		Pending:   Producing,
		Producing: Produced,
		Produced:  Preparing,
		Preparing: Ready,
	}
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Producing, Produced, Preparing, Ready, Cancelled}
}

// ParseStatus decodes a canonical code or a display label. Matching ignores
// case and surrounding space. Unrecognized text is an error.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses() {
		txt := getStatusTexts()[st]
		if strings.EqualFold(s, txt.code) || strings.EqualFold(s, txt.label) {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a known status", s))
}

// StatusFromText is the lenient decoder: unrecognized text maps to Pending.
func StatusFromText(s string) Status {
	st, err := ParseStatus(s)
	if err != nil {
		return Pending
	}
	return st
}

func (s Status) Validate() error {
	if _, ok := getStatusTexts()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical code, e.g. "PRODUCING".
func (s Status) String() string {
	if txt, ok := getStatusTexts()[s]; ok {
		return txt.code
	}
	return "UNKNOWN"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Label returns the display label shown to operators.
func (s Status) Label() string {
	if txt, ok := getStatusTexts()[s]; ok {
		return txt.label
	}
	return "Bilinmiyor"
}

// Next returns the forward successor, if any.
func (s Status) Next() (Status, bool) {
	next, ok := getSuccessors()[s]
	return next, ok
}

func (s Status) IsTerminal() bool {
	return s == Cancelled
}

// CanTransitionTo reports whether target is the forward successor of s.
// Cancellation is checked separately by CanCancel.
func (s Status) CanTransitionTo(target Status) error {
	if next, ok := s.Next(); ok && next == target {
		return nil
	}
	return &InvalidTransitionError{From: s, To: target}
}

// CanCancel reports whether an order in status s may be cancelled.
// Ready orders need an explicit confirmation.
func (s Status) CanCancel(confirmed bool) error {
	switch s {
	case Pending, Producing, Produced, Preparing:
		return nil
	case Ready:
		if !confirmed {
			return errs.NewValueIsRequiredErrorWithCause(
				"confirm",
				errors.New("cancelling a READY order needs explicit confirmation"),
			)
		}
		return nil
	default:
		return &InvalidTransitionError{From: s, To: Cancelled}
	}
}
