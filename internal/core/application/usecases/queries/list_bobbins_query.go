package queries

import (
	"errors"
	"strings"

	"printfarm/internal/pkg/guard"
)

var ErrListBobbinsQueryIsNotConstructed = errors.New(
	"ListBobbinsQuery must be created via NewListBobbinsQuery constructor",
)

// ListBobbinsQuery lists spools grouped by material, fullest first. Empty
// filters match everything; matching ignores case.
type ListBobbinsQuery struct {
	filamentType string
	color        string
	guard        guard.ConstructorGuard
}

func NewListBobbinsQuery(filamentType, color string) ListBobbinsQuery {
	return ListBobbinsQuery{
		filamentType: strings.TrimSpace(filamentType),
		color:        strings.TrimSpace(color),
		guard:        guard.NewConstructorGuard(),
	}
}

func (q ListBobbinsQuery) Validate() error {
	return q.guard.Validate(ErrListBobbinsQueryIsNotConstructed)
}

func (q ListBobbinsQuery) Type() string  { return q.filamentType }
func (q ListBobbinsQuery) Color() string { return q.color }
