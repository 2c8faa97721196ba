package kernel

import (
	"errors"
	"fmt"
	"strings"

	"printfarm/internal/pkg/errs"
	"printfarm/internal/pkg/guard"
)

var ErrMaterialIsNotConstructed = errors.New("material must be created via NewMaterial")

// Material is a filament type and color pair, e.g. PLA/Red.
//
// Both parts are trimmed on construction. Matching is case-insensitive, so a
// requirement for "pla"/"red" is satisfied by a bobbin labelled "PLA"/"Red";
// the original spelling is kept for display.
type Material struct {
	filamentType string
	color        string
	guard        guard.ConstructorGuard
}

func NewMaterial(filamentType, color string) (Material, error) {
	filamentType = strings.TrimSpace(filamentType)
	color = strings.TrimSpace(color)

	var err error
	if filamentType == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("filament type"))
	}
	if color == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("filament color"))
	}
	if err != nil {
		return Material{}, err
	}

	return Material{
		filamentType: filamentType,
		color:        color,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (m Material) Type() string {
	return m.filamentType
}

func (m Material) Color() string {
	return m.color
}

// Matches reports whether two materials name the same filament.
func (m Material) Matches(other Material) bool {
	return strings.EqualFold(m.filamentType, other.filamentType) &&
		strings.EqualFold(m.color, other.color)
}

// Key is the normalized "TYPE/color" form used to key requirements and
// persisted bobbin selections.
func (m Material) Key() string {
	return fmt.Sprintf("%s/%s", strings.ToUpper(m.filamentType), strings.ToLower(m.color))
}

func (m Material) String() string {
	return fmt.Sprintf("%s/%s", m.filamentType, m.color)
}

func (m Material) Validate() error {
	return m.guard.Validate(ErrMaterialIsNotConstructed)
}
