package kernel_test

import (
	"testing"

	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterial(t *testing.T) {
	t.Run("should trim both parts", func(t *testing.T) {
		m, err := kernel.NewMaterial("  PLA ", " Red\t")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "PLA", m.Type())
		assert.Equal(t, "Red", m.Color())
		assert.Equal(t, "PLA/Red", m.String())
	})

	t.Run("should require type and color", func(t *testing.T) {
		_, err := kernel.NewMaterial(" ", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "filament type")
		assert.Contains(t, err.Error(), "filament color")
	})

	t.Run("zero value does not validate", func(t *testing.T) {
		var m kernel.Material
		assert.ErrorIs(t, m.Validate(), kernel.ErrMaterialIsNotConstructed)
	})
}

func TestMaterial_Matches(t *testing.T) {
	pla, _ := kernel.NewMaterial("PLA", "Red")
	lower, _ := kernel.NewMaterial("pla", "red")
	petg, _ := kernel.NewMaterial("PETG", "Red")
	blue, _ := kernel.NewMaterial("PLA", "Blue")

	assert.True(t, pla.Matches(lower))
	assert.Equal(t, pla.Key(), lower.Key())
	assert.Equal(t, "PLA/red", pla.Key())
	assert.False(t, pla.Matches(petg))
	assert.False(t, pla.Matches(blue))
}
