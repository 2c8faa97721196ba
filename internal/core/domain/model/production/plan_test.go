package production_test

import (
	"testing"

	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrayPlan(t *testing.T) {
	t.Run("should multiply trays by capacity", func(t *testing.T) {
		p := production.NewTrayPlan(3, 8)

		q, err := p.Resolve()

		require.NoError(t, err)
		assert.Equal(t, 24, q)
		assert.Equal(t, production.ModeTray, p.Mode())
	})

	t.Run("should recompute when table count or capacity changes", func(t *testing.T) {
		p := production.NewTrayPlan(3, 8)

		p.SetTableCount(2)
		assert.Equal(t, 16, p.Quantity())

		p.SetCapacity(10)
		assert.Equal(t, 20, p.Quantity())
	})

	t.Run("should reject a zero capacity product", func(t *testing.T) {
		p := production.NewTrayPlan(5, 0)

		_, err := p.Resolve()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUnitPlan(t *testing.T) {
	t.Run("last write wins", func(t *testing.T) {
		p := production.NewTrayPlan(3, 8)

		p.SetUnits(5)
		p.SetUnits(12)
		p.SetTableCount(10)

		q, err := p.Resolve()
		require.NoError(t, err)
		assert.Equal(t, 12, q)
		assert.Equal(t, production.ModeUnit, p.Mode())
	})

	t.Run("switching back to trays recomputes", func(t *testing.T) {
		p := production.NewUnitPlan(7)
		p.SetCapacity(4)
		p.SetTableCount(2)

		p.UseTrays()

		assert.Equal(t, 8, p.Quantity())
	})

	t.Run("should reject negative units", func(t *testing.T) {
		_, err := production.NewUnitPlan(-3).Resolve()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value plan has no mode", func(t *testing.T) {
		_, err := production.Plan{}.Resolve()
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestParseMode(t *testing.T) {
	m, err := production.ParseMode("tray")
	require.NoError(t, err)
	assert.Equal(t, production.ModeTray, m)
	assert.Equal(t, "unit", production.ModeUnit.String())

	_, err = production.ParseMode("batch")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
