package commands_test

import (
	"testing"

	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/production"
	"printfarm/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOrderStatusCommand_Plan(t *testing.T) {
	tray := production.ModeTray
	unit := production.ModeUnit

	tests := []struct {
		name     string
		params   commands.SetOrderStatusParams
		wantNil  bool
		wantMode production.Mode
		wantQty  int
	}{
		{name: "no production fields", wantNil: true},
		{name: "raw quantity", params: commands.SetOrderStatusParams{ProductionQuantity: intPtr(20)}, wantMode: unit, wantQty: 20},
		{name: "table count alone", params: commands.SetOrderStatusParams{TableCount: intPtr(3)}, wantMode: tray},
		{name: "explicit tray", params: commands.SetOrderStatusParams{ProductionType: &tray, TableCount: intPtr(2), ProductionQuantity: intPtr(9)}, wantMode: tray},
		{name: "explicit unit wins over table count", params: commands.SetOrderStatusParams{ProductionType: &unit, TableCount: intPtr(2), ProductionQuantity: intPtr(9)}, wantMode: unit, wantQty: 9},
		{name: "unit type without quantity", params: commands.SetOrderStatusParams{ProductionType: &unit}, wantMode: unit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewSetOrderStatusCommand(kernel.NewUUID(), order.Producing, tt.params)
			require.NoError(t, err)

			plan := cmd.Plan()

			if tt.wantNil {
				assert.Nil(t, plan)
				return
			}
			require.NotNil(t, plan)
			assert.Equal(t, tt.wantMode, plan.Mode())
			assert.Equal(t, tt.wantQty, plan.Quantity())
		})
	}
}

func TestNewSetOrderStatusCommand(t *testing.T) {
	t.Run("should reject an unknown target", func(t *testing.T) {
		_, err := commands.NewSetOrderStatusCommand(kernel.NewUUID(), order.Unknown, commands.SetOrderStatusParams{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should default the actor", func(t *testing.T) {
		cmd, err := commands.NewSetOrderStatusCommand(kernel.NewUUID(), order.Ready, commands.SetOrderStatusParams{})

		require.NoError(t, err)
		assert.Equal(t, commands.DefaultActor, cmd.Actor())
	})

	t.Run("should build per-product unit plans", func(t *testing.T) {
		productID := kernel.NewUUID()
		cmd, err := commands.NewSetOrderStatusCommand(kernel.NewUUID(), order.Producing, commands.SetOrderStatusParams{
			ProductQuantities: map[kernel.UUID]int{productID: 4},
		})
		require.NoError(t, err)

		plans := cmd.PerProduct()

		require.Contains(t, plans, productID)
		assert.Equal(t, 4, plans[productID].Quantity())
	})
}
