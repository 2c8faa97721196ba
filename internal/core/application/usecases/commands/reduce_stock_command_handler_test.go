package commands_test

import (
	"errors"
	"testing"

	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReduceStockCommandHandler_Handle(t *testing.T) {
	t.Run("should write off available units and append a movement", func(t *testing.T) {
		ctx := t.Context()
		p := newTestProduct(t, product.Stock{Available: 20})
		cmd, err := commands.NewReduceStockCommand(p.ID(), 5, "defective", "warped", "alice")
		require.NoError(t, err)
		m := newUoWMocks()

		mock.InOrder(
			m.uow.On("Begin", anyCtx).Return(nil).Once(),
			m.products.On("GetForUpdate", anyCtx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once(),
			m.products.On("Update", anyCtx, p).Return(nil).Once(),
			m.movements.On("Append", anyCtx, mock.MatchedBy(func(ms []product.StockMovement) bool {
				return len(ms) == 1 && ms[0].Kind == product.MovementDeduct &&
					ms[0].AvailableDelta == -5 && ms[0].Reason == product.ReasonDefective
			})).Return(nil).Once(),
			m.uow.On("Commit", anyCtx).Return(nil).Once(),
			m.uow.On("Rollback", anyCtx).Return(nil).Once(),
		)

		got, err := commands.NewReduceStockCommandHandler(m.productFactory()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, product.Stock{Available: 15}, got.Stock())
		m.assertExpectations(t)
	})

	t.Run("should fail without writing when stock is insufficient", func(t *testing.T) {
		ctx := t.Context()
		p := newTestProduct(t, product.Stock{Available: 20})
		cmd, err := commands.NewReduceStockCommand(p.ID(), 999, "loss", "", "alice")
		require.NoError(t, err)
		m := newUoWMocks()

		mock.InOrder(
			m.uow.On("Begin", anyCtx).Return(nil).Once(),
			m.products.On("GetForUpdate", anyCtx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once(),
			m.uow.On("Rollback", anyCtx).Return(nil).Once(),
		)

		_, err = commands.NewReduceStockCommandHandler(m.productFactory()).Handle(ctx, cmd)

		var insufficient *product.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 999, insufficient.Requested)
		assert.Equal(t, 20, insufficient.Available)
		m.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should report a missing product", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, err := commands.NewReduceStockCommand(id, 1, "fire", "", "alice")
		require.NoError(t, err)
		m := newUoWMocks()

		mock.InOrder(
			m.uow.On("Begin", anyCtx).Return(nil).Once(),
			m.products.On("GetForUpdate", anyCtx, []kernel.UUID{id}).Return(nil, errs.NewObjectNotFoundError("product", id)).Once(),
			m.uow.On("Rollback", anyCtx).Return(nil).Once(),
		)

		_, err = commands.NewReduceStockCommandHandler(m.productFactory()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should return the begin error", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewReduceStockCommand(kernel.NewUUID(), 1, "fire", "", "alice")
		require.NoError(t, err)
		m := newUoWMocks()
		m.uow.On("Begin", anyCtx).Return(errors.New("begin error")).Once()

		_, err = commands.NewReduceStockCommandHandler(m.productFactory()).Handle(ctx, cmd)

		require.EqualError(t, err, "begin error")
	})
}
