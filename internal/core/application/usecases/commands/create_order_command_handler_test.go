package commands_test

import (
	"testing"

	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFulfillment() services.OrderFulfillment {
	return services.NewOrderFulfillment(services.NewBobbinAllocator(services.PerUnit))
}

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	newCmd := func(t *testing.T, productID kernel.UUID, qty int) commands.CreateOrderCommand {
		t.Helper()
		cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), nil, []commands.OrderItem{
			{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromInt(7)},
		}, false, "alice")
		require.NoError(t, err)
		return cmd
	}

	t.Run("should create a pending order and reserve its stock", func(t *testing.T) {
		ctx := t.Context()
		p := newTestProduct(t, product.Stock{Available: 20})
		cmd := newCmd(t, p.ID(), 10)
		m := newUoWMocks()

		mock.InOrder(
			m.uow.On("Begin", anyCtx).Return(nil).Once(),
			m.products.On("GetForUpdate", anyCtx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once(),
			m.products.On("Update", anyCtx, p).Return(nil).Once(),
			m.movements.On("Append", anyCtx, mock.MatchedBy(func(ms []product.StockMovement) bool {
				return len(ms) == 1 && ms[0].Kind == product.MovementReserve && ms[0].ReservedDelta == 10
			})).Return(nil).Once(),
			m.orders.On("Add", anyCtx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			m.uow.On("Commit", anyCtx).Return(nil).Once(),
			m.uow.On("Rollback", anyCtx).Return(nil).Once(),
		)

		o, err := commands.NewCreateOrderCommandHandler(m.factory(), newFulfillment()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "KEY-01", o.Items()[0].ProductCode())
		assert.True(t, o.Total().Equal(decimal.NewFromInt(70)))
		assert.Equal(t, "alice", o.CreatedBy())
		assert.Equal(t, product.Stock{Available: 10, Reserved: 10}, p.Stock())
		m.assertExpectations(t)
	})

	t.Run("scenario A: should not create an order against empty stock", func(t *testing.T) {
		ctx := t.Context()
		p := newTestProduct(t, product.Stock{})
		cmd := newCmd(t, p.ID(), 10)
		m := newUoWMocks()

		mock.InOrder(
			m.uow.On("Begin", anyCtx).Return(nil).Once(),
			m.products.On("GetForUpdate", anyCtx, []kernel.UUID{p.ID()}).Return([]*product.Product{p}, nil).Once(),
			m.uow.On("Rollback", anyCtx).Return(nil).Once(),
		)

		_, err := commands.NewCreateOrderCommandHandler(m.factory(), newFulfillment()).Handle(ctx, cmd)

		require.ErrorIs(t, err, product.ErrInsufficientStock)
		m.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should report a product that does not exist", func(t *testing.T) {
		ctx := t.Context()
		missing := kernel.NewUUID()
		cmd := newCmd(t, missing, 1)
		m := newUoWMocks()

		mock.InOrder(
			m.uow.On("Begin", anyCtx).Return(nil).Once(),
			m.products.On("GetForUpdate", anyCtx, []kernel.UUID{missing}).Return([]*product.Product{}, nil).Once(),
			m.uow.On("Rollback", anyCtx).Return(nil).Once(),
		)

		_, err := commands.NewCreateOrderCommandHandler(m.factory(), newFulfillment()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
