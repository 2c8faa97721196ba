package commands_test

import (
	"context"
	"testing"
	"time"

	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/domain/model/bobbin"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// anyCtx matches any context. Handlers run inside a tracing span, so the
// context reaching the repositories is derived from the caller's one.
var anyCtx = mock.MatchedBy(func(context.Context) bool { return true })

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

type MockBobbinRepository struct{ mock.Mock }

func (m *MockBobbinRepository) Add(ctx context.Context, b *bobbin.Bobbin) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBobbinRepository) Update(ctx context.Context, b *bobbin.Bobbin) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBobbinRepository) Get(ctx context.Context, id kernel.UUID) (*bobbin.Bobbin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bobbin.Bobbin), args.Error(1)
}

func (m *MockBobbinRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*bobbin.Bobbin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bobbin.Bobbin), args.Error(1)
}

func (m *MockBobbinRepository) GetAll(ctx context.Context) ([]*bobbin.Bobbin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*bobbin.Bobbin), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockStockMovementRepository struct{ mock.Mock }

func (m *MockStockMovementRepository) Append(ctx context.Context, movements ...product.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

// MockUoW satisfies UoW, ProductUoW and BobbinUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) BobbinRepository() ports.BobbinRepository {
	args := m.Called()
	return args.Get(0).(ports.BobbinRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StockMovementRepository() ports.StockMovementRepository {
	args := m.Called()
	return args.Get(0).(ports.StockMovementRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockProductUoWFactory struct{ mock.Mock }

func (m *MockProductUoWFactory) Create() commands.ProductUoW {
	args := m.Called()
	return args.Get(0).(commands.ProductUoW)
}

type MockBobbinUoWFactory struct{ mock.Mock }

func (m *MockBobbinUoWFactory) Create() commands.BobbinUoW {
	args := m.Called()
	return args.Get(0).(commands.BobbinUoW)
}

// uowMocks wires one MockUoW to a full set of repository mocks. Repository
// accessors may be called any number of times.
type uowMocks struct {
	uow       *MockUoW
	products  *MockProductRepository
	bobbins   *MockBobbinRepository
	orders    *MockOrderRepository
	movements *MockStockMovementRepository
}

func newUoWMocks() *uowMocks {
	m := &uowMocks{
		uow:       new(MockUoW),
		products:  new(MockProductRepository),
		bobbins:   new(MockBobbinRepository),
		orders:    new(MockOrderRepository),
		movements: new(MockStockMovementRepository),
	}
	m.uow.On("ProductRepository").Return(m.products).Maybe()
	m.uow.On("BobbinRepository").Return(m.bobbins).Maybe()
	m.uow.On("OrderRepository").Return(m.orders).Maybe()
	m.uow.On("StockMovementRepository").Return(m.movements).Maybe()
	return m
}

func (m *uowMocks) factory() *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(m.uow).Once()
	return f
}

func (m *uowMocks) productFactory() *MockProductUoWFactory {
	f := new(MockProductUoWFactory)
	f.On("Create").Return(m.uow).Once()
	return f
}

func (m *uowMocks) bobbinFactory() *MockBobbinUoWFactory {
	f := new(MockBobbinUoWFactory)
	f.On("Create").Return(m.uow).Once()
	return f
}

func (m *uowMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.uow.AssertExpectations(t)
	m.products.AssertExpectations(t)
	m.bobbins.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.movements.AssertExpectations(t)
}

func newTestProduct(t *testing.T, stock product.Stock) *product.Product {
	t.Helper()
	m, err := kernel.NewMaterial("PLA", "Red")
	require.NoError(t, err)
	req, err := product.NewFilamentRequirement(m, 25)
	require.NoError(t, err)
	p, err := product.RestoreProduct(kernel.NewUUID(), "KEY-01", "Keychain", 12,
		[]product.FilamentRequirement{req}, stock, 3)
	require.NoError(t, err)
	return p
}

func newTestBobbin(t *testing.T, remaining float64) *bobbin.Bobbin {
	t.Helper()
	m, err := kernel.NewMaterial("pla", "red")
	require.NoError(t, err)
	b, err := bobbin.RestoreBobbin(kernel.NewUUID(), m, "Elegoo", 1000, remaining)
	require.NoError(t, err)
	return b
}

func restoreTestOrder(t *testing.T, p *product.Product, qty int, status order.Status) *order.Order {
	t.Helper()
	li, err := order.NewLineItem(p.ID(), p.Code(), p.Name(), qty, decimal.NewFromInt(5))
	require.NoError(t, err)
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:        kernel.NewUUID(),
		Code:      order.NewCode(time.Now()),
		Items:     []order.LineItem{li},
		Status:    status,
		CreatedBy: "alice",
		UpdatedBy: "alice",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	return o
}

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }
