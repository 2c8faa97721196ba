package queries_test

import (
	"context"
	"testing"

	"printfarm/internal/core/application/usecases/queries"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestQueriesNotConstructedViaConstructor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"get order", queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed},
		{"list orders", queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed},
		{"get product", queries.GetProductQuery{}.Validate(), queries.ErrGetProductQueryIsNotConstructed},
		{"list products", queries.ListProductsQuery{}.Validate(), queries.ErrListProductsQueryIsNotConstructed},
		{"list bobbins", queries.ListBobbinsQuery{}.Validate(), queries.ErrListBobbinsQueryIsNotConstructed},
		{
			"list movements",
			queries.ListStockMovementsQuery{}.Validate(),
			queries.ErrListStockMovementsQueryIsNotConstructed,
		},
		{"allocate", queries.AllocateBobbinsQuery{}.Validate(), queries.ErrAllocateBobbinsQueryIsNotConstructed},
		{
			"allocate for product",
			queries.AllocateBobbinsForProductQuery{}.Validate(),
			queries.ErrAllocateBobbinsForProductQueryIsNotConstructed,
		},
		{"audit", queries.AuditReservationsQuery{}.Validate(), queries.ErrAuditReservationsQueryIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}
}

func TestNewGetOrderQuery_RejectsZeroID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewListOrdersQuery(t *testing.T) {
	q, err := queries.NewListOrdersQuery(nil)
	require.NoError(t, err)
	assert.Nil(t, q.Status())

	status := order.Produced
	q, err = queries.NewListOrdersQuery(&status)
	require.NoError(t, err)
	require.NotNil(t, q.Status())
	assert.Equal(t, order.Produced, *q.Status())

	unknown := order.Unknown
	_, err = queries.NewListOrdersQuery(&unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListStockMovementsQuery_Limit(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewListStockMovementsQuery(id, nil)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultMovementLimit, q.Limit())

	q, err = queries.NewListStockMovementsQuery(id, intPtr(5))
	require.NoError(t, err)
	assert.Equal(t, 5, q.Limit())

	_, err = queries.NewListStockMovementsQuery(id, intPtr(0))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewListStockMovementsQuery(id, intPtr(queries.MaxMovementLimit+1))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewAllocateBobbinsForProductQuery(t *testing.T) {
	id := kernel.NewUUID()

	q, err := queries.NewAllocateBobbinsForProductQuery(id, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Quantity())

	_, err = queries.NewAllocateBobbinsForProductQuery(id, intPtr(-2))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewAllocateBobbinsQuery_CollectsErrors(t *testing.T) {
	_, err := queries.NewAllocateBobbinsQuery(
		[]queries.RequirementInput{{Type: "", Color: "Red", Weight: 10}},
		[]queries.BobbinInput{{ID: kernel.NewUUID(), Type: "PLA", Color: "Red", RemainingWeight: -1}},
		1,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requirement 0")
	assert.Contains(t, err.Error(), "bobbin 0")

	_, err = queries.NewAllocateBobbinsQuery(nil, nil, 1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestAllocateBobbinsQueryHandler_PicksLargestRemaining(t *testing.T) {
	small := kernel.MustUUID("00000000-0000-0000-0000-00000000000a")
	large := kernel.MustUUID("00000000-0000-0000-0000-00000000000b")
	query, err := queries.NewAllocateBobbinsQuery(
		[]queries.RequirementInput{
			{Type: "PLA", Color: "Red", Weight: 30},
			{Type: "PETG", Color: "Black", Weight: 5},
		},
		[]queries.BobbinInput{
			{ID: small, Type: "pla", Color: " red ", TotalWeight: 1000, RemainingWeight: 120},
			{ID: large, Type: "PLA", Color: "Red", RemainingWeight: 800},
		},
		2,
	)
	require.NoError(t, err)

	handler := queries.NewAllocateBobbinsQueryHandler(services.NewBobbinAllocator(services.PerUnit))
	view, err := handler.Handle(context.Background(), query)
	require.NoError(t, err)

	assert.False(t, view.Satisfied)
	assert.Equal(t, "per_unit", view.Policy)
	require.Len(t, view.Selections, 2)

	red := view.Selections[0]
	require.NotNil(t, red.BobbinID)
	assert.True(t, large.IsEqual(*red.BobbinID))
	assert.InDelta(t, 30.0, red.Needed, 1e-9)
	assert.Empty(t, red.Error)

	black := view.Selections[1]
	assert.Nil(t, black.BobbinID)
	assert.Contains(t, black.Error, services.ErrUnsatisfiableFilamentRequirement.Error())
}

func TestViewsFromDomain(t *testing.T) {
	material, err := kernel.NewMaterial("PLA", "Red")
	require.NoError(t, err)
	req, err := product.NewFilamentRequirement(material, 25)
	require.NoError(t, err)
	p, err := product.RestoreProduct(kernel.NewUUID(), "KEY-01", "Keychain", 12,
		[]product.FilamentRequirement{req}, product.Stock{Available: 7, Reserved: 3}, 4)
	require.NoError(t, err)

	pv := queries.ProductViewFromDomain(p)
	assert.Equal(t, 10, pv.Total())
	assert.Equal(t, int64(4), pv.Version)
	require.Len(t, pv.Filaments, 1)
	assert.Equal(t, "PLA", pv.Filaments[0].Type)

	item, err := order.NewLineItem(p.ID(), p.Code(), p.Name(), 3, decimal.RequireFromString("2.50"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20250101-000001", nil, []order.LineItem{item}, false, "alice")
	require.NoError(t, err)

	ov := queries.OrderViewFromDomain(o)
	assert.Equal(t, order.Pending, ov.Status)
	assert.Equal(t, "alice", ov.CreatedBy)
	require.Len(t, ov.Items, 1)
	assert.True(t, decimal.RequireFromString("7.50").Equal(ov.Items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("7.50").Equal(ov.Total))
	assert.Zero(t, ov.ProductionQuantity())
}
