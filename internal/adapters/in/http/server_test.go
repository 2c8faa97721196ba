package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "printfarm/internal/adapters/in/http"
	"printfarm/internal/core/application/usecases/commands"
	"printfarm/internal/core/application/usecases/queries"
	"printfarm/internal/core/domain/model/kernel"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/generated/servers"
	"printfarm/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockSetOrderStatusHandler struct{ mock.Mock }

func (m *MockSetOrderStatusHandler) Handle(ctx context.Context, cmd commands.SetOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDeleteOrderHandler struct{ mock.Mock }

func (m *MockDeleteOrderHandler) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockReduceStockHandler struct{ mock.Mock }

func (m *MockReduceStockHandler) Handle(ctx context.Context, cmd commands.ReduceStockCommand) (*product.Product, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderSummary), args.Error(1)
}

type MockGetProductHandler struct{ mock.Mock }

func (m *MockGetProductHandler) Handle(ctx context.Context, query queries.GetProductQuery) (queries.ProductView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ProductView), args.Error(1)
}

type recordingObserver struct {
	routes []string
	codes  []int
}

func (o *recordingObserver) ObserveHTTP(_ string, route string, status int, _ time.Duration) {
	o.routes = append(o.routes, route)
	o.codes = append(o.codes, status)
}

func newRouter(t *testing.T, h httpadapter.Handlers, decode httpadapter.StatusDecoder) (*echo.Echo, *recordingObserver) {
	t.Helper()
	if h.AllocateBobbins == nil {
		h.AllocateBobbins = queries.NewAllocateBobbinsQueryHandler(services.NewBobbinAllocator(services.PerUnit))
	}
	observer := &recordingObserver{}
	e, err := httpadapter.NewRouter(httpadapter.NewServer(h, decode), httpadapter.RouterConfig{Observer: observer})
	require.NoError(t, err)
	return e, observer
}

func do(e *echo.Echo, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newKeychain(t *testing.T, available int) *product.Product {
	t.Helper()
	material, err := kernel.NewMaterial("PLA", "Red")
	require.NoError(t, err)
	req, err := product.NewFilamentRequirement(material, 25)
	require.NoError(t, err)
	p, err := product.RestoreProduct(kernel.NewUUID(), "KEY-01", "Keychain", 12,
		[]product.FilamentRequirement{req}, product.Stock{Available: available}, 3)
	require.NoError(t, err)
	return p
}

func newPendingOrder(t *testing.T, p *product.Product, qty int) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(p.ID(), p.Code(), p.Name(), qty, decimal.RequireFromString("2.25"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20250101-0000A1", nil, []order.LineItem{item}, false, "alice")
	require.NoError(t, err)
	return o
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", kernel.NewUUID()), http.StatusNotFound},
		{"insufficient stock", &product.InsufficientStockError{Operation: "reserve", Requested: 10}, http.StatusConflict},
		{"invalid transition", &order.InvalidTransitionError{From: order.Ready, To: order.Producing}, http.StatusConflict},
		{"stale version", errs.NewVersionIsInvalidError("product"), http.StatusConflict},
		{"unsatisfiable", fmt.Errorf("product KEY: %w", services.ErrUnsatisfiableFilamentRequirement), http.StatusUnprocessableEntity},
		{"invalid value", errs.NewValueIsInvalidError("quantity"), http.StatusBadRequest},
		{"required value", errs.NewValueIsRequiredError("items"), http.StatusBadRequest},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "bad"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpadapter.StatusCode(tt.err))
		})
	}
}

func TestServer_CreateOrder(t *testing.T) {
	p := newKeychain(t, 20)

	t.Run("reserves and returns the order", func(t *testing.T) {
		created := newPendingOrder(t, p, 10)
		handler := &MockCreateOrderHandler{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			items := cmd.Items()
			return cmd.Actor() == "alice" && len(items) == 1 &&
				items[0].ProductID.IsEqual(p.ID()) && items[0].Quantity == 10 &&
				items[0].UnitPrice.Equal(decimal.RequireFromString("2.25"))
		})).Return(created, nil)

		e, observer := newRouter(t, httpadapter.Handlers{CreateOrder: handler}, nil)
		body := fmt.Sprintf(`{"items":[{"productId":%q,"quantity":10,"unitPrice":"2.25"}]}`, p.ID())
		rec := do(e, http.MethodPost, "/api/v1/orders", body, "X-Actor-ID", "alice")

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var got servers.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "PENDING", got.Status)
		assert.Equal(t, order.Pending.Label(), got.StatusLabel)
		assert.Equal(t, "22.50", got.Total)
		assert.Equal(t, created.ID().Bytes(), got.Id)
		handler.AssertExpectations(t)
		assert.Equal(t, []string{"/api/v1/orders"}, observer.routes)
		assert.Equal(t, []int{http.StatusCreated}, observer.codes)
	})

	t.Run("insufficient stock is a conflict", func(t *testing.T) {
		handler := &MockCreateOrderHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(nil, &product.InsufficientStockError{ProductID: p.ID(), Operation: "reserve", Requested: 50})

		e, _ := newRouter(t, httpadapter.Handlers{CreateOrder: handler}, nil)
		body := fmt.Sprintf(`{"items":[{"productId":%q,"quantity":50}]}`, p.ID())
		rec := do(e, http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var got servers.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, http.StatusConflict, got.Code)
		assert.Contains(t, got.Message, "insufficient stock")
	})

	t.Run("zero quantity never reaches the handler", func(t *testing.T) {
		handler := &MockCreateOrderHandler{}
		e, _ := newRouter(t, httpadapter.Handlers{CreateOrder: handler}, nil)
		body := fmt.Sprintf(`{"items":[{"productId":%q,"quantity":0}]}`, p.ID())
		rec := do(e, http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		e, _ := newRouter(t, httpadapter.Handlers{CreateOrder: &MockCreateOrderHandler{}}, nil)
		rec := do(e, http.MethodPost, "/api/v1/orders", `{"items":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_SetOrderStatus(t *testing.T) {
	p := newKeychain(t, 20)
	o := newPendingOrder(t, p, 10)
	target := "/api/v1/orders/" + o.ID().String() + "/status"

	t.Run("passes the production plan through", func(t *testing.T) {
		handler := &MockSetOrderStatusHandler{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetOrderStatusCommand) bool {
			plan := cmd.Plan()
			return cmd.Target() == order.Producing && cmd.Actor() == httpadapter.DefaultActor &&
				plan != nil && plan.Quantity() == 20
		})).Return(o, nil)

		e, _ := newRouter(t, httpadapter.Handlers{SetOrderStatus: handler}, httpadapter.StrictStatusDecoder)
		rec := do(e, http.MethodPut, target, `{"status":"producing","productionQuantity":20}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		handler.AssertExpectations(t)
	})

	t.Run("accepts the display label", func(t *testing.T) {
		handler := &MockSetOrderStatusHandler{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SetOrderStatusCommand) bool {
			return cmd.Target() == order.Ready
		})).Return(o, nil)

		e, _ := newRouter(t, httpadapter.Handlers{SetOrderStatus: handler}, httpadapter.StrictStatusDecoder)
		rec := do(e, http.MethodPut, target, `{"status":"Hazır"}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("strict decoding rejects unknown text", func(t *testing.T) {
		handler := &MockSetOrderStatusHandler{}
		e, _ := newRouter(t, httpadapter.Handlers{SetOrderStatus: handler}, httpadapter.StrictStatusDecoder)
		rec := do(e, http.MethodPut, target, `{"status":"SHIPPED"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("backward jump is a conflict", func(t *testing.T) {
		handler := &MockSetOrderStatusHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(nil, &order.InvalidTransitionError{From: order.Ready, To: order.Producing})

		e, _ := newRouter(t, httpadapter.Handlers{SetOrderStatus: handler}, nil)
		rec := do(e, http.MethodPut, target, `{"status":"PRODUCING","skipProduction":true}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("no usable bobbin is unprocessable", func(t *testing.T) {
		handler := &MockSetOrderStatusHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("product KEY-01: %w", services.ErrUnsatisfiableFilamentRequirement))

		e, _ := newRouter(t, httpadapter.Handlers{SetOrderStatus: handler}, nil)
		rec := do(e, http.MethodPut, target, `{"status":"PRODUCING","productionQuantity":5}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("bad order id", func(t *testing.T) {
		e, _ := newRouter(t, httpadapter.Handlers{SetOrderStatus: &MockSetOrderStatusHandler{}}, nil)
		rec := do(e, http.MethodPut, "/api/v1/orders/not-a-uuid/status", `{"status":"PRODUCING"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_DeleteOrder(t *testing.T) {
	id := kernel.NewUUID()

	handler := &MockDeleteOrderHandler{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteOrderCommand) bool {
		return cmd.OrderID().IsEqual(id) && cmd.Confirm() && cmd.Actor() == "bob"
	})).Return(nil)

	e, _ := newRouter(t, httpadapter.Handlers{DeleteOrder: handler}, nil)
	rec := do(e, http.MethodDelete, "/api/v1/orders/"+id.String()+"?confirm=true", "", "X-Actor-ID", "bob")

	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	handler.AssertExpectations(t)
}

func TestServer_GetOrder_NotFound(t *testing.T) {
	id := kernel.NewUUID()
	handler := &MockGetOrderHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderView{}, errs.NewObjectNotFoundError("order", id))

	e, _ := newRouter(t, httpadapter.Handlers{GetOrder: handler}, nil)
	rec := do(e, http.MethodGet, "/api/v1/orders/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListOrders_StatusFilter(t *testing.T) {
	t.Run("lenient decoding maps unknown text to pending", func(t *testing.T) {
		handler := &MockListOrdersHandler{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			return q.Status() != nil && *q.Status() == order.Pending
		})).Return([]queries.OrderSummary{}, nil)

		e, _ := newRouter(t, httpadapter.Handlers{ListOrders: handler}, httpadapter.LenientStatusDecoder)
		rec := do(e, http.MethodGet, "/api/v1/orders?status=whatever", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		handler.AssertExpectations(t)
	})

	t.Run("no filter", func(t *testing.T) {
		handler := &MockListOrdersHandler{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			return q.Status() == nil
		})).Return([]queries.OrderSummary{{
			ID:     kernel.NewUUID(),
			Code:   "ORD-20250101-000001",
			Status: order.Producing,
			Total:  decimal.RequireFromString("4.5"),
		}}, nil)

		e, _ := newRouter(t, httpadapter.Handlers{ListOrders: handler}, nil)
		rec := do(e, http.MethodGet, "/api/v1/orders", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got []servers.OrderSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "PRODUCING", got[0].Status)
		assert.Equal(t, "4.50", got[0].Total)
	})
}

func TestServer_ReduceStock(t *testing.T) {
	p := newKeychain(t, 20)
	target := "/api/v1/products/" + p.ID().String() + "/reductions"

	t.Run("records the actor and reason", func(t *testing.T) {
		reduced := newKeychain(t, 15)
		handler := &MockReduceStockHandler{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReduceStockCommand) bool {
			return cmd.ProductID().IsEqual(p.ID()) && cmd.Quantity() == 5 &&
				cmd.Reason() == product.ReasonDefective && cmd.Actor() == "carol" && cmd.Notes() == "cracked"
		})).Return(reduced, nil)

		e, _ := newRouter(t, httpadapter.Handlers{ReduceStock: handler}, nil)
		rec := do(e, http.MethodPost, target, `{"quantity":5,"reason":"defective","notes":"cracked"}`,
			"X-Actor-ID", "carol")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got servers.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 15, got.AvailableStock)
		assert.Equal(t, 15, got.TotalStock)
	})

	t.Run("more than available is a conflict", func(t *testing.T) {
		handler := &MockReduceStockHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).
			Return(nil, &product.InsufficientStockError{ProductID: p.ID(), Operation: "deduct", Requested: 999, Available: 15})

		e, _ := newRouter(t, httpadapter.Handlers{ReduceStock: handler}, nil)
		rec := do(e, http.MethodPost, target, `{"quantity":999,"reason":"loss"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestServer_GetProduct(t *testing.T) {
	view := queries.ProductViewFromDomain(newKeychain(t, 7))
	handler := &MockGetProductHandler{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetProductQuery) bool {
		return q.ProductID().IsEqual(view.ID)
	})).Return(view, nil)

	e, _ := newRouter(t, httpadapter.Handlers{GetProduct: handler}, nil)
	rec := do(e, http.MethodGet, "/api/v1/products/"+view.ID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got servers.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "KEY-01", got.Code)
	assert.Equal(t, 7, got.AvailableStock)
	assert.Equal(t, int64(3), got.Version)
	require.Len(t, got.Filaments, 1)
	assert.InDelta(t, 25.0, got.Filaments[0].Weight, 0.001)
}

func TestServer_AllocateBobbins(t *testing.T) {
	small, large := kernel.NewUUID(), kernel.NewUUID()
	body := fmt.Sprintf(`{
		"quantity": 2,
		"requirements": [{"type":"PLA","color":"Red","weight":25}, {"type":"PETG","color":"Black","weight":10}],
		"bobbins": [
			{"id":%q,"type":"PLA","color":"red","remainingWeight":100},
			{"id":%q,"type":"pla","color":"RED","remainingWeight":600}
		]
	}`, small, large)

	e, _ := newRouter(t, httpadapter.Handlers{}, nil)
	rec := do(e, http.MethodPost, "/api/v1/allocations", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got servers.Allocation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.False(t, got.Satisfied)
	assert.Equal(t, "per_unit", got.Policy)
	require.Len(t, got.Selections, 2)

	assert.Equal(t, large.Bytes(), *got.Selections[0].BobbinId)
	assert.Nil(t, got.Selections[0].Error)
	assert.Nil(t, got.Selections[1].BobbinId)
	require.NotNil(t, got.Selections[1].Error)
	assert.Contains(t, *got.Selections[1].Error, "unsatisfiable filament requirement")
}

func TestRouter_Endpoints(t *testing.T) {
	e, _ := newRouter(t, httpadapter.Handlers{}, nil)

	rec := do(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"], "/orders/{orderId}/status")
}
