package tracing_test

import (
	"context"
	"errors"
	"testing"

	"printfarm/internal/pkg/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("test")

	t.Run("records a successful operation", func(t *testing.T) {
		got, err := tracing.Traced(t.Context(), tracer, "ReduceStock", func(ctx context.Context) (int, error) {
			assert.NotEmpty(t, tracing.TraceID(ctx))
			return 15, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 15, got)
		spans := recorder.Ended()
		require.NotEmpty(t, spans)
		assert.Equal(t, "ReduceStock", spans[len(spans)-1].Name())
		assert.Equal(t, codes.Ok, spans[len(spans)-1].Status().Code)
	})

	t.Run("records the error", func(t *testing.T) {
		boom := errors.New("insufficient stock")

		_, err := tracing.Traced(t.Context(), tracer, "CreateOrder", func(context.Context) (string, error) {
			return "", boom
		})

		require.ErrorIs(t, err, boom)
		spans := recorder.Ended()
		last := spans[len(spans)-1]
		assert.Equal(t, codes.Error, last.Status().Code)
		assert.Equal(t, "insufficient stock", last.Status().Description)
	})
}

func TestInitializeWithoutEndpoint(t *testing.T) {
	p, err := tracing.Initialize(t.Context(), tracing.Config{ServiceName: "printfarm"})

	require.NoError(t, err)
	require.NoError(t, p.Shutdown(t.Context()))
	assert.Empty(t, tracing.TraceID(t.Context()))
}
