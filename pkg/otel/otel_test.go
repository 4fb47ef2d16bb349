package otel

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"storefront/pkg/logger"
)

func TestTracingProducesTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "test", GetTraceID)

	tp, shutdown, err := InitTracing(log, Config{ServiceName: "storefront", Probability: 1})
	require.NoError(t, err)
	defer shutdown(context.Background())

	ctx := InjectTracing(context.Background(), tp.Tracer("test"))
	assert.Empty(t, GetTraceID(ctx))

	ctx, span := AddSpan(ctx, "checkout", attribute.String("op", "checkout"))
	defer span.End()

	id := GetTraceID(ctx)
	assert.Len(t, id, 32)

	log.Info(ctx, "inside span")
	assert.Contains(t, buf.String(), id)
}

func TestAddSpanWithoutInjectedTracer(t *testing.T) {
	ctx, span := AddSpan(context.Background(), "orphan")
	defer span.End()
	assert.NotNil(t, ctx)
}

func TestNoopTracer(t *testing.T) {
	ctx := InjectTracing(context.Background(), NoopTracer())
	ctx, span := AddSpan(ctx, "noop")
	span.End()
	assert.Empty(t, GetTraceID(ctx))
}
