package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/flx/storefront/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs an in-memory span recorder as the global provider
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	ctx, parent := telemetry.StartServiceSpan(context.Background(), "checkout", "place_order")
	_, child := telemetry.StartServiceSpan(ctx, "orders", "update_status")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "orders.update_status", spans[0].Name())
	assert.Equal(t, "checkout.place_order", spans[1].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[1].SpanKind())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Equal(t, telemetry.TracerName, spans[1].InstrumentationScope().Name)
}

func TestSetAttributes(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "checkout", "place_order")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderNumber, "FLX-240615-0001",
		telemetry.SpanAttrAttempt, 2,
		"ratio", 0.5,
		42, "non-string key is skipped",
		"dangling",
	)
	telemetry.SetAttribute(span, telemetry.SpanAttrIdempotent, true)
	span.End()

	attrs := attrMap(sr.Ended()[0].Attributes())
	assert.Len(t, attrs, 4)
	assert.Equal(t, "FLX-240615-0001", attrs[telemetry.SpanAttrOrderNumber].AsString())
	assert.Equal(t, int64(2), attrs[telemetry.SpanAttrAttempt].AsInt64())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	assert.True(t, attrs[telemetry.SpanAttrIdempotent].AsBool())
}

func TestRecordErrorAndEvents(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "checkout", "place_order")
	telemetry.AddEvent(span, "order_number_conflict", telemetry.SpanAttrOrderNumber, "FLX-240615-0003")
	telemetry.RecordError(span, nil)
	telemetry.RecordError(span, errors.New("store unavailable"))
	span.End()

	ended := sr.Ended()[0]
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "store unavailable", ended.Status().Description)

	events := ended.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "order_number_conflict", events[0].Name)
	assert.Equal(t, "exception", events[1].Name)
}

func TestNilSpanHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.SetAttributes(nil, "k", "v")
		telemetry.SetAttribute(nil, "k", "v")
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.AddEvent(nil, "e")
	})
}
