package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of service spans.
const TracerName = "flx-storefront"

// Span attribute keys used by the order services
const (
	SpanAttrOrderID     = "order_id"
	SpanAttrOrderNumber = "order_number"
	SpanAttrOrderStatus = "order_status"
	SpanAttrItemsCount  = "items_count"
	SpanAttrAttempt     = "attempt"
	SpanAttrIdempotent  = "idempotency_key_present"
)

// StartServiceSpan starts an internal span named "{service}.{method}" on the
// global tracer provider. The caller ends it.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "checkout", "place_order")
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, service+"."+method, trace.WithSpanKind(trace.SpanKindInternal))
}

// SetAttributes sets alternating key, value pairs on span. Pairs whose key
// is not a string are skipped, as is a trailing key without a value.
func SetAttributes(span trace.Span, keyValues ...any) {
	if span == nil {
		return
	}
	span.SetAttributes(pairs(keyValues)...)
}

// SetAttribute sets one attribute on span.
func SetAttribute(span trace.Span, key string, value any) {
	if span == nil {
		return
	}
	span.SetAttributes(toAttribute(key, value))
}

// AddEvent adds a timestamped event with alternating key, value pairs.
//
//	telemetry.AddEvent(span, "order_number_conflict", telemetry.SpanAttrOrderNumber, number)
func AddEvent(span trace.Span, name string, keyValues ...any) {
	if span == nil {
		return
	}
	span.AddEvent(name, trace.WithAttributes(pairs(keyValues)...))
}

// RecordError records err on span and marks the span failed. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func pairs(keyValues []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		if key, ok := keyValues[i].(string); ok {
			attrs = append(attrs, toAttribute(key, keyValues[i+1]))
		}
	}
	return attrs
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
