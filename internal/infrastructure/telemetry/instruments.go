package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Counter counts events, one at a time.
type Counter struct {
	c metric.Int64Counter
}

// NewCounter registers an int64 counter on meter.
func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", name, err)
	}
	return &Counter{c: c}, nil
}

// Inc adds one.
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.c.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram records a distribution over fixed buckets.
type Histogram struct {
	h metric.Float64Histogram
}

// NewHistogram registers a float64 histogram on meter. With no buckets the
// SDK default boundaries apply.
func NewHistogram(meter metric.Meter, name, description, unit string, buckets ...float64) (*Histogram, error) {
	opts := []metric.Float64HistogramOption{metric.WithDescription(description), metric.WithUnit(unit)}
	if len(buckets) > 0 {
		opts = append(opts, metric.WithExplicitBucketBoundaries(buckets...))
	}
	h, err := meter.Float64Histogram(name, opts...)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", name, err)
	}
	return &Histogram{h: h}, nil
}

// Observe records v.
func (h *Histogram) Observe(ctx context.Context, v float64, attrs ...attribute.KeyValue) {
	h.h.Record(ctx, v, metric.WithAttributes(attrs...))
}

// ObserveDuration records d in seconds.
func (h *Histogram) ObserveDuration(ctx context.Context, d time.Duration, attrs ...attribute.KeyValue) {
	h.h.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}
