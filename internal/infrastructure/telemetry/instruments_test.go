package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/flx/storefront/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// collect reads everything recorded on reader so far, keyed by metric name
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumValue(t *testing.T, data metricdata.Aggregation, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum, got %T", data)

	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func TestCounter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	c, err := telemetry.NewCounter(meter, "orders_total", "Orders", "{orders}")
	require.NoError(t, err)

	ctx := context.Background()
	c.Inc(ctx, attribute.String("outcome", "ok"))
	c.Inc(ctx, attribute.String("outcome", "ok"))
	c.Inc(ctx, attribute.String("outcome", "overflow"))

	data := collect(t, reader)["orders_total"]
	assert.Equal(t, int64(2), sumValue(t, data, attribute.String("outcome", "ok")))
	assert.Equal(t, int64(1), sumValue(t, data, attribute.String("outcome", "overflow")))
	assert.Equal(t, int64(0), sumValue(t, data))
}

func TestHistogram(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	h, err := telemetry.NewHistogram(meter, "latency", "Latency", "s", 0.1, 1)
	require.NoError(t, err)

	ctx := context.Background()
	h.Observe(ctx, 0.05)
	h.ObserveDuration(ctx, 2*time.Second)

	hist, ok := collect(t, reader)["latency"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)

	dp := hist.DataPoints[0]
	assert.Equal(t, uint64(2), dp.Count)
	assert.InDelta(t, 2.05, dp.Sum, 1e-9)
	assert.Equal(t, []float64{0.1, 1}, dp.Bounds)
	assert.Equal(t, []uint64{1, 0, 1}, dp.BucketCounts)
}
