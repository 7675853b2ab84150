package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedRouter(t *testing.T, enabled bool) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	router := gin.New()
	router.Use(RequestID())
	router.Use(Tracing(TracingConfig{ServiceName: "test-service", Enabled: enabled, TracerProvider: tp})...)
	router.GET("/orders/:orderNumber", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
	})
	router.POST("/orders", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})
	return router, sr
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTracing_Disabled(t *testing.T) {
	router, sr := tracedRouter(t, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_CheckoutSpan(t *testing.T) {
	router, sr := tracedRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set(RequestIDHeader, "req-checkout-1")
	req.Header.Set(IdempotencyKeyHeader, "cart-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST /orders", spans[0].Name())

	attrs := spanAttrs(spans[0])
	assert.Equal(t, "req-checkout-1", attrs["request_id"].AsString())
	assert.True(t, attrs["idempotency_key_present"].AsBool())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_ClientErrorMarksSpan(t *testing.T) {
	router, sr := tracedRouter(t, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/FLX-240615-0001", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /orders/:orderNumber", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "Not Found", spans[0].Status().Description)

	_, ok := spanAttrs(spans[0])["idempotency_key_present"]
	assert.False(t, ok, "only POST requests carry the idempotency flag")
}

func TestDefaultTracingConfig(t *testing.T) {
	cfg := DefaultTracingConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "flx-storefront", cfg.ServiceName)
	assert.Nil(t, cfg.TracerProvider)
}
