package middleware

import (
	"net/http"

	"github.com/flx/storefront/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// IdempotencyKeyHeader is the optional checkout replay guard
const IdempotencyKeyHeader = "Idempotency-Key"

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider overrides the global provider; tests use it with a span recorder.
	TracerProvider trace.TracerProvider
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "flx-storefront",
		Enabled:     true,
	}
}

// Tracing returns the otelgin server span middleware followed by a handler
// that tags the span with the request id and whether an idempotency key was sent.
// Register it after RequestID:
//
//	engine.Use(middleware.RequestID())
//	engine.Use(middleware.Tracing(cfg)...)
func Tracing(cfg TracingConfig) gin.HandlersChain {
	if !cfg.Enabled {
		return gin.HandlersChain{func(c *gin.Context) { c.Next() }}
	}

	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	return gin.HandlersChain{
		otelgin.Middleware(cfg.ServiceName, opts...),
		enrichSpan,
	}
}

// enrichSpan runs inside the otelgin span and marks client errors on the way out
func enrichSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		c.Next()
		return
	}

	if requestID := GetRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if c.Request.Method == http.MethodPost {
		span.SetAttributes(attribute.Bool(telemetry.SpanAttrIdempotent, c.GetHeader(IdempotencyKeyHeader) != ""))
	}

	c.Next()

	// otelgin only flags 5xx; a rejected checkout is worth seeing in traces too
	if status := c.Writer.Status(); status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
