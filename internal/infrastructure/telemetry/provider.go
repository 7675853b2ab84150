// Package telemetry wires OpenTelemetry traces, metrics and logs for the storefront.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flx/storefront/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// ServiceVersion is reported as service.version on every signal.
const ServiceVersion = "1.0.0"

const (
	defaultServiceName    = "flx-storefront"
	defaultExportInterval = 60 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Providers owns the storefront's trace, metric and log pipelines.
// Each signal is switched on separately by config.TelemetryConfig; a signal
// that is off keeps a nil SDK provider and callers fall back to the otel globals.
type Providers struct {
	cfg    config.TelemetryConfig
	logger *zap.Logger

	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
	logs    *sdklog.LoggerProvider
}

// NewProviders builds the enabled signal pipelines against one OTLP gRPC
// collector and installs them as the otel globals.
func NewProviders(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	p := &Providers{cfg: cfg, logger: logger}

	if !cfg.Enabled && !cfg.MetricsEnabled && !cfg.LogsEnabled {
		logger.Info("Telemetry export disabled")
		return p, nil
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	if cfg.Enabled {
		if p.traces, err = newTraceProvider(ctx, cfg, res); err != nil {
			return nil, err
		}
		otel.SetTracerProvider(p.traces)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	if cfg.MetricsEnabled {
		if p.metrics, err = newMeterProvider(ctx, cfg, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
		otel.SetMeterProvider(p.metrics)
	}

	if cfg.LogsEnabled {
		if p.logs, err = newLogProvider(ctx, cfg, res); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
		global.SetLoggerProvider(p.logs)
	}

	logger.Info("Telemetry export initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
		zap.Bool("traces", p.TracingEnabled()),
		zap.Bool("metrics", p.MetricsEnabled()),
		zap.Bool("logs", p.LogsEnabled()),
	)
	return p, nil
}

func newTraceProvider(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SamplingRatio)),
	), nil
}

func newMeterProvider(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create metric exporter: %w", err)
	}

	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	), nil
}

func newLogProvider(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource) (*sdklog.LoggerProvider, error) {
	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create log exporter: %w", err)
	}
	return sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	), nil
}

func samplerFor(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1.0:
		return sdktrace.AlwaysSample()
	case ratio <= 0.0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	return res, nil
}

// TracingEnabled reports whether spans are exported.
func (p *Providers) TracingEnabled() bool { return p != nil && p.traces != nil }

// MetricsEnabled reports whether metrics are exported.
func (p *Providers) MetricsEnabled() bool { return p != nil && p.metrics != nil }

// LogsEnabled reports whether log records are exported.
func (p *Providers) LogsEnabled() bool { return p != nil && p.logs != nil }

// Meter returns a named meter, or the global one when metric export is off.
func (p *Providers) Meter(name string) metric.Meter {
	if !p.MetricsEnabled() {
		return otel.GetMeterProvider().Meter(name)
	}
	return p.metrics.Meter(name)
}

// Shutdown flushes and stops every running pipeline. Logs go last so
// shutdown messages from the other pipelines still reach the collector.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if p.traces != nil {
		if err := p.traces.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("traces: %w", err))
		}
	}
	if p.metrics != nil {
		if err := p.metrics.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics: %w", err))
		}
	}
	if p.logs != nil {
		if err := p.logs.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("logs: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		p.logger.Error("Telemetry shutdown failed", zap.Error(err))
		return err
	}
	p.logger.Debug("Telemetry shutdown complete")
	return nil
}
