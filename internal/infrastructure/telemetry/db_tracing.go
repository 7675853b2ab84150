package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans; never in production
	SlowQueryThresh time.Duration // default 200ms
	DBName          string
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "storefront",
	}
}

// DBTracingPlugin registers otelgorm plus a slow query marker on a GORM DB.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin with the given configuration.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// RegisterOtelGorm installs the otelgorm plugin and the timing callbacks on db.
// It does nothing when tracing is disabled.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBName)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_name", p.config.DBName),
	)
	return nil
}

// registerCallbacks runs the annotating callbacks before otelgorm ends its span
func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("flx_timing:before_create", p.before) },
		func() error { return cb.Query().Before("gorm:query").Register("flx_timing:before_query", p.before) },
		func() error { return cb.Update().Before("gorm:update").Register("flx_timing:before_update", p.before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("flx_timing:before_delete", p.before) },
		func() error { return cb.Row().Before("gorm:row").Register("flx_timing:before_row", p.before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("flx_timing:before_raw", p.before) },
		func() error { return cb.Create().After("gorm:create").Before("otel:after:create").Register("flx_timing:after_create", p.after) },
		func() error { return cb.Query().After("gorm:query").Before("otel:after:select").Register("flx_timing:after_query", p.after) },
		func() error { return cb.Update().After("gorm:update").Before("otel:after:update").Register("flx_timing:after_update", p.after) },
		func() error { return cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("flx_timing:after_delete", p.after) },
		func() error { return cb.Row().After("gorm:row").Before("otel:after:row").Register("flx_timing:after_row", p.after) },
		func() error { return cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("flx_timing:after_raw", p.after) },
	}
	for _, register := range steps {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

type contextKey string

const queryStartTimeKey contextKey = "flx_query_start_time"

func (p *DBTracingPlugin) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// after annotates the current span with rows, table, errors and slowness
func (p *DBTracingPlugin) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
