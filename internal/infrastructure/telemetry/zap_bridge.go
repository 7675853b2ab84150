package telemetry

import (
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap/zapcore"
)

// ZapCore returns a core that forwards zap entries at or above level to the
// OTLP log pipeline. It is a no-op core when log export is off.
//
//	log, err := logger.New(&logCfg, providers.ZapCore(zapcore.InfoLevel))
func (p *Providers) ZapCore(level zapcore.Level) zapcore.Core {
	if !p.LogsEnabled() {
		return zapcore.NewNopCore()
	}
	core := otelzap.NewCore(p.cfg.ServiceName, otelzap.WithLoggerProvider(p.logs))
	return &minLevelCore{Core: core, min: level}
}

// minLevelCore drops entries below min; the otelzap core accepts every level.
type minLevelCore struct {
	zapcore.Core
	min zapcore.Level
}

func (c *minLevelCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.min && c.Core.Enabled(lvl)
}

func (c *minLevelCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(entry.Level) {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c *minLevelCore) With(fields []zapcore.Field) zapcore.Core {
	return &minLevelCore{Core: c.Core.With(fields), min: c.min}
}
