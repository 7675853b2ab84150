package cache

import (
	"context"
	"fmt"

	"github.com/flx/storefront/internal/domain/shared"
	"github.com/flx/storefront/internal/infrastructure/config"
	"go.uber.org/zap"
)

// IdempotencyStoreFactory builds the store selected by configuration
type IdempotencyStoreFactory struct {
	cfg                   config.IdempotencyConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// IdempotencyStoreFactoryOption is a functional option for configuring the factory
type IdempotencyStoreFactoryOption func(*IdempotencyStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the in-memory store.
// Off by default: replayed checkouts on another instance would go through.
func WithInMemoryFallback(allow bool) IdempotencyStoreFactoryOption {
	return func(f *IdempotencyStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewIdempotencyStoreFactory creates a new factory
func NewIdempotencyStoreFactory(cfg config.IdempotencyConfig, redisCfg config.RedisConfig, opts ...IdempotencyStoreFactoryOption) *IdempotencyStoreFactory {
	f := &IdempotencyStoreFactory{
		cfg:         cfg,
		redisConfig: redisCfg,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore returns the configured store
func (f *IdempotencyStoreFactory) CreateStore(ctx context.Context) (shared.IdempotencyStore, error) {
	switch f.cfg.Backend {
	case "", "memory":
		f.logger.Info("Using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	case "redis":
		store, err := NewRedisIdempotencyStore(ctx, RedisConfig{
			Addr:     f.redisConfig.Addr(),
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		})
		if err == nil {
			f.logger.Info("Using Redis idempotency store", zap.String("addr", f.redisConfig.Addr()))
			return store, nil
		}
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis idempotency store unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore(), nil
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", f.cfg.Backend)
	}
}
