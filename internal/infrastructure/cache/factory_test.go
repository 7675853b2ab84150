package cache

import (
	"context"
	"testing"
	"time"

	"github.com/flx/storefront/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// unreachableRedis points at a port nothing listens on
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestIdempotencyStoreFactory_Memory(t *testing.T) {
	f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Backend: "memory", TTL: time.Hour}, config.RedisConfig{})

	store, err := f.CreateStore(context.Background())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemoryIdempotencyStore{}, store)
}

func TestIdempotencyStoreFactory_RedisUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("fails without fallback", func(t *testing.T) {
		f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Backend: "redis"}, unreachableRedis)
		_, err := f.CreateStore(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis idempotency store unavailable")
	})

	t.Run("degrades with fallback and warns", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := NewIdempotencyStoreFactory(
			config.IdempotencyConfig{Backend: "redis"},
			unreachableRedis,
			WithInMemoryFallback(true),
			WithLogger(zap.New(core)),
		)

		store, err := f.CreateStore(ctx)
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &InMemoryIdempotencyStore{}, store)
		assert.Equal(t, 1, logs.FilterMessageSnippet("falling back").Len())
	})
}

func TestIdempotencyStoreFactory_UnknownBackend(t *testing.T) {
	f := NewIdempotencyStoreFactory(config.IdempotencyConfig{Backend: "etcd"}, config.RedisConfig{})
	_, err := f.CreateStore(context.Background())
	assert.Error(t, err)
}
