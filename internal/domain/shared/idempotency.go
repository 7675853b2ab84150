package shared

import (
	"context"
	"time"
)

// IdempotencyStore records keys that were already claimed so a request or event
// is processed at most once within the TTL
type IdempotencyStore interface {
	// MarkProcessed claims key for ttl.
	// Returns true if the key was newly claimed, false if it was already claimed
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if key has already been claimed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets a claimed key so it can be claimed again
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a claimed key is remembered.
	// After this duration the same key can be claimed again
	// Default: 24 hours
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	// Default: true
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
