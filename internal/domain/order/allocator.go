package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flx/storefront/internal/domain/shared"
)

// DefaultMaxAttempts bounds how many fresh read/check rounds Allocate makes
const DefaultMaxAttempts = 5

// AllocationObserver receives allocation outcomes, e.g. for metrics
type AllocationObserver interface {
	// Collision is called when a candidate was already taken
	Collision(ctx context.Context, candidate string)
	// Allocated is called when a free number was found after attempts rounds
	Allocated(ctx context.Context, number OrderNumber, attempts int)
	// Failed is called when allocation gave up with err
	Failed(ctx context.Context, err error, attempts int)
}

type nopObserver struct{}

func (nopObserver) Collision(context.Context, string)           {}
func (nopObserver) Allocated(context.Context, OrderNumber, int) {}
func (nopObserver) Failed(context.Context, error, int)          {}

// AllocatorOption configures a NumberAllocator
type AllocatorOption func(*NumberAllocator)

// WithClock overrides the time source
func WithClock(now func() time.Time) AllocatorOption {
	return func(a *NumberAllocator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithMaxAttempts sets the collision retry budget
func WithMaxAttempts(n int) AllocatorOption {
	return func(a *NumberAllocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithObserver registers an allocation observer
func WithObserver(o AllocationObserver) AllocatorOption {
	return func(a *NumberAllocator) {
		if o != nil {
			a.observer = o
		}
	}
}

// NumberAllocator hands out the next FLX-YYMMDD-NNNN number for the current UTC day.
//
// It only reads the store. The unique index on the order number column is what
// makes the result safe under concurrency: a caller whose insert loses a race
// must call Allocate again.
type NumberAllocator struct {
	store       NumberStore
	now         func() time.Time
	maxAttempts int
	observer    AllocationObserver
}

// NewNumberAllocator creates an allocator reading from store
func NewNumberAllocator(store NumberStore, opts ...AllocatorOption) *NumberAllocator {
	a := &NumberAllocator{
		store:       store,
		now:         time.Now,
		maxAttempts: DefaultMaxAttempts,
		observer:    nopObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MaxAttempts returns the configured retry budget
func (a *NumberAllocator) MaxAttempts() int {
	return a.maxAttempts
}

// Allocate returns an order number that was free when checked.
// Each attempt recomputes the date and re-reads the latest number, so concurrent
// callers converge instead of stepping past each other.
func (a *NumberAllocator) Allocate(ctx context.Context) (OrderNumber, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			a.observer.Failed(ctx, err, attempt)
			return OrderNumber{}, err
		}

		candidate, err := a.nextCandidate(ctx)
		if err != nil {
			a.observer.Failed(ctx, err, attempt)
			return OrderNumber{}, err
		}

		taken, err := a.isTaken(ctx, candidate.String())
		if err != nil {
			a.observer.Failed(ctx, err, attempt)
			return OrderNumber{}, err
		}
		if !taken {
			a.observer.Allocated(ctx, candidate, attempt)
			return candidate, nil
		}

		a.observer.Collision(ctx, candidate.String())
	}

	err := ErrCollisionExhausted.Wrap(fmt.Errorf("no free order number after %d attempts", a.maxAttempts))
	a.observer.Failed(ctx, err, a.maxAttempts)
	return OrderNumber{}, err
}

// nextCandidate reads the latest number for today and steps past it
func (a *NumberAllocator) nextCandidate(ctx context.Context) (OrderNumber, error) {
	day := a.now().UTC()
	prefix := DayPrefix(day)

	latest, err := a.store.FindLatestOrderNumberWithPrefix(ctx, prefix)
	if err != nil {
		return OrderNumber{}, &StoreError{Op: "find latest order number", Err: err}
	}
	if latest == "" {
		return NewOrderNumber(day, 1)
	}

	last, err := ParseOrderNumber(latest)
	if err != nil {
		return OrderNumber{}, ErrCorruptOrderNumber.Wrap(fmt.Errorf("latest for %s: %w", prefix, err))
	}
	if last.Prefix() != prefix {
		return OrderNumber{}, ErrCorruptOrderNumber.Wrap(fmt.Errorf("store returned %s for prefix %s", latest, prefix))
	}

	return last.Next()
}

func (a *NumberAllocator) isTaken(ctx context.Context, candidate string) (bool, error) {
	existing, err := a.store.FindByOrderNumber(ctx, candidate)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, &StoreError{Op: "find order by number", Err: err}
	}
	return existing != nil, nil
}
