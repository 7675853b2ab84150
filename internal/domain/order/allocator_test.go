package order

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/flx/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockNumberStore implements NumberStore for testing
type MockNumberStore struct {
	mock.Mock
}

func (m *MockNumberStore) FindLatestOrderNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockNumberStore) FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

// memoryStore is an order store with a unique index on the order number
type memoryStore struct {
	mu      sync.Mutex
	numbers map[string]struct{}
}

func newMemoryStore(existing ...string) *memoryStore {
	s := &memoryStore{numbers: make(map[string]struct{})}
	for _, n := range existing {
		s.numbers[n] = struct{}{}
	}
	return s
}

func (s *memoryStore) FindLatestOrderNumberWithPrefix(_ context.Context, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	latest := ""
	for n := range s.numbers {
		if strings.HasPrefix(n, prefix) && n > latest {
			latest = n
		}
	}
	return latest, nil
}

func (s *memoryStore) FindByOrderNumber(_ context.Context, orderNumber string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.numbers[orderNumber]; ok {
		return &Order{OrderNumber: orderNumber}, nil
	}
	return nil, shared.ErrNotFound
}

func (s *memoryStore) insert(number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.numbers[number]; ok {
		return ErrDuplicateOrderNumber
	}
	s.numbers[number] = struct{}{}
	return nil
}

type recordingObserver struct {
	mu         sync.Mutex
	collisions []string
	allocated  []int
	failures   []error
}

func (r *recordingObserver) Collision(_ context.Context, candidate string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collisions = append(r.collisions, candidate)
}

func (r *recordingObserver) Allocated(_ context.Context, _ OrderNumber, attempts int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allocated = append(r.allocated, attempts)
}

func (r *recordingObserver) Failed(_ context.Context, err error, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNumberAllocator_Allocate(t *testing.T) {
	ctx := context.Background()
	jan1 := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	t.Run("empty store then next", func(t *testing.T) {
		store := newMemoryStore()
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)))

		first, err := allocator.Allocate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "FLX-240101-0001", first.String())
		require.NoError(t, store.insert(first.String()))

		second, err := allocator.Allocate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "FLX-240101-0002", second.String())
	})

	t.Run("sequential allocations are strictly increasing without gaps", func(t *testing.T) {
		store := newMemoryStore()
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)))

		for want := 1; want <= 25; want++ {
			n, err := allocator.Allocate(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, n.Sequence())
			require.NoError(t, store.insert(n.String()))
		}
	})

	t.Run("date rollover restarts the sequence", func(t *testing.T) {
		store := newMemoryStore("FLX-240615-0001", "FLX-240615-0002", "FLX-240615-0003")
		now := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
		allocator := NewNumberAllocator(store, WithClock(func() time.Time { return now }))

		before, err := allocator.Allocate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "FLX-240615-0004", before.String())
		require.NoError(t, store.insert(before.String()))

		now = time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
		after, err := allocator.Allocate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "FLX-240616-0001", after.String())
		assert.NotEqual(t, before.DatePart(), after.DatePart())
	})

	t.Run("ignores other days", func(t *testing.T) {
		store := newMemoryStore("FLX-231231-0420", "FLX-240102-0007")
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)))

		n, err := allocator.Allocate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "FLX-240101-0001", n.String())
	})

	t.Run("uses UTC date regardless of clock location", func(t *testing.T) {
		store := newMemoryStore()
		loc := time.FixedZone("UTC-5", -5*60*60)
		allocator := NewNumberAllocator(store, WithClock(fixedClock(time.Date(2024, 6, 15, 21, 0, 0, 0, loc))))

		n, err := allocator.Allocate(ctx)
		require.NoError(t, err)
		assert.Equal(t, "FLX-240616-0001", n.String())
	})

	t.Run("overflow at 9999", func(t *testing.T) {
		store := newMemoryStore("FLX-240101-9999")
		observer := &recordingObserver{}
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)), WithObserver(observer))

		n, err := allocator.Allocate(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSequenceOverflow)
		assert.True(t, n.IsZero())
		require.Len(t, observer.failures, 1)
	})
}

func TestNumberAllocator_CollisionInjection(t *testing.T) {
	ctx := context.Background()
	jan1 := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	t.Run("retries with a fresh read and returns a different number", func(t *testing.T) {
		store := new(MockNumberStore)
		observer := &recordingObserver{}
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)), WithObserver(observer))

		// First round: store looks empty but another writer already took 0001
		store.On("FindLatestOrderNumberWithPrefix", ctx, "FLX-240101-").Return("", nil).Once()
		store.On("FindByOrderNumber", ctx, "FLX-240101-0001").Return(&Order{OrderNumber: "FLX-240101-0001"}, nil).Once()
		// Second round: the fresh read sees the winner
		store.On("FindLatestOrderNumberWithPrefix", ctx, "FLX-240101-").Return("FLX-240101-0001", nil).Once()
		store.On("FindByOrderNumber", ctx, "FLX-240101-0002").Return(nil, shared.ErrNotFound).Once()

		n, err := allocator.Allocate(ctx)

		require.NoError(t, err)
		assert.Equal(t, "FLX-240101-0002", n.String())
		assert.Equal(t, []string{"FLX-240101-0001"}, observer.collisions)
		assert.Equal(t, []int{2}, observer.allocated)
		store.AssertExpectations(t)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		store := new(MockNumberStore)
		observer := &recordingObserver{}
		allocator := NewNumberAllocator(store,
			WithClock(fixedClock(jan1)),
			WithMaxAttempts(3),
			WithObserver(observer),
		)

		store.On("FindLatestOrderNumberWithPrefix", ctx, "FLX-240101-").Return("FLX-240101-0010", nil).Times(3)
		store.On("FindByOrderNumber", ctx, "FLX-240101-0011").Return(&Order{}, nil).Times(3)

		_, err := allocator.Allocate(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCollisionExhausted)
		assert.False(t, errors.Is(err, ErrTransientStore))
		assert.Len(t, observer.collisions, 3)
		store.AssertExpectations(t)
	})
}

func TestNumberAllocator_StoreErrors(t *testing.T) {
	ctx := context.Background()
	jan1 := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	dbErr := errors.New("connection refused")

	t.Run("latest lookup failure is transient", func(t *testing.T) {
		store := new(MockNumberStore)
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)))
		store.On("FindLatestOrderNumberWithPrefix", ctx, "FLX-240101-").Return("", dbErr)

		_, err := allocator.Allocate(ctx)

		assert.ErrorIs(t, err, ErrTransientStore)
		assert.ErrorIs(t, err, dbErr)
		var storeErr *StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "find latest order number", storeErr.Op)
		store.AssertNotCalled(t, "FindByOrderNumber", mock.Anything, mock.Anything)
	})

	t.Run("collision check failure is transient", func(t *testing.T) {
		store := new(MockNumberStore)
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)))
		store.On("FindLatestOrderNumberWithPrefix", ctx, "FLX-240101-").Return("", nil)
		store.On("FindByOrderNumber", ctx, "FLX-240101-0001").Return(nil, dbErr)

		_, err := allocator.Allocate(ctx)

		assert.ErrorIs(t, err, ErrTransientStore)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("malformed latest number is a store data error", func(t *testing.T) {
		store := new(MockNumberStore)
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)))
		store.On("FindLatestOrderNumberWithPrefix", ctx, "FLX-240101-").Return("FLX-240101-XXXX", nil)

		_, err := allocator.Allocate(ctx)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, ErrCorruptOrderNumber.Code, domainErr.Code, "the outermost code is not a client error")
		assert.ErrorIs(t, err, ErrInvalidOrderNumber, "the parse failure stays in the chain")
	})

	t.Run("latest number from another day is a store data error", func(t *testing.T) {
		store := new(MockNumberStore)
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)))
		store.On("FindLatestOrderNumberWithPrefix", ctx, "FLX-240101-").Return("FLX-231231-0007", nil)

		_, err := allocator.Allocate(ctx)

		assert.ErrorIs(t, err, ErrCorruptOrderNumber)
		store.AssertNotCalled(t, "FindByOrderNumber", mock.Anything, mock.Anything)
	})

	t.Run("cancelled context stops before reading", func(t *testing.T) {
		store := new(MockNumberStore)
		allocator := NewNumberAllocator(store, WithClock(fixedClock(jan1)))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := allocator.Allocate(cancelled)

		assert.ErrorIs(t, err, context.Canceled)
		store.AssertNotCalled(t, "FindLatestOrderNumberWithPrefix", mock.Anything, mock.Anything)
	})
}

func TestNumberAllocator_ConcurrentCheckout(t *testing.T) {
	const workers = 32
	ctx := context.Background()
	store := newMemoryStore()
	allocator := NewNumberAllocator(store,
		WithClock(fixedClock(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))),
		WithMaxAttempts(workers*2),
	)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []string
	)
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Mirrors the checkout contract: a unique violation means allocate again
			for {
				n, err := allocator.Allocate(ctx)
				if err != nil {
					errs <- err
					return
				}
				err = store.insert(n.String())
				if errors.Is(err, ErrDuplicateOrderNumber) {
					continue
				}
				if err != nil {
					errs <- err
					return
				}
				mu.Lock()
				results = append(results, n.String())
				mu.Unlock()
				return
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Len(t, results, workers)

	sort.Strings(results)
	for i := 1; i < len(results); i++ {
		assert.NotEqual(t, results[i-1], results[i])
	}
	assert.Equal(t, "FLX-240615-0001", results[0])
	assert.Equal(t, "FLX-240615-0032", results[workers-1])
}
