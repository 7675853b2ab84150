package order

import (
	"context"
	"sync"
	"time"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/flx/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindLatestOrderNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter order.ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockAllocator is a mock implementation of NumberAllocator
type MockAllocator struct {
	mock.Mock
}

func (m *MockAllocator) Allocate(ctx context.Context) (order.OrderNumber, error) {
	args := m.Called(ctx)
	return args.Get(0).(order.OrderNumber), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type recorderStub struct {
	mu        sync.Mutex
	conflicts []string
	placed    []int
}

func (r *recorderStub) InsertConflict(_ context.Context, orderNumber string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = append(r.conflicts, orderNumber)
}

func (r *recorderStub) OrderPlaced(_ context.Context, _ decimal.Decimal, attempts int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placed = append(r.placed, attempts)
}

// keyStore is a minimal shared.IdempotencyStore for service tests
type keyStore struct {
	mu       sync.Mutex
	keys     map[string]struct{}
	released []string
	claimErr error
}

func newKeyStore() *keyStore {
	return &keyStore{keys: make(map[string]struct{})}
}

func (s *keyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimErr != nil {
		return false, s.claimErr
	}
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = struct{}{}
	return true, nil
}

func (s *keyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok, nil
}

func (s *keyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
	s.released = append(s.released, key)
	return nil
}

func (s *keyStore) Close() error { return nil }
