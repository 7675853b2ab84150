// Package testutil holds helpers shared by the storefront's integration tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/flx/storefront/internal/domain/shared"
)

// MockEventHandler records every event it receives.
// It satisfies shared.EventHandler and can be subscribed to the in-memory bus.
type MockEventHandler struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
}

// NewMockEventHandler creates a handler subscribed to eventTypes
func NewMockEventHandler(eventTypes ...string) *MockEventHandler {
	return &MockEventHandler{
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *MockEventHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *MockEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

// Handled returns a copy of the received events in arrival order
func (h *MockEventHandler) Handled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]shared.DomainEvent, len(h.handled))
	copy(result, h.handled)
	return result
}

// HandledOfType returns the received events with the given type
func (h *MockEventHandler) HandledOfType(eventType string) []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	var result []shared.DomainEvent
	for _, e := range h.handled {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

func (h *MockEventHandler) HandledCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

// SetError makes subsequent Handle calls fail with err
func (h *MockEventHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

// Reset clears recorded events and any configured error
func (h *MockEventHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = make([]shared.DomainEvent, 0)
	h.err = nil
}

// TestEvent is a minimal domain event
type TestEvent struct {
	shared.BaseDomainEvent
	Data string
}

// NewTestEvent creates a TestEvent on a random aggregate
func NewTestEvent(eventType string) *TestEvent {
	return &TestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Data:            "test-data",
	}
}

// WaitForCondition polls condition until it holds or timeout elapses.
// Returns false on timeout.
func WaitForCondition(t *testing.T, condition func() bool, timeout, interval time.Duration) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(interval)
	}
	return condition()
}

// WaitForEventCount waits until the handler has received at least count events
func WaitForEventCount(t *testing.T, handler *MockEventHandler, count int, timeout time.Duration) bool {
	t.Helper()

	return WaitForCondition(t, func() bool {
		return handler.HandledCount() >= count
	}, timeout, 10*time.Millisecond)
}
