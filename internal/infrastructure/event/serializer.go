package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/flx/storefront/internal/domain/order"
	"github.com/flx/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

// Envelope is the wire form of a domain event on the message broker
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SchemaVersion int             `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

type versioned interface {
	SchemaVersion() int
}

// EventSerializer converts domain events to and from envelopes
type EventSerializer struct {
	mu       sync.RWMutex
	registry map[string]reflect.Type
}

// NewEventSerializer creates a serializer that knows the order events
func NewEventSerializer() *EventSerializer {
	s := &EventSerializer{registry: make(map[string]reflect.Type)}
	s.Register(order.EventTypeOrderPlaced, &order.OrderPlacedEvent{})
	s.Register(order.EventTypeOrderStatusChanged, &order.OrderStatusChangedEvent{})
	return s
}

// Register maps eventType to the concrete type used when decoding
func (s *EventSerializer) Register(eventType string, instance shared.DomainEvent) {
	t := reflect.TypeOf(instance)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	s.mu.Lock()
	s.registry[eventType] = t
	s.mu.Unlock()
}

// Serialize encodes ev as an envelope
func (s *EventSerializer) Serialize(ev shared.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", ev.EventType(), err)
	}

	version := 1
	if v, ok := ev.(versioned); ok {
		version = v.SchemaVersion()
	}

	return json.Marshal(Envelope{
		ID:            ev.EventID(),
		Type:          ev.EventType(),
		AggregateID:   ev.AggregateID(),
		AggregateType: ev.AggregateType(),
		OccurredAt:    ev.OccurredAt(),
		SchemaVersion: version,
		Payload:       payload,
	})
}

// Deserialize decodes an envelope back into its registered event type
func (s *EventSerializer) Deserialize(data []byte) (shared.DomainEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	s.mu.RLock()
	t, ok := s.registry[env.Type]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", env.Type)
	}

	ptr := reflect.New(t).Interface()
	if err := json.Unmarshal(env.Payload, ptr); err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", env.Type, err)
	}
	ev, ok := ptr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("%s does not implement DomainEvent", t)
	}
	return ev, nil
}
