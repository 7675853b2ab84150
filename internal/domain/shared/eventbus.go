package shared

import "context"

// EventPublisher delivers events of an order change that is already
// committed. A publish error cannot undo the change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventHandler consumes published events. EventTypes is used when the handler
// is subscribed without explicit types; an empty list means every type.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventBus fans published events out to in-process subscribers
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}
