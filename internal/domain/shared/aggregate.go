package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is a consistency boundary that records domain events while
// it changes. Events are pulled once the change has been committed.
type AggregateRoot interface {
	AggregateID() uuid.UUID
	GetVersion() int
	PendingEvents() []DomainEvent
	PullDomainEvents() []DomainEvent
}

// BaseAggregateRoot holds identity, UTC audit timestamps, the optimistic
// locking version and the events recorded since the last pull.
type BaseAggregateRoot struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
	events    []DomainEvent
}

// NewBaseAggregateRoot starts a fresh aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	now := time.Now().UTC()
	return BaseAggregateRoot{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

func (a *BaseAggregateRoot) AggregateID() uuid.UUID { return a.ID }

func (a *BaseAggregateRoot) GetVersion() int { return a.Version }

// Touch marks a persisted state change at now and bumps the version.
func (a *BaseAggregateRoot) Touch(now time.Time) {
	a.UpdatedAt = now.UTC()
	a.Version++
}

// RecordEvent queues event for publication
func (a *BaseAggregateRoot) RecordEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// PendingEvents returns the queued events without draining them
func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.events
}

// PullDomainEvents drains the queue
func (a *BaseAggregateRoot) PullDomainEvents() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}
