package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseAggregateRoot(t *testing.T) {
	a := NewBaseAggregateRoot()

	assert.NotEqual(t, uuid.Nil, a.AggregateID())
	assert.Equal(t, 1, a.GetVersion())
	assert.Equal(t, time.UTC, a.CreatedAt.Location())
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Empty(t, a.PendingEvents())
}

func TestBaseAggregateRoot_Touch(t *testing.T) {
	a := NewBaseAggregateRoot()
	at := time.Date(2024, 6, 15, 23, 30, 0, 0, time.FixedZone("PST", -8*3600))

	a.Touch(at)
	a.Touch(at)

	assert.Equal(t, 3, a.Version)
	assert.Equal(t, time.UTC, a.UpdatedAt.Location())
	assert.True(t, at.Equal(a.UpdatedAt))
}

func TestBaseAggregateRoot_PullDomainEvents(t *testing.T) {
	a := NewBaseAggregateRoot()
	placed := NewBaseDomainEvent("order.placed", "Order", a.ID)
	paid := NewBaseDomainEvent("order.status_changed", "Order", a.ID)

	a.RecordEvent(&placed)
	a.RecordEvent(&paid)
	require.Len(t, a.PendingEvents(), 2)

	pulled := a.PullDomainEvents()
	require.Len(t, pulled, 2)
	assert.Equal(t, "order.placed", pulled[0].EventType())
	assert.Equal(t, "order.status_changed", pulled[1].EventType())

	assert.Empty(t, a.PendingEvents())
	assert.Empty(t, a.PullDomainEvents())
}

func TestAggregateRootInterface(t *testing.T) {
	a := NewBaseAggregateRoot()
	var root AggregateRoot = &a
	assert.Equal(t, a.ID, root.AggregateID())
}
