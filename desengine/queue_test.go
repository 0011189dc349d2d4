package desengine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_PopMinOrdersByTime(t *testing.T) {
	q := newEventQueue()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	q.extend([]ScheduledEvent{
		{Event: NewEvent(a), Time: 5},
		{Event: NewEvent(b), Time: 1},
		{Event: NewEvent(c), Time: 3},
	})

	first, ok := q.popMin()
	require.True(t, ok)
	assert.Equal(t, uint64(1), first.Time)

	second, ok := q.popMin()
	require.True(t, ok)
	assert.Equal(t, uint64(3), second.Time)

	third, ok := q.popMin()
	require.True(t, ok)
	assert.Equal(t, uint64(5), third.Time)

	_, ok = q.popMin()
	assert.False(t, ok)
}

func TestEventQueue_TieBreakIsInsertionOrder(t *testing.T) {
	q := newEventQueue()
	agentID := uuid.New()
	first := NewEvent(agentID)
	second := NewEvent(agentID)
	third := NewEvent(agentID)

	q.extend([]ScheduledEvent{{Event: first, Time: 0}})
	q.extend([]ScheduledEvent{{Event: second, Time: 0}})
	q.extend([]ScheduledEvent{{Event: third, Time: 0}})

	e1, _ := q.popMin()
	e2, _ := q.popMin()
	e3, _ := q.popMin()

	assert.Equal(t, first.ID(), e1.Event.ID())
	assert.Equal(t, second.ID(), e2.Event.ID())
	assert.Equal(t, third.ID(), e3.Event.ID())
}

// TestEventQueue_OrderIndependentOfPushOrder covers R2: seeding the same
// (Event, time) entries in any order produces the same dispatch sequence,
// ties permitting (we use distinct times here to avoid depending on the
// insertion-order tie-break, which this test does not exercise).
func TestEventQueue_OrderIndependentOfPushOrder(t *testing.T) {
	agentID := uuid.New()
	e1, e2, e3 := NewEvent(agentID), NewEvent(agentID), NewEvent(agentID)

	build := func(order []ScheduledEvent) []uint64 {
		q := newEventQueue()
		q.extend(order)
		var times []uint64
		for !q.isEmpty() {
			s, _ := q.popMin()
			times = append(times, s.Time)
		}
		return times
	}

	orderA := []ScheduledEvent{{Event: e1, Time: 10}, {Event: e2, Time: 2}, {Event: e3, Time: 7}}
	orderB := []ScheduledEvent{{Event: e3, Time: 7}, {Event: e1, Time: 10}, {Event: e2, Time: 2}}

	assert.Equal(t, build(orderA), build(orderB))
}

func TestEventQueue_IsEmpty(t *testing.T) {
	q := newEventQueue()
	assert.True(t, q.isEmpty())
	q.extend([]ScheduledEvent{{Event: NewEvent(uuid.New()), Time: 0}})
	assert.False(t, q.isEmpty())
}

func TestEventQueue_AllowsDuplicateEvents(t *testing.T) {
	q := newEventQueue()
	agentID := uuid.New()
	ev := NewEvent(agentID)
	q.extend([]ScheduledEvent{{Event: ev, Time: 0}, {Event: ev, Time: 0}})
	assert.Equal(t, 2, q.Len())
}
