package desengine

import "github.com/google/uuid"

// Event is a unique, time-agnostic message addressed to one agent. The
// optional Arg carries a heterogeneous, handler-defined payload; the core
// never inspects it beyond passing it through to the target agent's Handle.
type Event struct {
	id     uuid.UUID
	Target uuid.UUID
	Arg    any
}

// NewEvent creates an event with no payload, addressed to target.
func NewEvent(target uuid.UUID) Event {
	return Event{id: uuid.New(), Target: target}
}

// NewEventWithArg creates an event carrying arg, addressed to target.
func NewEventWithArg(target uuid.UUID, arg any) Event {
	return Event{id: uuid.New(), Target: target, Arg: arg}
}

// ID returns the event's unique identity. Two events are the same event
// iff their IDs are equal, whatever their Target and Arg. Event has no
// Equal method; Go's == on Event values also compares Target and Arg.
func (e Event) ID() uuid.UUID {
	return e.id
}

// ScheduledEvent pairs an Event with the logical tick at which it should be
// dispatched. Time is a monotonic logical counter, not wall-clock time.
type ScheduledEvent struct {
	Event Event
	Time  uint64
}
