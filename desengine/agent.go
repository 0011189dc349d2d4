package desengine

import "github.com/google/uuid"

// Agent is the contract every simulated entity implements: a stable
// identity and a synchronous handler that may mutate private state and
// emit further scheduled events. Agent variants are open-ended — the core
// is polymorphic over this capability set rather than a closed sum type.
//
// Handle must run to completion and must not block; an agent that needs to
// "wait" schedules a future-time event addressed to itself.
type Agent interface {
	ID() uuid.UUID
	Handle(time uint64, arg any) []ScheduledEvent
}
