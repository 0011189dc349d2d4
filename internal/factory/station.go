package factory

import (
	"sync"

	"github.com/aosanya/smartfactory-des/desengine"
	"github.com/google/uuid"
)

// StationState mirrors the lifecycle vocabulary a shop-floor controller
// would report on a human-readable status board.
type StationState string

const (
	StationIdle       StationState = "idle"
	StationProcessing StationState = "processing"
)

// StationConfig configures a Station's behavior.
type StationConfig struct {
	// ProcessingTicks is how many simulated time units a part occupies
	// the station before it is forwarded.
	ProcessingTicks uint64

	// Next, if non-nil, receives every part this station finishes
	// processing, ProcessingTicks after it arrived.
	Next *uuid.UUID
}

// Station is a desengine.Agent that receives PartArrived events,
// "processes" each part for ProcessingTicks simulated time units, and
// reschedules a PartArrived event addressed to Next when processing
// completes. Because the engine dispatches synchronously, "processing"
// is modeled entirely through the delay on the forwarded event rather
// than by occupying wall-clock time.
type Station struct {
	id     uuid.UUID
	name   string
	config StationConfig

	mu        sync.RWMutex
	state     StationState
	Processed int
}

// NewStation creates a Station with its own identity.
func NewStation(name string, config StationConfig) *Station {
	return &Station{
		id:     uuid.New(),
		name:   name,
		config: config,
		state:  StationIdle,
	}
}

func (s *Station) ID() uuid.UUID { return s.id }

// Name returns the station's human-readable label.
func (s *Station) Name() string { return s.name }

// State reports whether the station is currently mid-dispatch. Since
// Handle runs to completion before returning control to the loop, this
// is observable only from another goroutine inspecting a running
// simulation concurrently with the scheduling loop.
func (s *Station) State() StationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Handle implements desengine.Agent. Any arg other than PartArrived is
// ignored; a station that is never sent an event simply never fires.
func (s *Station) Handle(time uint64, arg any) []desengine.ScheduledEvent {
	part, ok := arg.(PartArrived)
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.state = StationProcessing
	s.Processed++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.state = StationIdle
		s.mu.Unlock()
	}()

	if s.config.Next == nil {
		return nil
	}
	return []desengine.ScheduledEvent{{
		Event: desengine.NewEventWithArg(*s.config.Next, part),
		Time:  time + s.config.ProcessingTicks,
	}}
}
