package factory

import (
	"sync"

	"github.com/aosanya/smartfactory-des/desengine"
	"github.com/google/uuid"
)

// Sensor is a desengine.Agent that samples Source on a fixed period,
// self-reschedules for the next sample, and optionally forwards the
// reading to a Subscriber agent as a SensorSample event.
//
// A Sensor's self-addressed event is what keeps it alive for the
// duration of a run; it never receives input from any other agent.
type Sensor struct {
	id     uuid.UUID
	name   string
	period uint64
	source func() float64

	subscriber *uuid.UUID

	mu      sync.RWMutex
	Samples []float64
}

// NewSensor creates a Sensor that calls source every period simulated
// ticks. If subscriber is non-nil, every reading is also forwarded
// there as a SensorSample.
func NewSensor(name string, periodTicks uint64, source func() float64, subscriber *uuid.UUID) *Sensor {
	return &Sensor{
		id:         uuid.New(),
		name:       name,
		period:     periodTicks,
		source:     source,
		subscriber: subscriber,
	}
}

func (s *Sensor) ID() uuid.UUID { return s.id }

// Name returns the sensor's human-readable label.
func (s *Sensor) Name() string { return s.name }

// Readings returns a copy of every value this sensor has sampled so far.
func (s *Sensor) Readings() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]float64, len(s.Samples))
	copy(out, s.Samples)
	return out
}

// Handle implements desengine.Agent. A Sensor ignores its incoming arg
// entirely (including zero-time seed events) — every tick produces a
// fresh reading and reschedules the next one.
func (s *Sensor) Handle(time uint64, _ any) []desengine.ScheduledEvent {
	value := s.source()

	s.mu.Lock()
	s.Samples = append(s.Samples, value)
	s.mu.Unlock()

	next := []desengine.ScheduledEvent{{
		Event: desengine.NewEvent(s.id),
		Time:  time + s.period,
	}}
	if s.subscriber != nil {
		next = append(next, desengine.ScheduledEvent{
			Event: desengine.NewEventWithArg(*s.subscriber, SensorSample{Value: value}),
			Time:  time,
		})
	}
	return next
}
