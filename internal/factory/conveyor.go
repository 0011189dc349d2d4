package factory

import (
	"sync"

	"github.com/aosanya/smartfactory-des/desengine"
	"github.com/google/uuid"
)

// Conveyor is a desengine.Agent that carries a PartArrived event
// through a fixed transit delay before handing it to Destination. It
// differs from a Station only in intent: a conveyor never transforms a
// part, it only introduces travel time between two stations.
type Conveyor struct {
	id          uuid.UUID
	name        string
	transit     uint64
	destination uuid.UUID

	mu        sync.RWMutex
	Delivered int
}

// NewConveyor creates a conveyor with the given transit delay, in
// simulated ticks, to destination.
func NewConveyor(name string, transitTicks uint64, destination uuid.UUID) *Conveyor {
	return &Conveyor{
		id:          uuid.New(),
		name:        name,
		transit:     transitTicks,
		destination: destination,
	}
}

func (c *Conveyor) ID() uuid.UUID { return c.id }

// Name returns the conveyor's human-readable label.
func (c *Conveyor) Name() string { return c.name }

// Handle implements desengine.Agent.
func (c *Conveyor) Handle(time uint64, arg any) []desengine.ScheduledEvent {
	part, ok := arg.(PartArrived)
	if !ok {
		return nil
	}

	c.mu.Lock()
	c.Delivered++
	c.mu.Unlock()

	return []desengine.ScheduledEvent{{
		Event: desengine.NewEventWithArg(c.destination, part),
		Time:  time + c.transit,
	}}
}
