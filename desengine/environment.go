package desengine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// reportBufferSize sizes the outbound channel generously so that a caller
// polling Reports() in its own time does not starve the loop; see
// trySend's doc comment for how fullness is handled.
const reportBufferSize = 256

// controlBufferSize sizes the inbound control channel; control messages
// are rare relative to dispatches, so a small buffer suffices.
const controlBufferSize = 16

// Environment owns a run's agents and channel endpoints, constructs the
// initial seed, and launches the scheduling loop as a goroutine. It is the
// lifecycle façade an external driver (CLI host, test harness, future
// transport) programs against.
type Environment struct {
	log   *log.Entry
	sleep func(time.Duration)

	agents map[uuid.UUID]Agent

	in  chan ControlMessage
	out chan ReportMessage
}

// New constructs an Environment with no agents yet. log receives short
// status strings at lifecycle transitions; sleep is the injected yield
// primitive (time.Sleep for a real clock, a no-op for tests, or a
// channel-based hook for a hosted runtime).
func New(logger *log.Entry, sleep func(time.Duration)) *Environment {
	logger.Info("Creating new environment")
	return &Environment{
		log:   logger,
		sleep: sleep,
	}
}

// Run instantiates the given agents, seeds one zero-time event per agent,
// and launches the scheduling loop in its own goroutine. The returned
// channel receives exactly one value — the terminal error, or nil on
// success — when the run ends.
//
// Run returns ErrDuplicateAgent synchronously, before launching the loop,
// if two agents share an ID.
func (e *Environment) Run(settings Settings, agents []Agent) (<-chan error, error) {
	registry := make(map[uuid.UUID]Agent, len(agents))
	seed := make([]ScheduledEvent, 0, len(agents))
	for _, a := range agents {
		if _, dup := registry[a.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAgent, a.ID())
		}
		registry[a.ID()] = a
		seed = append(seed, ScheduledEvent{Event: NewEvent(a.ID()), Time: 0})
	}
	e.agents = registry

	e.in = make(chan ControlMessage, controlBufferSize)
	e.out = make(chan ReportMessage, reportBufferSize)

	e.log.Info("Starting")

	done := make(chan error, 1)
	go func() {
		done <- RunQueue(registry, seed, e.in, e.out, e.log, e.sleep, settings)
	}()

	return done, nil
}

// Reports returns the outbound channel so the caller can drain progress
// reports during and after a run. Valid only after Run has been called.
func (e *Environment) Reports() <-chan ReportMessage {
	return e.out
}

// Halt sends a request to terminate the run before its next dispatch.
func (e *Environment) Halt() {
	e.log.Info("Halting")
	e.sendControl(HaltMessage())
}

// SetYieldDurationMs retunes the yield duration for the remainder of the
// run.
func (e *Environment) SetYieldDurationMs(ms uint64) {
	e.log.Info("Changing sleep time")
	e.sendControl(SetYieldDurationMsMessage(ms))
}

// SetYieldEvery retunes the dispatch count between yields.
func (e *Environment) SetYieldEvery(n uint64) {
	e.log.Info("Changing sleep iter count")
	e.sendControl(SetYieldEveryMessage(n))
}

// SetMaxIter retunes the absolute bound on dispatched events.
func (e *Environment) SetMaxIter(n uint64) {
	e.log.Info("Changing max iter count")
	e.sendControl(SetMaxIterMessage(n))
}

// sendControl delivers a single control message. A send failure (the loop
// has already exited and stopped draining) is advisory: it is logged, not
// propagated, since control methods return no error by design. Unlike the
// outbound report path, a lost control message never fails the run.
func (e *Environment) sendControl(msg ControlMessage) {
	select {
	case e.in <- msg:
	default:
		e.log.WithField("kind", msg.Kind).Warn("Control message lost, loop not accepting input")
	}
}
