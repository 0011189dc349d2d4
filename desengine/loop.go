package desengine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RunQueue is the scheduling loop: the dispatcher at the heart of the
// engine. It consumes at most one control message per iteration, pops the
// earliest-time event, dispatches it to the owning agent, splices the
// resulting events back into the queue, and periodically reports progress
// and yields via the injected sleep primitive.
//
// agents is borrowed exclusively for the duration of the call; no other
// goroutine may read or write it while RunQueue runs. init seeds the
// queue. in is polled non-blockingly once per iteration; out receives
// Started once at entry and an Iter report at every yield boundary.
//
// RunQueue returns nil on any of the three successful terminations (empty
// queue, Halt, max-iter reached), ErrEventHasNoAgent if a popped event
// targets an unregistered agent, or ErrCouldNotCommunicate if out could
// not accept a report.
func RunQueue(
	agents map[uuid.UUID]Agent,
	init []ScheduledEvent,
	in <-chan ControlMessage,
	out chan<- ReportMessage,
	logger *log.Entry,
	sleep func(time.Duration),
	settings Settings,
) error {
	queue := newEventQueue()
	queue.extend(init)

	if !trySend(out, ReportMessage{Kind: ReportStarted}) {
		return ErrCouldNotCommunicate
	}

	var i uint64
	halted := false

	for {
		// (a) drain at most one inbound control message.
		select {
		case msg := <-in:
			applyControl(&settings, &halted, msg, logger)
		default:
		}

		// (b) halt preempts any further dispatch.
		if halted {
			return nil
		}

		// (c) max-iter bound.
		if i >= settings.MaxIter {
			return nil
		}

		// (d) pop earliest event; natural termination on empty queue.
		scheduled, ok := queue.popMin()
		if !ok {
			return nil
		}

		// (e) dispatch.
		agent, found := agents[scheduled.Event.Target]
		if !found {
			return fmt.Errorf("%w: target %s", ErrEventHasNoAgent, scheduled.Event.Target)
		}
		produced := agent.Handle(scheduled.Time, scheduled.Event.Arg)
		queue.extend(produced)

		i++

		// (g) yield boundary: report then suspend.
		if settings.YieldEveryN > 0 && i%settings.YieldEveryN == 0 {
			if !trySend(out, ReportMessage{Kind: ReportIter, Iter: i}) {
				return ErrCouldNotCommunicate
			}
			logger.Info("Entered sleep")
			sleep(time.Duration(settings.YieldDurationMs) * time.Millisecond)
		}
	}
}

// applyControl mutates settings or raises the halt flag for a single
// control message. Invalid/unknown kinds are ignored.
func applyControl(settings *Settings, halted *bool, msg ControlMessage, logger *log.Entry) {
	switch msg.Kind {
	case ControlHalt:
		*halted = true
	case ControlSetYieldEvery:
		settings.YieldEveryN = msg.Value
	case ControlSetYieldDurationMs:
		settings.YieldDurationMs = msg.Value
	case ControlSetMaxIter:
		settings.MaxIter = msg.Value
	default:
		logger.WithField("kind", msg.Kind).Warn("Unknown control message")
	}
}

// trySend attempts a non-blocking send on out, reporting whether it
// succeeded. The report channel is sized generously to emulate a
// logically unbounded outbound channel; a full buffer or a closed
// channel are both treated as the observer having gone away, since
// draining is the observer's responsibility.
func trySend(out chan<- ReportMessage, msg ReportMessage) (sent bool) {
	defer func() {
		if recover() != nil {
			sent = false
		}
	}()
	select {
	case out <- msg:
		return true
	default:
		return false
	}
}
