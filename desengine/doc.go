/*
Package desengine implements a cooperative, single-threaded discrete-event
simulation engine for agent-based models.

An Environment owns a set of Agents and runs them against a time-ordered
priority queue of Events: each Event targets one agent, the engine pops
the earliest-time event, invokes the agent's Handle, and splices whatever
new (Event, time) pairs the handler returns back into the queue. A run
ends when the queue drains naturally, when a Halt control message
arrives, or when the dispatched-event count reaches Settings.MaxIter.

# Basic usage

	env := desengine.New(logger, time.Sleep)
	done, err := env.Run(desengine.DefaultSettings(), []desengine.Agent{a, b, c})
	if err != nil {
		// duplicate agent IDs
	}
	for {
		select {
		case report := <-env.Reports():
			// Started / Iter(k)
		case runErr := <-done:
			return runErr
		}
	}

# Concurrency

RunQueue executes on a single goroutine per Run call. Agent handlers are
synchronous and must not block; an agent that needs to wait schedules a
future-time event addressed to itself. The only suspension point inside
the loop is the injected sleep function at a yield boundary, which exists
purely to give a hosting runtime (an HTTP server, a test harness) a
chance to interleave other work — not to pace simulated time.

# Error handling

RunQueue returns nil for every successful termination (empty queue, Halt,
max-iter). It returns ErrEventHasNoAgent if a popped event targets an
agent ID absent from the registry, and ErrCouldNotCommunicate if the
outbound report channel could not accept a report — both are fatal and
unwind the loop immediately.
*/
package desengine
