package desengine

import "errors"

var (
	// ErrEventHasNoAgent is returned when a popped event's target is not
	// registered with the environment. The run terminates immediately.
	ErrEventHasNoAgent = errors.New("desengine: event targets an unregistered agent")

	// ErrCouldNotCommunicate is returned when the outbound report channel
	// could not accept a report because its consumer has gone away.
	ErrCouldNotCommunicate = errors.New("desengine: could not send report, observer is gone")

	// ErrDuplicateAgent is returned when two agents share the same ID
	// within the same environment.
	ErrDuplicateAgent = errors.New("desengine: duplicate agent id")
)
