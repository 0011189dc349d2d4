package desengine

import "math"

// Settings holds the three tunables governing a run. Values are copied
// into the scheduling loop at start and thereafter mutated only by
// inbound ControlMessages.
type Settings struct {
	// YieldEveryN is the number of dispatched events between yields.
	YieldEveryN uint64
	// YieldDurationMs is how long each yield suspends for.
	YieldDurationMs uint64
	// MaxIter is the absolute upper bound on dispatched events.
	MaxIter uint64
}

// DefaultSettings returns the standard defaults: yield every 5000
// dispatches, for 100ms, with no effective bound on dispatched events.
func DefaultSettings() Settings {
	return Settings{
		YieldEveryN:     5000,
		YieldDurationMs: 100,
		MaxIter:         math.MaxUint64,
	}
}
