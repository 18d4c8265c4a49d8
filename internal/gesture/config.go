// Package gesture turns the per-frame eye aspect ratio stream into discrete,
// exactly-once communication gesture events.
package gesture

// Config holds the tunable constants of the blink detection state machine.
// All durations are in milliseconds.
type Config struct {
	// ClosureThreshold is the EAR value below which an eye counts as closed.
	ClosureThreshold float64

	// DebounceMs is the minimum gap after a reopen before a new closure is
	// accepted, suppressing flicker at the threshold boundary.
	DebounceMs int64

	// MinBlinkMs and MaxBlinkMs bound the plausible duration of a real
	// blink; completed closures outside this range are discarded as noise.
	MinBlinkMs int64
	MaxBlinkMs int64

	// LongBlinkMs is the duration at which a blink counts as a long blink,
	// a complete gesture in itself.
	LongBlinkMs int64

	// CombineMs is the maximum gap between consecutive blinks that still
	// combine into a double or triple.
	CombineMs int64

	// SettleMs is how long a lone blink must stand unaccompanied before it
	// is classified as a single, leaving room for a second blink to
	// upgrade the count.
	SettleMs int64

	// WindowMs is the sliding recency window for the blink history.
	WindowMs int64

	// CooldownMs is the minimum gap between repeated dispatches of the
	// identical gesture.
	CooldownMs int64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ClosureThreshold: 0.21,
		DebounceMs:       50,
		MinBlinkMs:       30,
		MaxBlinkMs:       1200,
		LongBlinkMs:      700,
		CombineMs:        400,
		SettleMs:         600,
		WindowMs:         2000,
		CooldownMs:       1000,
	}
}
