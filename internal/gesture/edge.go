package gesture

// Blink is a completed closed-then-open eye transition.
type Blink struct {
	StartMs    int64
	EndMs      int64
	DurationMs int64
	Long       bool
}

// EdgeDetector turns the noisy per-frame EAR stream into discrete blink
// events with hysteresis. It is a pure state machine over (EAR, time); the
// caller supplies timestamps, so it never reads a clock.
type EdgeDetector struct {
	cfg Config

	isClosed       bool
	closeStartedAt int64
	lastOpenedAt   int64
	everOpened     bool
}

// NewEdgeDetector creates an EdgeDetector with the given configuration.
func NewEdgeDetector(cfg Config) *EdgeDetector {
	return &EdgeDetector{cfg: cfg}
}

// Update advances the state machine by one frame. It returns a completed
// Blink on an accepted closed-to-open transition, or nil otherwise.
//
// A closure is only entered after DebounceMs has elapsed since the previous
// reopen. A completed closure is only accepted as a blink when its duration
// falls within [MinBlinkMs, MaxBlinkMs]; blinks of LongBlinkMs or more are
// tagged long. Rejected closures still reset the open state.
func (d *EdgeDetector) Update(ear float64, nowMs int64) *Blink {
	if !d.isClosed {
		debounced := d.everOpened && nowMs-d.lastOpenedAt < d.cfg.DebounceMs
		if ear < d.cfg.ClosureThreshold && !debounced {
			d.isClosed = true
			d.closeStartedAt = nowMs
		}
		return nil
	}

	if ear < d.cfg.ClosureThreshold {
		return nil
	}

	// Rising edge.
	duration := nowMs - d.closeStartedAt
	d.isClosed = false
	d.lastOpenedAt = nowMs
	d.everOpened = true

	if duration < d.cfg.MinBlinkMs || duration > d.cfg.MaxBlinkMs {
		return nil
	}

	return &Blink{
		StartMs:    d.closeStartedAt,
		EndMs:      nowMs,
		DurationMs: duration,
		Long:       duration >= d.cfg.LongBlinkMs,
	}
}

// IsClosed reports whether the detector currently considers the eyes closed.
func (d *EdgeDetector) IsClosed() bool {
	return d.isClosed
}

// Reset clears all transition state.
func (d *EdgeDetector) Reset() {
	d.isClosed = false
	d.closeStartedAt = 0
	d.lastOpenedAt = 0
	d.everOpened = false
}
