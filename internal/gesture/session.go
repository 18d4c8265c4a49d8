package gesture

import (
	"github.com/ayusman/drishti/internal/gaze"
)

// Event is a dispatched gesture with its resolved phrase.
type Event struct {
	Gesture string
	Phrase  string
	AtMs    int64
}

// Session owns the mutable state of one detection run: the edge detector,
// the rising-edge blink history, the pending long-blink flag, and the
// dispatch gate. It is exclusively owned by a single detection loop and must
// be Reset at stop/start boundaries so stale timestamps never leak across.
type Session struct {
	cfg        Config
	edge       *EdgeDetector
	classifier *Classifier
	gate       *Gate

	history       []int64
	pendingLong   bool
	pendingLongAt int64 // rising edge of the undispatched long blink
}

// NewSession creates a Session with the given configuration.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:        cfg,
		edge:       NewEdgeDetector(cfg),
		classifier: NewClassifier(cfg),
		gate:       NewGate(cfg),
	}
}

// Tick advances the session by one frame: edge detection over the EAR value,
// history maintenance, classification against the current gaze direction,
// and the dispatch gate. It returns a non-nil Event exactly when a gesture
// clears the gate; the phrase lookup is only consulted for candidates.
//
// The pipeline is strictly ordered within a tick and uses the caller's
// nowMs for every timestamp, so inter-tick ordering is tick arrival order.
func (s *Session) Tick(ear float64, dir gaze.Direction, nowMs int64, lookup PhraseLookup) *Event {
	if blink := s.edge.Update(ear, nowMs); blink != nil {
		if blink.Long {
			// A long blink is a complete gesture in itself; it never
			// combines with preceding short blinks.
			s.history = s.history[:0]
			s.pendingLong = true
			s.pendingLongAt = nowMs
		} else {
			s.history = append(s.history, nowMs)
		}
	}

	s.prune(nowMs)

	candidate := s.classifier.Classify(s.history, s.pendingLong, dir, nowMs)

	phrase, ok := s.gate.Offer(candidate, nowMs, lookup)
	if !ok {
		return nil
	}

	// Accepted: already-classified blinks must not be reused.
	s.history = s.history[:0]
	s.pendingLong = false

	return &Event{Gesture: candidate, Phrase: phrase, AtMs: nowMs}
}

// prune discards history entries older than the sliding window.
func (s *Session) prune(nowMs int64) {
	cutoff := nowMs - s.cfg.WindowMs
	i := 0
	for i < len(s.history) && s.history[i] <= cutoff {
		i++
	}
	if i > 0 {
		s.history = append(s.history[:0], s.history[i:]...)
	}
	if s.pendingLong && s.pendingLongAt <= cutoff {
		s.pendingLong = false
	}
}

// History returns a copy of the current rising-edge timestamps, oldest
// first. Intended for status reporting and tests.
func (s *Session) History() []int64 {
	out := make([]int64, len(s.history))
	copy(out, s.history)
	return out
}

// LastGesture returns the most recently dispatched gesture identifier.
func (s *Session) LastGesture() string {
	return s.gate.LastGesture()
}

// Reset clears all session state: history, edge transition state, the
// pending long-blink flag, and dispatch bookkeeping.
func (s *Session) Reset() {
	s.history = s.history[:0]
	s.pendingLong = false
	s.edge.Reset()
	s.gate.Reset()
}
