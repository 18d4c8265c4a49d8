package gesture

import (
	"github.com/ayusman/drishti/internal/gaze"
)

// Blink count tokens. A non-center gaze direction is appended as a suffix,
// e.g. "doubleBlink_lookUp". Long blinks never carry a suffix.
const (
	SingleBlink = "singleBlink"
	DoubleBlink = "doubleBlink"
	TripleBlink = "tripleBlink"
	LongBlink   = "longBlink"
)

// Identifier composes a gesture identifier from a count token and a gaze
// direction. Center contributes no suffix.
func Identifier(count string, dir gaze.Direction) string {
	if dir == gaze.Center || dir == "" {
		return count
	}
	return count + "_" + string(dir)
}

// Classifier groups temporally close blinks into counts. It holds no state
// of its own; history mutation is the dispatch gate's job.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a Classifier with the given configuration.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify evaluates the pruned rising-edge history against the current gaze
// direction and returns a gesture identifier, or "" when no gesture has
// formed yet.
//
// The chosen count is always the maximal N (at most 3) whose consecutive
// gaps stay below CombineMs, counted back from the most recent blink. To
// preserve that maximality under per-tick evaluation, a single waits
// SettleMs and a double waits CombineMs for a possible upgrade before
// firing; a triple cannot be upgraded and fires immediately. Four or more
// blinks inside the window are treated as noise until they age out.
func (c *Classifier) Classify(history []int64, pendingLong bool, dir gaze.Direction, nowMs int64) string {
	if pendingLong {
		return LongBlink
	}

	n := len(history)
	if n == 0 || n >= 4 {
		return ""
	}

	// Count how many trailing blinks chain together within CombineMs.
	run := 1
	for i := n - 1; i > 0 && history[i]-history[i-1] < c.cfg.CombineMs; i-- {
		run++
	}

	last := history[n-1]

	switch {
	case run >= 3:
		return Identifier(TripleBlink, dir)
	case run == 2:
		if nowMs-last >= c.cfg.CombineMs {
			return Identifier(DoubleBlink, dir)
		}
	default:
		if nowMs-last >= c.cfg.SettleMs {
			return Identifier(SingleBlink, dir)
		}
	}

	return ""
}
