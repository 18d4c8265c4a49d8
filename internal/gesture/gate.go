package gesture

// PhraseLookup resolves a gesture identifier to its phrase text. The second
// return reports whether a non-empty phrase is registered.
type PhraseLookup func(gesture string) (string, bool)

// Gate applies the two-tier dispatch suppression: an identical gesture may
// not fire again within CooldownMs, and a candidate without a registered
// phrase is withheld. The detection loop runs at 15-30 Hz and a single
// physical gesture spans many ticks; without the gate the same gesture
// would dispatch every tick until its blinks age out of the window.
type Gate struct {
	cfg Config

	lastGesture    string
	lastDispatchAt int64
	dispatched     bool
}

// NewGate creates a Gate with the given configuration.
func NewGate(cfg Config) *Gate {
	return &Gate{cfg: cfg}
}

// Offer presents a candidate gesture to the gate. It returns the resolved
// phrase and true when the candidate passes; on rejection the gate state is
// unchanged and the empty string is returned.
func (g *Gate) Offer(candidate string, nowMs int64, lookup PhraseLookup) (string, bool) {
	if candidate == "" {
		return "", false
	}

	if g.dispatched && candidate == g.lastGesture && nowMs-g.lastDispatchAt < g.cfg.CooldownMs {
		return "", false
	}

	phrase, ok := lookup(candidate)
	if !ok || phrase == "" {
		return "", false
	}

	g.lastGesture = candidate
	g.lastDispatchAt = nowMs
	g.dispatched = true

	return phrase, true
}

// LastGesture returns the most recently dispatched gesture identifier, or ""
// if nothing has been dispatched yet.
func (g *Gate) LastGesture() string {
	if !g.dispatched {
		return ""
	}
	return g.lastGesture
}

// Reset clears the dispatch bookkeeping.
func (g *Gate) Reset() {
	g.lastGesture = ""
	g.lastDispatchAt = 0
	g.dispatched = false
}
