package gesture

import "testing"

func mapping(m map[string]string) PhraseLookup {
	return func(gesture string) (string, bool) {
		p, ok := m[gesture]
		return p, ok
	}
}

func TestGate_CooldownIdempotence(t *testing.T) {
	g := NewGate(DefaultConfig())
	lookup := mapping(map[string]string{"singleBlink": "Yes"})

	phrase, ok := g.Offer("singleBlink", 0, lookup)
	if !ok || phrase != "Yes" {
		t.Fatalf("Offer at t=0 = (%q, %v), want (Yes, true)", phrase, ok)
	}

	// Identical classification inside the cooldown window is suppressed.
	if _, ok := g.Offer("singleBlink", 500, lookup); ok {
		t.Error("identical gesture at t=500 should be suppressed by cooldown")
	}

	// After the cooldown it may dispatch again.
	if _, ok := g.Offer("singleBlink", 1001, lookup); !ok {
		t.Error("identical gesture at t=1001 should dispatch")
	}
}

func TestGate_DifferentGestureBypassesCooldown(t *testing.T) {
	g := NewGate(DefaultConfig())
	lookup := mapping(map[string]string{
		"singleBlink": "Yes",
		"doubleBlink": "No",
	})

	if _, ok := g.Offer("singleBlink", 0, lookup); !ok {
		t.Fatal("first dispatch should pass")
	}

	phrase, ok := g.Offer("doubleBlink", 200, lookup)
	if !ok || phrase != "No" {
		t.Errorf("different gesture inside cooldown = (%q, %v), want (No, true)", phrase, ok)
	}
}

func TestGate_UnmappedGestureWithheld(t *testing.T) {
	g := NewGate(DefaultConfig())
	lookup := mapping(map[string]string{"doubleBlink": ""})

	if _, ok := g.Offer("singleBlink", 0, lookup); ok {
		t.Error("gesture without a phrase must not dispatch")
	}
	if _, ok := g.Offer("doubleBlink", 0, lookup); ok {
		t.Error("gesture with an empty phrase must not dispatch")
	}

	// Rejections leave the gate untouched.
	if g.LastGesture() != "" {
		t.Errorf("LastGesture = %q, want empty after rejections", g.LastGesture())
	}
}

func TestGate_EmptyCandidate(t *testing.T) {
	g := NewGate(DefaultConfig())
	called := false
	lookup := func(string) (string, bool) {
		called = true
		return "x", true
	}

	if _, ok := g.Offer("", 0, lookup); ok {
		t.Error("empty candidate must not dispatch")
	}
	if called {
		t.Error("lookup must not be consulted for an empty candidate")
	}
}

func TestGate_Reset(t *testing.T) {
	g := NewGate(DefaultConfig())
	lookup := mapping(map[string]string{"singleBlink": "Yes"})

	g.Offer("singleBlink", 0, lookup)
	g.Reset()

	// The cooldown no longer applies after a reset.
	if _, ok := g.Offer("singleBlink", 100, lookup); !ok {
		t.Error("dispatch after Reset should pass")
	}
}
