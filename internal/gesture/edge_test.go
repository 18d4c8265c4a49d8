package gesture

import "testing"

const (
	openEAR   = 0.3
	closedEAR = 0.1
)

// feedBlink drives a closure from closeAt to openAt and returns the blink
// emitted at the rising edge, if any.
func feedBlink(t *testing.T, d *EdgeDetector, closeAt, openAt int64) *Blink {
	t.Helper()

	if b := d.Update(closedEAR, closeAt); b != nil {
		t.Fatalf("unexpected blink on falling edge at %d", closeAt)
	}
	return d.Update(openEAR, openAt)
}

func TestEdgeDetector_BlinkLifecycle(t *testing.T) {
	d := NewEdgeDetector(DefaultConfig())

	// Open frames produce nothing.
	if b := d.Update(openEAR, 0); b != nil {
		t.Fatalf("unexpected blink while open: %+v", b)
	}

	blink := feedBlink(t, d, 100, 250)
	if blink == nil {
		t.Fatal("expected a blink at the rising edge")
	}
	if blink.DurationMs != 150 {
		t.Errorf("DurationMs = %d, want 150", blink.DurationMs)
	}
	if blink.StartMs != 100 || blink.EndMs != 250 {
		t.Errorf("blink span = [%d, %d], want [100, 250]", blink.StartMs, blink.EndMs)
	}
	if blink.Long {
		t.Error("150ms blink should not be tagged long")
	}
	if d.IsClosed() {
		t.Error("detector should be open after rising edge")
	}
}

func TestEdgeDetector_ImplausibleDurationsDiscarded(t *testing.T) {
	tests := []struct {
		name     string
		duration int64
		want     bool
	}{
		{"too brief flicker", 20, false},
		{"lower bound", 30, true},
		{"typical blink", 150, true},
		{"upper bound", 1200, true},
		{"eyes held shut too long", 1500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewEdgeDetector(DefaultConfig())

			blink := feedBlink(t, d, 1000, 1000+tt.duration)
			if got := blink != nil; got != tt.want {
				t.Errorf("blink emitted = %v, want %v for %dms", got, tt.want, tt.duration)
			}

			// The open state resets either way.
			if d.IsClosed() {
				t.Error("detector should be open after rising edge")
			}
		})
	}
}

func TestEdgeDetector_LongBlinkTagged(t *testing.T) {
	d := NewEdgeDetector(DefaultConfig())

	blink := feedBlink(t, d, 0, 700)
	if blink == nil {
		t.Fatal("expected a blink")
	}
	if !blink.Long {
		t.Error("700ms blink should be tagged long")
	}

	blink = feedBlink(t, d, 1000, 1150)
	if blink == nil {
		t.Fatal("expected a blink")
	}
	if blink.Long {
		t.Error("150ms blink should not be tagged long")
	}
}

func TestEdgeDetector_Debounce(t *testing.T) {
	d := NewEdgeDetector(DefaultConfig())

	if b := feedBlink(t, d, 0, 100); b == nil {
		t.Fatal("expected initial blink")
	}

	// A new closure within the 50ms debounce gap is ignored.
	if b := d.Update(closedEAR, 120); b != nil {
		t.Fatalf("unexpected blink: %+v", b)
	}
	if d.IsClosed() {
		t.Error("closure within debounce gap should be suppressed")
	}

	// After the gap a closure is accepted again.
	if b := d.Update(closedEAR, 160); b != nil {
		t.Fatalf("unexpected blink on falling edge: %+v", b)
	}
	if !d.IsClosed() {
		t.Error("closure after debounce gap should be accepted")
	}
}

func TestEdgeDetector_Reset(t *testing.T) {
	d := NewEdgeDetector(DefaultConfig())

	d.Update(closedEAR, 100)
	if !d.IsClosed() {
		t.Fatal("expected closed state")
	}

	d.Reset()
	if d.IsClosed() {
		t.Error("Reset should clear the closed state")
	}

	// A fresh closure right away is fine: debounce only applies after a
	// previous reopen.
	d.Update(closedEAR, 101)
	if !d.IsClosed() {
		t.Error("closure after Reset should be accepted")
	}
}
