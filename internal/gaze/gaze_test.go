package gaze

import "testing"

func TestResolve(t *testing.T) {
	cal := Calibration{CenterX: 320, CenterY: 240, DeadzoneRadius: 100}

	tests := []struct {
		name  string
		point *Point
		want  Direction
	}{
		{"inside deadzone", &Point{X: 300, Y: 230}, Center},
		{"exactly at center", &Point{X: 320, Y: 240}, Center},
		{"far right", &Point{X: 500, Y: 230}, LookRight},
		{"far left", &Point{X: 100, Y: 250}, LookLeft},
		{"below center", &Point{X: 300, Y: 400}, LookDown},
		{"above center", &Point{X: 330, Y: 50}, LookUp},
		{"deadzone boundary is center", &Point{X: 420, Y: 240}, Center},
		{"horizontal wins dominant axis tie", &Point{X: 470, Y: 390}, LookRight},
		{"no estimate resolves to center", nil, Center},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.point, cal); got != tt.want {
				t.Errorf("Resolve(%v) = %s, want %s", tt.point, got, tt.want)
			}
		})
	}
}

func TestResolve_DefaultCalibration(t *testing.T) {
	cal := DefaultCalibration()

	if cal.CenterX != DefaultCenterX || cal.CenterY != DefaultCenterY {
		t.Fatalf("default center = (%f, %f), want (%f, %f)",
			cal.CenterX, cal.CenterY, DefaultCenterX, DefaultCenterY)
	}
	if cal.DeadzoneRadius != DefaultDeadzone {
		t.Fatalf("default deadzone = %f, want %f", cal.DeadzoneRadius, DefaultDeadzone)
	}

	// The geometric center of a 640x480 viewport reads as center.
	if got := Resolve(&Point{X: 320, Y: 240}, cal); got != Center {
		t.Errorf("Resolve(center point) = %s, want %s", got, Center)
	}
}

func TestMockTracker(t *testing.T) {
	t.Run("returns no estimate by default", func(t *testing.T) {
		mock := NewMockTracker()

		pt, err := mock.Predict(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if pt != nil {
			t.Errorf("expected nil point, got %v", pt)
		}
	})

	t.Run("returns configured point", func(t *testing.T) {
		mock := NewMockTracker()
		mock.SetPoint(&Point{X: 500, Y: 230, Confidence: 0.8})

		pt, err := mock.Predict(nil)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if pt == nil || pt.X != 500 {
			t.Errorf("expected configured point, got %v", pt)
		}
	})

	t.Run("implements Tracker interface", func(t *testing.T) {
		var _ Tracker = (*MockTracker)(nil)
	})
}
