package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/drishti/internal/app"
	"github.com/ayusman/drishti/internal/config"
	"github.com/ayusman/drishti/internal/detector"
	"github.com/ayusman/drishti/internal/gaze"
	"github.com/ayusman/drishti/internal/gesture"
	"github.com/ayusman/drishti/internal/server"
	"github.com/ayusman/drishti/internal/speech"
	"github.com/ayusman/drishti/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()

	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application := app.New(app.Config{
		Store:    s,
		Settings: config.Default(),
	})
	application.SetDetector(detector.NewMockDetector())
	application.SetTracker(nil)
	application.SetSpeaker(speech.NewMockSpeaker())
	application.Notifier().SetEnabled(false)

	srv := server.New(server.Config{
		Store:      s,
		Controller: application,
		OnCalibrationChange: func(cal gaze.Calibration) {
			application.SetCalibration(cal)
		},
		OnCalibrationClear: func() {
			application.SetCalibration(gaze.DefaultCalibration())
		},
	})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("CreatePhrases", func(t *testing.T) {
		bindings := []string{
			`{"gesture": "singleBlink", "phrase": "Yes"}`,
			`{"gesture": "tripleBlink", "phrase": "No"}`,
			`{"gesture": "longBlink", "phrase": "Help"}`,
			`{"gesture": "doubleBlink_lookUp", "phrase": "Water"}`,
		}

		for _, body := range bindings {
			resp, err := client.Post(ts.URL+"/api/phrases", "application/json", strings.NewReader(body))
			if err != nil {
				t.Fatalf("create phrase error = %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				t.Fatalf("status = %d, want %d for %s", resp.StatusCode, http.StatusCreated, body)
			}
		}
	})

	t.Run("CaptureCalibration", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/calibration",
			strings.NewReader(`{"centerX": 320, "centerY": 240, "deadzoneRadius": 100}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("put calibration error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		cal := application.Calibration()
		if cal.CenterX != 320 || cal.DeadzoneRadius != 100 {
			t.Errorf("calibration not applied to app: %+v", cal)
		}
	})

	lookup := s.Phrases().Lookup
	session := application.Session()
	openEAR := detector.EAR(detector.OpenEyesFace())
	closedEAR := detector.EAR(detector.ClosedEyesFace())

	blink := func(closeMs, openMs int64, dir gaze.Direction) *gesture.Event {
		session.Tick(closedEAR, dir, closeMs, lookup)
		return session.Tick(openEAR, dir, openMs, lookup)
	}

	t.Run("TripleBlinkSpeaksNo", func(t *testing.T) {
		session.Reset()

		blink(1000, 1100, gaze.Center)
		blink(1150, 1250, gaze.Center)
		ev := blink(1300, 1400, gaze.Center)

		if ev == nil {
			t.Fatal("triple blink did not dispatch")
		}
		if ev.Gesture != gesture.TripleBlink || ev.Phrase != "No" {
			t.Errorf("event = %+v, want tripleBlink / No", ev)
		}

		// A blink right after dispatch is still settling and must not
		// fire on its closing tick
		if ev := blink(1500, 1600, gaze.Center); ev != nil {
			t.Errorf("unexpected dispatch while settling: %+v", ev)
		}
	})

	t.Run("LongBlinkIgnoresGazeSuffix", func(t *testing.T) {
		session.Reset()

		ev := blink(5000, 5800, gaze.LookRight)
		if ev == nil {
			t.Fatal("long blink did not dispatch")
		}
		if ev.Gesture != gesture.LongBlink || ev.Phrase != "Help" {
			t.Errorf("event = %+v, want longBlink / Help", ev)
		}
	})

	t.Run("GazeSuffixSelectsWater", func(t *testing.T) {
		session.Reset()

		blink(10000, 10100, gaze.LookUp)
		blink(10200, 10300, gaze.LookUp)

		ev := session.Tick(openEAR, gaze.LookUp, 10750, lookup)
		if ev == nil {
			t.Fatal("double blink with lookUp did not dispatch")
		}
		if ev.Gesture != "doubleBlink_lookUp" || ev.Phrase != "Water" {
			t.Errorf("event = %+v, want doubleBlink_lookUp / Water", ev)
		}
	})

	t.Run("SeparatedSinglesRespectCooldown", func(t *testing.T) {
		session.Reset()

		// Two blinks too far apart to combine classify as singles; the
		// second falls inside the first dispatch's cooldown
		blink(20000, 20100, gaze.Center)

		ev := session.Tick(openEAR, gaze.Center, 20750, lookup)
		if ev == nil {
			t.Fatal("first single did not dispatch")
		}
		if ev.Gesture != gesture.SingleBlink || ev.Phrase != "Yes" {
			t.Errorf("event = %+v, want singleBlink / Yes", ev)
		}

		blink(20900, 21000, gaze.Center)
		if ev := session.Tick(openEAR, gaze.Center, 21650, lookup); ev != nil {
			t.Errorf("second single dispatched inside cooldown: %+v", ev)
		}

		// Past the cooldown the same gesture fires again
		if ev := session.Tick(openEAR, gaze.Center, 21800, lookup); ev == nil {
			t.Error("second single should dispatch after cooldown expires")
		}
	})

	t.Run("DetectionStatusOverHTTP", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/detection")
		if err != nil {
			t.Fatalf("get detection status error = %v", err)
		}
		defer resp.Body.Close()

		var status struct {
			Running bool `json:"running"`
			Enabled bool `json:"enabled"`
		}
		json.NewDecoder(resp.Body).Decode(&status)
		if status.Running {
			t.Error("pipeline should not be running in this test")
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health check error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after app operations")
		}
	})
}
