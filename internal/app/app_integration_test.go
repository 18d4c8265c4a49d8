package app

import (
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/drishti/internal/capture"
	"github.com/ayusman/drishti/internal/config"
	"github.com/ayusman/drishti/internal/detector"
	"github.com/ayusman/drishti/internal/gaze"
	"github.com/ayusman/drishti/internal/gesture"
	"github.com/ayusman/drishti/internal/speech"
	"github.com/ayusman/drishti/internal/store"
)

func newTestApp(t *testing.T) (*App, *store.Store, *speech.MockSpeaker) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	a := New(Config{Store: s, Settings: config.Default()})
	a.SetDetector(detector.NewMockDetector())
	a.SetTracker(nil)
	a.Notifier().SetEnabled(false)

	speaker := speech.NewMockSpeaker()
	a.SetSpeaker(speaker)

	return a, s, speaker
}

func addPhrase(t *testing.T, s *store.Store, gestureID, phrase string) {
	t.Helper()
	err := s.Phrases().Create(&store.Phrase{
		ID:      gestureID,
		Gesture: gestureID,
		Phrase:  phrase,
		Enabled: true,
	})
	if err != nil {
		t.Fatalf("Create(%s) error = %v", gestureID, err)
	}
}

// tickBlink feeds one closed-then-open cycle into the session, closing at
// closeMs and reopening at openMs. Returns the event from the reopen tick.
func tickBlink(a *App, closeMs, openMs int64, dir gaze.Direction) *gesture.Event {
	closedEAR := detector.EAR(detector.ClosedEyesFace())
	openEAR := detector.EAR(detector.OpenEyesFace())

	a.session.Tick(closedEAR, dir, closeMs, a.lookupPhrase)
	return a.session.Tick(openEAR, dir, openMs, a.lookupPhrase)
}

func TestApp_TripleBlinkDispatchesPhrase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s, speaker := newTestApp(t)
	addPhrase(t, s, gesture.TripleBlink, "No")

	var gotGestures []string
	var gotPhrases []string
	a.RegisterGestureCallback(func(g string) { gotGestures = append(gotGestures, g) })
	a.RegisterPhraseCallback(func(g, p string) { gotPhrases = append(gotPhrases, p) })

	openEAR := detector.EAR(detector.OpenEyesFace())

	a.session.Tick(openEAR, gaze.Center, 900, a.lookupPhrase)
	if ev := tickBlink(a, 1000, 1100, gaze.Center); ev != nil {
		t.Fatalf("first blink dispatched early: %+v", ev)
	}
	if ev := tickBlink(a, 1150, 1250, gaze.Center); ev != nil {
		t.Fatalf("second blink dispatched early: %+v", ev)
	}

	ev := tickBlink(a, 1300, 1400, gaze.Center)
	if ev == nil {
		t.Fatal("third blink should dispatch immediately")
	}
	if ev.Gesture != gesture.TripleBlink || ev.Phrase != "No" {
		t.Fatalf("event = %+v, want tripleBlink / No", ev)
	}

	a.dispatchEvent(ev)

	if len(gotGestures) != 1 || gotGestures[0] != gesture.TripleBlink {
		t.Errorf("gesture callbacks = %v, want [tripleBlink]", gotGestures)
	}
	if len(gotPhrases) != 1 || gotPhrases[0] != "No" {
		t.Errorf("phrase callbacks = %v, want [No]", gotPhrases)
	}

	waitForSpoken(t, speaker, "No")
}

func TestApp_LongBlinkIgnoresGaze(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s, speaker := newTestApp(t)
	addPhrase(t, s, gesture.LongBlink, "Help")

	// A long closure with the gaze held hard right still dispatches the
	// bare long blink
	ev := tickBlink(a, 2000, 2800, gaze.LookRight)
	if ev == nil {
		t.Fatal("long blink should dispatch on reopen")
	}
	if ev.Gesture != gesture.LongBlink {
		t.Errorf("gesture = %s, want longBlink", ev.Gesture)
	}
	if ev.Phrase != "Help" {
		t.Errorf("phrase = %s, want Help", ev.Phrase)
	}

	a.dispatchEvent(ev)
	waitForSpoken(t, speaker, "Help")
}

func TestApp_UnmappedGestureWithheld(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _, speaker := newTestApp(t)

	openEAR := detector.EAR(detector.OpenEyesFace())

	if ev := tickBlink(a, 1000, 1100, gaze.Center); ev != nil {
		t.Fatalf("unexpected dispatch: %+v", ev)
	}

	// Idle past the settle window; with no mapping nothing may dispatch
	if ev := a.session.Tick(openEAR, gaze.Center, 1800, a.lookupPhrase); ev != nil {
		t.Fatalf("unmapped gesture dispatched: %+v", ev)
	}

	if got := a.session.LastGesture(); got != "" {
		t.Errorf("LastGesture() = %s, want empty (withheld dispatch must not arm cooldown)", got)
	}
	if spoken := speaker.Spoken(); len(spoken) != 0 {
		t.Errorf("Spoken() = %v, want empty", spoken)
	}
}

func TestApp_GazeSuffixSelectsPhrase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s, _ := newTestApp(t)
	addPhrase(t, s, "doubleBlink_lookLeft", "I am cold")

	openEAR := detector.EAR(detector.OpenEyesFace())

	tickBlink(a, 1000, 1100, gaze.LookLeft)
	tickBlink(a, 1200, 1300, gaze.LookLeft)

	// Double waits out the combine gap before it is final
	ev := a.session.Tick(openEAR, gaze.LookLeft, 1750, a.lookupPhrase)
	if ev == nil {
		t.Fatal("double blink with gaze should dispatch after the combine gap")
	}
	if ev.Gesture != "doubleBlink_lookLeft" || ev.Phrase != "I am cold" {
		t.Errorf("event = %+v, want doubleBlink_lookLeft / I am cold", ev)
	}
}

func TestApp_DisableClearsSession(t *testing.T) {
	a, _, _ := newTestApp(t)

	a.SetEnabled(true)
	tickBlink(a, 1000, 1100, gaze.Center)

	if len(a.session.History()) == 0 {
		t.Fatal("expected blink history before disable")
	}

	a.SetEnabled(false)

	if len(a.session.History()) != 0 {
		t.Error("disable should clear blink history")
	}
}

func TestApp_StopWaitsForPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s, _ := newTestApp(t)
	addPhrase(t, s, gesture.SingleBlink, "Yes")

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{&frame}, true))

	mock := detector.NewMockDetector()
	mock.SetFace(detector.OpenEyesFace())
	a.SetDetector(mock)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	a.SetEnabled(true)

	// Toggle detection while the pipeline ticks. The session is owned by
	// the pipeline goroutine while it runs; toggling and stopping from
	// here must never touch it concurrently (run with -race).
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 40; i++ {
			a.SetEnabled(i%2 == 0)
			time.Sleep(2 * time.Millisecond)
		}
	}()
	<-done

	a.Stop()

	if a.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
	if len(a.Session().History()) != 0 {
		t.Error("session history should be cleared after Stop")
	}
}

func TestApp_LoadCalibration(t *testing.T) {
	a, s, _ := newTestApp(t)

	// No stored record keeps the default
	if err := a.LoadCalibration(); err != nil {
		t.Fatalf("LoadCalibration() error = %v", err)
	}
	if got := a.Calibration(); got != gaze.DefaultCalibration() {
		t.Errorf("Calibration() = %+v, want default", got)
	}

	want := gaze.Calibration{CenterX: 400, CenterY: 300, DeadzoneRadius: 80, CapturedAtMs: 1234}
	if err := s.Calibration().Put(&want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := a.LoadCalibration(); err != nil {
		t.Fatalf("LoadCalibration() error = %v", err)
	}
	if got := a.Calibration(); got != want {
		t.Errorf("Calibration() = %+v, want %+v", got, want)
	}
}

func waitForSpoken(t *testing.T, speaker *speech.MockSpeaker, phrase string) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("phrase %q was never spoken, spoken = %v", phrase, speaker.Spoken())
		default:
		}

		spoken := speaker.Spoken()
		if len(spoken) > 0 && spoken[len(spoken)-1] == phrase {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}
