// Package app wires the camera, face mesh, blink engine, and phrase output
// into the running detection pipeline.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/drishti/internal/capture"
	"github.com/ayusman/drishti/internal/config"
	"github.com/ayusman/drishti/internal/detector"
	"github.com/ayusman/drishti/internal/gaze"
	"github.com/ayusman/drishti/internal/gesture"
	"github.com/ayusman/drishti/internal/notify"
	"github.com/ayusman/drishti/internal/speech"
	"github.com/ayusman/drishti/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no face is present.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a face is being tracked. Blink
	// onsets shorter than the frame interval are invisible, so this must
	// stay well above 1000/MinBlinkMs.
	ActiveFPS = 15
	// IdleTimeoutMs is how long the pipeline waits after the last face or
	// motion before dropping back to the idle rate.
	IdleTimeoutMs = 2000
)

// Config holds the application dependencies.
type Config struct {
	Store    *store.Store
	Settings *config.Config
}

// GestureCallback is invoked when a gesture is recognized, before dispatch.
type GestureCallback func(gesture string)

// PhraseCallback is invoked when a gesture passes the dispatch gate.
type PhraseCallback func(gesture, phrase string)

// App owns the detection pipeline and its state.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	tracker  gaze.Tracker
	session  *gesture.Session
	speaker  speech.Speaker
	notifier *notify.Notifier

	calibration gaze.Calibration

	gestureCallbacks []GestureCallback
	phraseCallbacks  []PhraseCallback

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates an App. The face mesh and gaze subprocesses are used when
// available; otherwise mock implementations keep the rest of the app usable.
func New(cfg Config) *App {
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}
	cfg.Settings = settings

	a := &App{
		config:      cfg,
		camera:      capture.NewCamera(settings.CameraID),
		motion:      capture.NewMotionDetector(settings.Detection.MotionThreshold),
		session:     gesture.NewSession(settings.Gesture()),
		speaker:     speech.NewCommandSpeaker(settings.Speech.Binary, settings.Speech.Args, settings.Speech.TimeoutMs),
		notifier:    notify.New(true),
		calibration: gaze.DefaultCalibration(),
	}

	if fm, err := detector.NewFaceMeshDetector(detector.DefaultConfig()); err == nil {
		a.detector = fm
		log.Println("Using MediaPipe face mesh detection")
	} else {
		log.Printf("Face mesh not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	if tr, err := gaze.NewScriptTracker(); err == nil {
		a.tracker = tr
		log.Println("Using gaze tracking subprocess")
	} else {
		log.Printf("Gaze tracking not available (%v), directions default to center", err)
		a.tracker = nil
	}

	return a
}

// SetEnabled enables or disables gesture detection. Disabling clears the
// blink history so a half-entered pattern cannot fire on re-enable. While the
// pipeline is running the session is only ever touched from its goroutine,
// so the clear happens on the pipeline's next tick rather than here.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled && !enabled && a.stopCh == nil {
		a.session.Reset()
	}
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector replaces the face detector implementation.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetTracker replaces the gaze tracker implementation. Pass nil to disable
// gaze modifiers entirely.
func (a *App) SetTracker(t gaze.Tracker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracker = t
}

// SetSpeaker replaces the speech output implementation.
func (a *App) SetSpeaker(s speech.Speaker) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speaker = s
}

// SetCamera replaces the capture source.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Calibration returns the gaze calibration currently in use.
func (a *App) Calibration() gaze.Calibration {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.calibration
}

// SetCalibration replaces the in-memory calibration. Persistence is the
// caller's concern.
func (a *App) SetCalibration(cal gaze.Calibration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calibration = cal
}

// LoadCalibration reads the stored calibration into memory. A missing record
// leaves the screen-center default in place.
func (a *App) LoadCalibration() error {
	if a.config.Store == nil {
		return nil
	}

	cal, err := a.config.Store.Calibration().Get()
	if err != nil {
		if err == store.ErrNotFound {
			return nil
		}
		return err
	}

	a.SetCalibration(*cal)
	log.Printf("Loaded gaze calibration (center %.0f,%.0f deadzone %.0f)", cal.CenterX, cal.CenterY, cal.DeadzoneRadius)
	return nil
}

// RegisterGestureCallback adds a callback fired on every recognized gesture.
func (a *App) RegisterGestureCallback(cb GestureCallback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gestureCallbacks = append(a.gestureCallbacks, cb)
}

// RegisterPhraseCallback adds a callback fired on every dispatched phrase.
func (a *App) RegisterPhraseCallback(cb PhraseCallback) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.phraseCallbacks = append(a.phraseCallbacks, cb)
}

// Session returns the blink session state machine.
func (a *App) Session() *gesture.Session {
	return a.session
}

// Camera returns the capture source.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the face detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Notifier returns the desktop notifier.
func (a *App) Notifier() *notify.Notifier {
	return a.notifier
}

// Start opens the camera and begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go func(stopCh chan struct{}) {
		defer a.wg.Done()
		a.runPipeline(stopCh)
	}(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the pipeline, clears session state, and releases resources. It
// waits for the pipeline goroutine to finish its in-flight tick before
// touching the session, which the goroutine owns while running.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh := a.stopCh
	a.stopCh = nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		a.wg.Wait()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()
	a.session.Reset()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
	if a.tracker != nil {
		if err := a.tracker.Close(); err != nil {
			log.Printf("Error closing gaze tracker: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// IsRunning reports whether the pipeline goroutine is active.
func (a *App) IsRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}

// lookupPhrase resolves a gesture identifier against the phrase store.
func (a *App) lookupPhrase(gestureID string) (string, bool) {
	if a.config.Store == nil {
		return "", false
	}
	return a.config.Store.Phrases().Lookup(gestureID)
}
