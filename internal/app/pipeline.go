package app

import (
	"context"
	"log"
	"time"

	"github.com/ayusman/drishti/internal/detector"
	"github.com/ayusman/drishti/internal/gaze"
	"github.com/ayusman/drishti/internal/gesture"
)

// runPipeline is the detection loop. It reads frames at the idle rate until a
// face or motion appears, then raises the rate so blink onsets are sampled
// finely enough to measure closure durations.
//
// Per frame:
//  1. Motion check against the previous frame
//  2. Face mesh detection; a present face counts as activity
//  3. No face means the frame is skipped and blink state is left untouched
//  4. Eye aspect ratio from the eye landmarks
//  5. Gaze direction, when a tracker is available and confident
//  6. Session tick: edge detection, classification, dispatch gating
//  7. On dispatch: callbacks, speech, desktop notification
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastActivity := time.Now()

	// The session belongs to this goroutine while the pipeline runs. When
	// detection is toggled off the clear happens here, on the tick after
	// the toggle, never from the toggling goroutine.
	sessionDirty := false

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				if sessionDirty {
					a.session.Reset()
					sessionDirty = false
				}
				continue
			}
			sessionDirty = true

			a.mu.RLock()
			camera := a.camera
			faceDetector := a.detector
			tracker := a.tracker
			minGazeConf := a.config.Settings.Detection.MinGazeConfidence
			a.mu.RUnlock()

			frame, err := camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			face, err := faceDetector.Detect(frame)
			if err != nil {
				log.Printf("Error detecting face: %v", err)
				frame.Close()
				continue
			}

			if motionDetected || face != nil {
				lastActivity = time.Now()

				if !activeMode {
					activeMode = true
					camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastActivity) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if face == nil {
				frame.Close()
				continue
			}

			ear := detector.EAR(face)

			// Gaze direction, defaulting to center when the tracker is
			// absent or below the confidence floor
			dir := gaze.Center
			if tracker != nil {
				if pt, err := tracker.Predict(frame); err == nil && pt != nil && pt.Confidence >= minGazeConf {
					dir = gaze.Resolve(pt, a.Calibration())
				}
			}

			frame.Close()

			event := a.session.Tick(ear, dir, time.Now().UnixMilli(), a.lookupPhrase)
			if event == nil {
				continue
			}

			a.dispatchEvent(event)
		}
	}
}

// dispatchEvent fans a dispatched gesture out to callbacks, speech, and the
// desktop notifier.
func (a *App) dispatchEvent(event *gesture.Event) {
	log.Printf("Gesture dispatched: %s -> %q", event.Gesture, event.Phrase)

	a.mu.RLock()
	gestureCbs := a.gestureCallbacks
	phraseCbs := a.phraseCallbacks
	speaker := a.speaker
	a.mu.RUnlock()

	for _, cb := range gestureCbs {
		cb(event.Gesture)
	}
	for _, cb := range phraseCbs {
		cb(event.Gesture, event.Phrase)
	}

	a.notifier.Phrase(event.Gesture, event.Phrase)

	// Speech runs off the pipeline goroutine so a slow engine cannot stall
	// frame processing
	go func(phrase string) {
		if err := speaker.Speak(context.Background(), phrase); err != nil {
			log.Printf("Speech failed: %v", err)
		}
	}(event.Phrase)
}
