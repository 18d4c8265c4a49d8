// Package notify sends desktop notifications when a gesture dispatches.
package notify

import (
	"github.com/gen2brain/beeep"
)

const appName = "Drishti"

// Notifier sends system notifications. Failures are swallowed; a missing
// notification daemon must never interrupt detection.
type Notifier struct {
	enabled bool
}

// New creates a Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled toggles notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Phrase announces a dispatched phrase.
func (n *Notifier) Phrase(gesture, phrase string) {
	if len(phrase) > 100 {
		phrase = phrase[:100] + "..."
	}
	n.notify(gesture, phrase)
}

// DetectionStarted announces that the camera pipeline is running.
func (n *Notifier) DetectionStarted() {
	n.notify("Detection started", "Watching for blink gestures")
}

// DetectionStopped announces that the camera pipeline is paused.
func (n *Notifier) DetectionStopped() {
	n.notify("Detection stopped", "Blink gestures are paused")
}

// Error surfaces a non-fatal pipeline problem.
func (n *Notifier) Error(msg string) {
	n.notify("Error", msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	if title != "" {
		_ = beeep.Notify(appName+": "+title, message, "")
	} else {
		_ = beeep.Notify(appName, message, "")
	}
}
