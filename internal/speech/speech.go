// Package speech provides the text-to-speech output used when a gesture's
// phrase is dispatched.
package speech

import "context"

// Speaker defines the interface for text-to-speech implementations.
// Speak is fire-and-forget from the pipeline's perspective: the return value
// is only logged, never fed back into detection.
type Speaker interface {
	// Speak renders the phrase audibly. It blocks until the utterance
	// finishes or the context is done.
	Speak(ctx context.Context, phrase string) error
}
