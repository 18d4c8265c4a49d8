package speech

import (
	"context"
	"sync"
)

// MockSpeaker is a test implementation of the Speaker interface that records
// every phrase it is asked to speak.
type MockSpeaker struct {
	mu     sync.Mutex
	spoken []string
	err    error
}

// NewMockSpeaker creates a new MockSpeaker instance.
func NewMockSpeaker() *MockSpeaker {
	return &MockSpeaker{}
}

// SetError sets the error that will be returned by Speak.
func (m *MockSpeaker) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Speak records the phrase.
func (m *MockSpeaker) Speak(ctx context.Context, phrase string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.spoken = append(m.spoken, phrase)
	return nil
}

// Spoken returns a copy of the recorded phrases in order.
func (m *MockSpeaker) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.spoken))
	copy(out, m.spoken)
	return out
}
