package gaze

import "gocv.io/x/gocv"

// MockTracker is a test implementation of the Tracker interface.
type MockTracker struct {
	point *Point
	err   error
}

// NewMockTracker creates a new MockTracker instance.
func NewMockTracker() *MockTracker {
	return &MockTracker{}
}

// SetPoint sets the estimate that will be returned by Predict.
// Passing nil simulates "no estimate this frame".
func (m *MockTracker) SetPoint(pt *Point) {
	m.point = pt
}

// SetError sets the error that will be returned by Predict.
func (m *MockTracker) SetError(err error) {
	m.err = err
}

// Predict returns the pre-configured point or error.
func (m *MockTracker) Predict(frame *gocv.Mat) (*Point, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.point, nil
}

// Close is a no-op for the mock tracker.
func (m *MockTracker) Close() error {
	return nil
}
