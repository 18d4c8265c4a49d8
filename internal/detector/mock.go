package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	face *FaceLandmarks
	err  error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetFace sets the face landmarks that will be returned by Detect.
// Passing nil simulates "no face detected".
func (m *MockDetector) SetFace(face *FaceLandmarks) {
	m.face = face
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured face or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*FaceLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.face, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// FaceWithEAR returns a preset FaceLandmarks whose eye contours produce the
// given aspect ratio. Values around 0.3 read as open eyes, values below the
// closure threshold as closed.
//
// Both eyes are laid out with a 40px corner-to-corner width centered on a
// 640x480 frame; lid points are placed so that v1 = v2 = ear * h, which
// makes the computed ratio exactly the requested value before clamping.
func FaceWithEAR(ear float64) *FaceLandmarks {
	face := &FaceLandmarks{Score: 0.95}

	const h = 40.0
	lid := ear * h / 2 // half the vertical lid distance

	layoutEye(face, leftEyeIndices, 200, 220, h, lid)
	layoutEye(face, rightEyeIndices, 400, 220, h, lid)

	return face
}

// OpenEyesFace returns a face with comfortably open eyes.
func OpenEyesFace() *FaceLandmarks {
	return FaceWithEAR(0.3)
}

// ClosedEyesFace returns a face with eyes shut well below any plausible
// closure threshold.
func ClosedEyesFace() *FaceLandmarks {
	return FaceWithEAR(0.08)
}

// layoutEye writes a six-point eye contour centered at (cx, cy).
func layoutEye(face *FaceLandmarks, idx [6]int, cx, cy, width, lid float64) {
	half := width / 2

	face.Points[idx[0]] = Point2D{X: cx - half, Y: cy}       // corner
	face.Points[idx[1]] = Point2D{X: cx - half/3, Y: cy - lid} // upper lid
	face.Points[idx[2]] = Point2D{X: cx + half/3, Y: cy - lid} // upper lid
	face.Points[idx[3]] = Point2D{X: cx + half, Y: cy}       // corner
	face.Points[idx[4]] = Point2D{X: cx + half/3, Y: cy + lid} // lower lid
	face.Points[idx[5]] = Point2D{X: cx - half/3, Y: cy + lid} // lower lid
}
