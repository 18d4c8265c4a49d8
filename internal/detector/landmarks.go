// Package detector provides face landmark detection interfaces and types for
// blink gesture recognition.
package detector

// Face mesh landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
//
// Only the twelve eye-contour indices below are consumed by this core;
// the full mesh is carried so the preview overlay and future features
// can use the remaining points.
const (
	// Left eye contour (subject's left).
	LeftEyeOuter  = 33
	LeftEyeUpper1 = 160
	LeftEyeUpper2 = 158
	LeftEyeInner  = 133
	LeftEyeLower2 = 153
	LeftEyeLower1 = 144

	// Right eye contour.
	RightEyeInner  = 362
	RightEyeUpper1 = 385
	RightEyeUpper2 = 387
	RightEyeOuter  = 263
	RightEyeLower2 = 373
	RightEyeLower1 = 380

	NumLandmarks = 468
)

// Point2D represents a 2D point in video frame coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FaceLandmarks represents the 468 face mesh landmarks detected by MediaPipe.
type FaceLandmarks struct {
	Points [NumLandmarks]Point2D `json:"points"`
	Score  float64               `json:"score"`
}

// leftEyeIndices and rightEyeIndices list each eye's contour in EAR order:
// corner, two upper-lid points, opposite corner, two lower-lid points.
var (
	leftEyeIndices  = [6]int{LeftEyeOuter, LeftEyeUpper1, LeftEyeUpper2, LeftEyeInner, LeftEyeLower2, LeftEyeLower1}
	rightEyeIndices = [6]int{RightEyeInner, RightEyeUpper1, RightEyeUpper2, RightEyeOuter, RightEyeLower2, RightEyeLower1}
)
