package detector

import "math"

// EAR estimation constants.
const (
	// NeutralEAR is the "eyes open" value returned when landmarks are
	// unusable. A single bad frame must look like open eyes so it cannot
	// push the blink state machine into a spurious closure.
	NeutralEAR = 0.3

	// MinEAR and MaxEAR clamp the combined ratio to absorb landmark jitter.
	MinEAR = 0.05
	MaxEAR = 0.8
)

// EAR computes the combined eye aspect ratio for a set of face landmarks.
// The ratio shrinks toward zero as the eyes close.
//
// Per eye: EAR = (v1 + v2) / (2 * h), where v1 and v2 are the vertical
// lid distances and h is the horizontal corner distance. The combined
// result is the mean of both eyes, clamped to [MinEAR, MaxEAR].
//
// A nil landmark set, non-finite coordinates, or a degenerate eye
// (h = 0) yield NeutralEAR for the affected eye. EAR never fails.
func EAR(face *FaceLandmarks) float64 {
	if face == nil {
		return NeutralEAR
	}

	left := eyeAspectRatio(face, leftEyeIndices)
	right := eyeAspectRatio(face, rightEyeIndices)

	return clampEAR((left + right) / 2)
}

// eyeAspectRatio computes the aspect ratio for a single eye given its six
// contour indices in EAR order.
func eyeAspectRatio(face *FaceLandmarks, idx [6]int) float64 {
	var pts [6]Point2D
	for i, j := range idx {
		p := face.Points[j]
		if !finite(p) {
			return NeutralEAR
		}
		pts[i] = p
	}

	v1 := distance2D(pts[1], pts[5])
	v2 := distance2D(pts[2], pts[4])
	h := distance2D(pts[0], pts[3])

	if h == 0 {
		return NeutralEAR
	}

	return (v1 + v2) / (2 * h)
}

// distance2D calculates the Euclidean distance between two 2D points.
func distance2D(a, b Point2D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func finite(p Point2D) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func clampEAR(v float64) float64 {
	if v < MinEAR {
		return MinEAR
	}
	if v > MaxEAR {
		return MaxEAR
	}
	return v
}
