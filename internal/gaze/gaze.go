// Package gaze resolves raw gaze estimates into symbolic directions using a
// calibrated screen center and deadzone.
package gaze

// Direction is a symbolic gaze direction relative to the calibrated center.
type Direction string

const (
	Center    Direction = "center"
	LookLeft  Direction = "lookLeft"
	LookRight Direction = "lookRight"
	LookUp    Direction = "lookUp"
	LookDown  Direction = "lookDown"
)

// Default calibration values used when no record has been captured.
// The geometric center assumes the capture default of 640x480.
const (
	DefaultCenterX  = 320.0
	DefaultCenterY  = 240.0
	DefaultDeadzone = 100.0
)

// Point is a raw gaze estimate in screen coordinates with the tracker's
// confidence for this frame.
type Point struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// Calibration is the persisted result of a calibration flow. It is replaced
// as a whole on recalibration, never field by field.
type Calibration struct {
	CenterX        float64 `json:"centerX"`
	CenterY        float64 `json:"centerY"`
	DeadzoneRadius float64 `json:"deadzoneRadius"`
	CapturedAtMs   int64   `json:"capturedAtTimestamp"`
}

// DefaultCalibration returns the fallback used when no record exists:
// geometric viewport center with the default deadzone.
func DefaultCalibration() Calibration {
	return Calibration{
		CenterX:        DefaultCenterX,
		CenterY:        DefaultCenterY,
		DeadzoneRadius: DefaultDeadzone,
	}
}

// Resolve maps a raw gaze point onto a symbolic direction.
//
// Within the deadzone on both axes the direction is Center. Outside it the
// dominant axis wins, with horizontal taking the tie. A nil point (tracker
// not ready or low confidence) resolves to Center so blink-only gestures
// stay usable without gaze.
func Resolve(pt *Point, cal Calibration) Direction {
	if pt == nil {
		return Center
	}

	dx := pt.X - cal.CenterX
	dy := pt.Y - cal.CenterY

	if abs(dx) <= cal.DeadzoneRadius && abs(dy) <= cal.DeadzoneRadius {
		return Center
	}

	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return LookLeft
		}
		return LookRight
	}

	if dy < 0 {
		return LookUp
	}
	return LookDown
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
