// Package detector provides hand detection interfaces and the landmark
// model consumed by the gesture recognizer.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D is one tracked skeletal point. X and Y are normalized to the
// frame dimensions ([0,1]); Z is a relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected for one hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Landmarks returns the points as a slice. Downstream code that has to
// tolerate wrong-length input takes []Point3D rather than the fixed array.
func (h *HandLandmarks) Landmarks() []Point3D {
	if h == nil {
		return nil
	}
	return h.Points[:]
}

// PlanarDistance is the Euclidean distance between two landmarks in the
// x/y plane. Depth is ignored: gesture geometry is defined on the camera
// plane.
func PlanarDistance(a, b Point3D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Valid reports whether a landmark slice is a complete hand. Anything
// that is not exactly 21 points is treated as no hand at all.
func Valid(landmarks []Point3D) bool {
	return len(landmarks) == NumLandmarks
}
