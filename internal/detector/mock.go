package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// curledHandLandmarks is the shared fixture base: wrist low in the frame,
// all four fingers curled back toward it and the thumb resting against
// the palm. Every tip sits at roughly half its knuckle's wrist distance,
// well under the extension ratio.
func curledHandLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.9, Z: 0.0}

	lm.Points[ThumbCMC] = Point3D{X: 0.46, Y: 0.85, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.44, Y: 0.82, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.42, Y: 0.8, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.41, Y: 0.79, Z: 0.0}

	lm.Points[IndexMCP] = Point3D{X: 0.46, Y: 0.7, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.74, Z: -0.02}
	lm.Points[IndexDIP] = Point3D{X: 0.47, Y: 0.78, Z: -0.03}
	lm.Points[IndexTip] = Point3D{X: 0.48, Y: 0.8, Z: -0.02}

	lm.Points[MiddleMCP] = Point3D{X: 0.5, Y: 0.69, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.5, Y: 0.73, Z: -0.02}
	lm.Points[MiddleDIP] = Point3D{X: 0.5, Y: 0.77, Z: -0.03}
	lm.Points[MiddleTip] = Point3D{X: 0.5, Y: 0.8, Z: -0.02}

	lm.Points[RingMCP] = Point3D{X: 0.54, Y: 0.7, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.54, Y: 0.74, Z: -0.02}
	lm.Points[RingDIP] = Point3D{X: 0.53, Y: 0.78, Z: -0.03}
	lm.Points[RingTip] = Point3D{X: 0.53, Y: 0.81, Z: -0.02}

	lm.Points[PinkyMCP] = Point3D{X: 0.58, Y: 0.72, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.57, Y: 0.76, Z: -0.02}
	lm.Points[PinkyDIP] = Point3D{X: 0.57, Y: 0.8, Z: -0.03}
	lm.Points[PinkyTip] = Point3D{X: 0.56, Y: 0.83, Z: -0.02}

	return lm
}

// PointingHandLandmarks is a clean index-extended pose: index tip high in
// the frame at (0.5, 0.3), everything else curled.
func PointingHandLandmarks() HandLandmarks {
	lm := curledHandLandmarks()

	lm.Points[IndexMCP] = Point3D{X: 0.5, Y: 0.7, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.49, Y: 0.57, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.5, Y: 0.43, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.5, Y: 0.3, Z: 0.0}

	return lm
}

// PinchHandLandmarks is a thumb-index pinch with the two tips coinciding
// exactly in the plane, which scores confidence 1.0.
func PinchHandLandmarks() HandLandmarks {
	lm := curledHandLandmarks()

	lm.Points[IndexMCP] = Point3D{X: 0.5, Y: 0.7, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.5, Y: 0.62, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.5, Y: 0.55, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.5, Y: 0.5, Z: 0.0}

	lm.Points[ThumbCMC] = Point3D{X: 0.46, Y: 0.8, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.44, Y: 0.7, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.46, Y: 0.6, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.5, Y: 0.5, Z: 0.01}

	return lm
}

// MiddlePinchHandLandmarks is a thumb-middle pinch, tips coinciding.
func MiddlePinchHandLandmarks() HandLandmarks {
	lm := curledHandLandmarks()

	lm.Points[MiddlePIP] = Point3D{X: 0.5, Y: 0.62, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.51, Y: 0.57, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.52, Y: 0.52, Z: 0.0}

	lm.Points[ThumbMCP] = Point3D{X: 0.45, Y: 0.7, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.47, Y: 0.6, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.52, Y: 0.52, Z: 0.01}

	return lm
}

// FistHandLandmarks is the curled base itself: all four fingers closed.
func FistHandLandmarks() HandLandmarks {
	return curledHandLandmarks()
}

// PalmHandLandmarks is an open palm, all four fingers extended and spread.
func PalmHandLandmarks() HandLandmarks {
	lm := curledHandLandmarks()

	lm.Points[ThumbMCP] = Point3D{X: 0.38, Y: 0.78, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.31, Y: 0.69, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.25, Y: 0.6, Z: 0.0}

	lm.Points[IndexMCP] = Point3D{X: 0.42, Y: 0.68, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.4, Y: 0.55, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.39, Y: 0.42, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.38, Y: 0.3, Z: 0.0}

	lm.Points[MiddleMCP] = Point3D{X: 0.48, Y: 0.66, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.49, Y: 0.52, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.5, Y: 0.38, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.5, Y: 0.25, Z: 0.0}

	lm.Points[RingMCP] = Point3D{X: 0.54, Y: 0.68, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: 0.6, Y: 0.42, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: 0.62, Y: 0.3, Z: 0.0}

	lm.Points[PinkyMCP] = Point3D{X: 0.6, Y: 0.72, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.64, Y: 0.63, Z: 0.0}
	lm.Points[PinkyDIP] = Point3D{X: 0.68, Y: 0.54, Z: 0.0}
	lm.Points[PinkyTip] = Point3D{X: 0.72, Y: 0.45, Z: 0.0}

	return lm
}

// ScrollHandLandmarks is the two-finger scroll pose: index and middle
// extended, ring and pinky curled.
func ScrollHandLandmarks() HandLandmarks {
	lm := curledHandLandmarks()

	lm.Points[IndexMCP] = Point3D{X: 0.47, Y: 0.7, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.46, Y: 0.58, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.45, Y: 0.46, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.45, Y: 0.35, Z: 0.0}

	lm.Points[MiddlePIP] = Point3D{X: 0.52, Y: 0.57, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.54, Y: 0.45, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.55, Y: 0.33, Z: 0.0}

	return lm
}

// ThumbPinkyHandLandmarks is the shaka pose: thumb and pinky reaching
// away from the wrist, index/middle/ring curled.
func ThumbPinkyHandLandmarks() HandLandmarks {
	lm := curledHandLandmarks()

	lm.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.85, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.4, Y: 0.82, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.34, Y: 0.78, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.3, Y: 0.75, Z: 0.0}

	lm.Points[PinkyMCP] = Point3D{X: 0.6, Y: 0.74, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.64, Y: 0.73, Z: 0.0}
	lm.Points[PinkyDIP] = Point3D{X: 0.67, Y: 0.71, Z: 0.0}
	lm.Points[PinkyTip] = Point3D{X: 0.7, Y: 0.7, Z: 0.0}

	return lm
}

// ThumbDownHandLandmarks is a fist rotated thumb-down: the thumb tip sits
// a full 0.3 below the wrist, the maximum-confidence drop.
func ThumbDownHandLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.5, Z: 0.0}

	lm.Points[ThumbCMC] = Point3D{X: 0.48, Y: 0.58, Z: 0.0}
	lm.Points[ThumbMCP] = Point3D{X: 0.48, Y: 0.65, Z: 0.0}
	lm.Points[ThumbIP] = Point3D{X: 0.48, Y: 0.73, Z: 0.0}
	lm.Points[ThumbTip] = Point3D{X: 0.48, Y: 0.8, Z: 0.0}

	lm.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.28, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.43, Y: 0.38, Z: -0.02}
	lm.Points[IndexDIP] = Point3D{X: 0.42, Y: 0.5, Z: -0.03}
	lm.Points[IndexTip] = Point3D{X: 0.42, Y: 0.6, Z: -0.02}

	lm.Points[MiddleMCP] = Point3D{X: 0.5, Y: 0.27, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.38, Z: -0.02}
	lm.Points[MiddleDIP] = Point3D{X: 0.52, Y: 0.5, Z: -0.03}
	lm.Points[MiddleTip] = Point3D{X: 0.52, Y: 0.62, Z: -0.02}

	lm.Points[RingMCP] = Point3D{X: 0.56, Y: 0.29, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.57, Y: 0.39, Z: -0.02}
	lm.Points[RingDIP] = Point3D{X: 0.57, Y: 0.49, Z: -0.03}
	lm.Points[RingTip] = Point3D{X: 0.57, Y: 0.58, Z: -0.02}

	// Pinky half-open so the pose is not also a perfect fist.
	lm.Points[PinkyMCP] = Point3D{X: 0.62, Y: 0.32, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.61, Y: 0.35, Z: -0.01}
	lm.Points[PinkyDIP] = Point3D{X: 0.6, Y: 0.38, Z: -0.01}
	lm.Points[PinkyTip] = Point3D{X: 0.6, Y: 0.41, Z: -0.01}

	return lm
}

// ThreeFingerCloseHandLandmarks has index, middle and ring tips bunched
// within 0.03 of each other.
func ThreeFingerCloseHandLandmarks() HandLandmarks {
	lm := curledHandLandmarks()

	lm.Points[IndexMCP] = Point3D{X: 0.45, Y: 0.7, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.47, Y: 0.6, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.48, Y: 0.5, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.49, Y: 0.4, Z: 0.0}

	lm.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.6, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.52, Y: 0.5, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.52, Y: 0.4, Z: 0.0}

	lm.Points[RingMCP] = Point3D{X: 0.55, Y: 0.7, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.55, Y: 0.6, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: 0.55, Y: 0.5, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: 0.55, Y: 0.4, Z: 0.0}

	return lm
}

// ThreeFingerSpreadHandLandmarks has index, middle and ring extended with
// tip gaps wider than 0.1.
func ThreeFingerSpreadHandLandmarks() HandLandmarks {
	lm := curledHandLandmarks()

	lm.Points[IndexMCP] = Point3D{X: 0.43, Y: 0.69, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.41, Y: 0.58, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.38, Y: 0.46, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.36, Y: 0.35, Z: 0.0}

	lm.Points[MiddleMCP] = Point3D{X: 0.5, Y: 0.67, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.5, Y: 0.55, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.5, Y: 0.42, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.5, Y: 0.3, Z: 0.0}

	lm.Points[RingMCP] = Point3D{X: 0.56, Y: 0.69, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.59, Y: 0.58, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: 0.62, Y: 0.46, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: 0.64, Y: 0.35, Z: 0.0}

	return lm
}
