package control

// DefaultSmoothing is the default pointer smoothing factor. Lower is
// snappier, higher is smoother.
const DefaultSmoothing = 0.3

// PointerFilter converts normalized coordinates to clamped screen pixels
// and applies exponential smoothing against the previously emitted
// position.
type PointerFilter struct {
	width     int
	height    int
	smoothing float64

	lastX, lastY int
	hasLast      bool
}

// NewPointerFilter creates a filter for a screen of the given pixel
// dimensions.
func NewPointerFilter(width, height int, smoothing float64) *PointerFilter {
	f := &PointerFilter{width: width, height: height}
	f.SetSmoothing(smoothing)
	return f
}

// SetSmoothing sets the smoothing factor, clamped to [0,1].
func (f *PointerFilter) SetSmoothing(smoothing float64) {
	if smoothing < 0 {
		smoothing = 0
	}
	if smoothing > 1 {
		smoothing = 1
	}
	f.smoothing = smoothing
}

// Smoothing returns the current smoothing factor.
func (f *PointerFilter) Smoothing() float64 {
	return f.smoothing
}

// Filter maps a normalized (x, y) to screen pixels, clamps to the screen
// bounds, and blends toward the target from the previous output:
//
//	output = prev + (target - prev) * (1 - smoothing)
//
// The first call after construction or Reset emits the target directly.
func (f *PointerFilter) Filter(nx, ny float64) (int, int) {
	targetX := clampInt(int(nx*float64(f.width)), 0, f.width-1)
	targetY := clampInt(int(ny*float64(f.height)), 0, f.height-1)

	if f.hasLast {
		targetX = f.lastX + int(float64(targetX-f.lastX)*(1-f.smoothing))
		targetY = f.lastY + int(float64(targetY-f.lastY)*(1-f.smoothing))
	}

	f.lastX = targetX
	f.lastY = targetY
	f.hasLast = true

	return targetX, targetY
}

// Reset forgets the previous position so the next Filter call emits its
// target unsmoothed.
func (f *PointerFilter) Reset() {
	f.hasLast = false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
