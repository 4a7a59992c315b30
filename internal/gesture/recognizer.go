package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// Detection thresholds. Pinch and finger-extension thresholds are
// configurable; the rest are fixed geometry of the vocabulary.
const (
	// DefaultPinchThreshold is the planar tip distance below which two
	// fingers count as pinched.
	DefaultPinchThreshold = 0.05
	// DefaultExtendedThreshold is the tip/MCP wrist-distance ratio above
	// which a finger counts as extended.
	DefaultExtendedThreshold = 0.6
	// confidenceFloor is the minimum per-frame confidence; anything below
	// resolves to ClassNone.
	confidenceFloor = 0.5
	// historySize is the temporal voting window, in frames.
	historySize = 5

	threeCloseThreshold = 0.08
	threeSpreadMin      = 0.1
	thumbPinkyMinReach  = 0.15
	thumbDownSpan       = 0.3
	extensionEpsilon    = 1e-6
)

// Config holds the recognizer tunables.
type Config struct {
	// PinchThreshold is the planar distance for pinch detection.
	PinchThreshold float64
	// ExtendedThreshold is the ratio for the finger extension test.
	ExtendedThreshold float64
}

// DefaultRecognizerConfig returns the stock thresholds.
func DefaultRecognizerConfig() Config {
	return Config{
		PinchThreshold:    DefaultPinchThreshold,
		ExtendedThreshold: DefaultExtendedThreshold,
	}
}

// Recognizer scores hand landmarks against the gesture vocabulary and
// smooths the per-frame decision over a short history window.
//
// It is not safe for concurrent use; the pipeline goroutine owns it.
type Recognizer struct {
	cfg     Config
	history []Classification // ring, oldest first, at most historySize
}

// NewRecognizer creates a Recognizer with the given thresholds. Zero
// thresholds fall back to the defaults.
func NewRecognizer(cfg Config) *Recognizer {
	if cfg.PinchThreshold <= 0 {
		cfg.PinchThreshold = DefaultPinchThreshold
	}
	if cfg.ExtendedThreshold <= 0 {
		cfg.ExtendedThreshold = DefaultExtendedThreshold
	}
	return &Recognizer{
		cfg:     cfg,
		history: make([]Classification, 0, historySize),
	}
}

// Recognize scores one frame of landmarks and returns the smoothed
// classification. Anything that is not exactly 21 landmarks yields
// (ClassNone, 0) without touching the history.
func (r *Recognizer) Recognize(landmarks []detector.Point3D) Classification {
	if !detector.Valid(landmarks) {
		return none
	}

	frame := r.scoreFrame(landmarks)
	r.push(frame)
	return r.smoothed()
}

// Reset clears the history window.
func (r *Recognizer) Reset() {
	r.history = r.history[:0]
}

// scoreFrame runs every detector and arg-maxes the result. Each detector
// is independent: a failure in one is a zero score for that class only.
func (r *Recognizer) scoreFrame(lm []detector.Point3D) Classification {
	scores := map[Class]float64{
		ClassThumbIndexPinch:    r.scorePinch(lm, detector.ThumbTip, detector.IndexTip),
		ClassThumbMiddlePinch:   r.scorePinch(lm, detector.ThumbTip, detector.MiddleTip),
		ClassClosedFist:         r.scoreClosedFist(lm),
		ClassOpenPalm:           r.scoreOpenPalm(lm),
		ClassTwoFingerScroll:    r.scoreTwoFingerScroll(lm),
		ClassThreeFingerClose:   r.scoreThreeFingerClose(lm),
		ClassThreeFingerSpread:  r.scoreThreeFingerSpread(lm),
		ClassThumbDown:          r.scoreThumbDown(lm),
		ClassThumbPinkyExtended: r.scoreThumbPinky(lm),
		ClassIndexExtended:      r.scoreIndexExtended(lm),
	}

	best := none
	for _, class := range Classes {
		if s := scores[class]; s > best.Confidence {
			best = Classification{Class: class, Confidence: s}
		}
	}

	if best.Confidence < confidenceFloor {
		return none
	}
	return best
}

// push appends a per-frame classification, evicting the oldest entry once
// the window is full.
func (r *Recognizer) push(c Classification) {
	if len(r.history) >= historySize {
		copy(r.history, r.history[1:])
		r.history = r.history[:historySize-1]
	}
	r.history = append(r.history, c)
}

// smoothed votes over the history window: each class is scored as
// occurrence count times average confidence, and the winner's confidence
// is its average. On equal scores the class observed most recently wins;
// iterating oldest to newest with a >= comparison encodes that rule.
func (r *Recognizer) smoothed() Classification {
	if len(r.history) == 0 {
		return none
	}

	type tally struct {
		sum   float64
		count int
	}
	tallies := make(map[Class]*tally)
	for _, c := range r.history {
		t := tallies[c.Class]
		if t == nil {
			t = &tally{}
			tallies[c.Class] = t
		}
		t.sum += c.Confidence
		t.count++
	}

	best := none
	bestScore := 0.0
	for i := range r.history {
		class := r.history[i].Class
		t := tallies[class]
		avg := t.sum / float64(t.count)
		score := float64(t.count) * avg
		if score >= bestScore {
			bestScore = score
			best = Classification{Class: class, Confidence: avg}
		}
	}
	return best
}

// fingerExtended applies the extension test: the tip must sit farther from
// the wrist than the base knuckle by more than the configured ratio.
func (r *Recognizer) fingerExtended(lm []detector.Point3D, tip, mcp int) bool {
	wrist := lm[detector.Wrist]
	tipDist := detector.PlanarDistance(lm[tip], wrist)
	mcpDist := detector.PlanarDistance(lm[mcp], wrist)
	return tipDist/(mcpDist+extensionEpsilon) > r.cfg.ExtendedThreshold
}

func (r *Recognizer) fingerStates(lm []detector.Point3D) (index, middle, ring, pinky bool) {
	index = r.fingerExtended(lm, detector.IndexTip, detector.IndexMCP)
	middle = r.fingerExtended(lm, detector.MiddleTip, detector.MiddleMCP)
	ring = r.fingerExtended(lm, detector.RingTip, detector.RingMCP)
	pinky = r.fingerExtended(lm, detector.PinkyTip, detector.PinkyMCP)
	return
}

// scorePinch scores the planar closeness of two fingertips. Confidence
// falls linearly from 1 at zero distance to 0 at the pinch threshold.
func (r *Recognizer) scorePinch(lm []detector.Point3D, a, b int) float64 {
	dist := detector.PlanarDistance(lm[a], lm[b])
	if dist >= r.cfg.PinchThreshold {
		return 0
	}
	return clamp01(1 - dist/r.cfg.PinchThreshold)
}

// scoreClosedFist counts curled fingers; confidence only when all four
// are closed.
func (r *Recognizer) scoreClosedFist(lm []detector.Point3D) float64 {
	index, middle, ring, pinky := r.fingerStates(lm)
	closed := 0
	for _, extended := range []bool{index, middle, ring, pinky} {
		if !extended {
			closed++
		}
	}
	confidence := float64(closed) / 4.0
	if confidence > 0.75 {
		return confidence
	}
	return 0
}

// scoreOpenPalm is the mirror of scoreClosedFist.
func (r *Recognizer) scoreOpenPalm(lm []detector.Point3D) float64 {
	index, middle, ring, pinky := r.fingerStates(lm)
	extended := 0
	for _, e := range []bool{index, middle, ring, pinky} {
		if e {
			extended++
		}
	}
	confidence := float64(extended) / 4.0
	if confidence > 0.75 {
		return confidence
	}
	return 0
}

func (r *Recognizer) scoreIndexExtended(lm []detector.Point3D) float64 {
	index, middle, ring, pinky := r.fingerStates(lm)
	if index && !middle && !ring && !pinky {
		return 0.9
	}
	if index {
		// Pointing, but not cleanly.
		return 0.5
	}
	return 0
}

func (r *Recognizer) scoreTwoFingerScroll(lm []detector.Point3D) float64 {
	index, middle, ring, pinky := r.fingerStates(lm)
	if index && middle && !ring && !pinky {
		return 0.9
	}
	return 0
}

// scoreThreeFingerClose looks for index, middle and ring tips bunched
// within the close threshold of each other.
func (r *Recognizer) scoreThreeFingerClose(lm []detector.Point3D) float64 {
	indexMiddle := detector.PlanarDistance(lm[detector.IndexTip], lm[detector.MiddleTip])
	middleRing := detector.PlanarDistance(lm[detector.MiddleTip], lm[detector.RingTip])

	if indexMiddle >= threeCloseThreshold || middleRing >= threeCloseThreshold {
		return 0
	}
	return clamp01(1 - (indexMiddle+middleRing)/(2*threeCloseThreshold))
}

// scoreThreeFingerSpread requires index, middle and ring extended with
// both tip gaps wider than the spread minimum.
func (r *Recognizer) scoreThreeFingerSpread(lm []detector.Point3D) float64 {
	index, middle, ring, _ := r.fingerStates(lm)
	if !index || !middle || !ring {
		return 0
	}

	indexMiddle := detector.PlanarDistance(lm[detector.IndexTip], lm[detector.MiddleTip])
	middleRing := detector.PlanarDistance(lm[detector.MiddleTip], lm[detector.RingTip])

	if indexMiddle > threeSpreadMin && middleRing > threeSpreadMin {
		return 0.8
	}
	return 0
}

// scoreThumbDown scores the thumb tip sitting below the wrist; y grows
// downward in image coordinates.
func (r *Recognizer) scoreThumbDown(lm []detector.Point3D) float64 {
	drop := lm[detector.ThumbTip].Y - lm[detector.Wrist].Y
	if drop <= 0 {
		return 0
	}
	return math.Min(1, drop/thumbDownSpan)
}

// scoreThumbPinky is the shaka pose: thumb and pinky reaching away from
// the wrist while the three middle fingers stay curled.
func (r *Recognizer) scoreThumbPinky(lm []detector.Point3D) float64 {
	wrist := lm[detector.Wrist]
	thumbReach := detector.PlanarDistance(lm[detector.ThumbTip], wrist)
	pinkyReach := detector.PlanarDistance(lm[detector.PinkyTip], wrist)

	index, middle, ring, _ := r.fingerStates(lm)
	if thumbReach > thumbPinkyMinReach && pinkyReach > thumbPinkyMinReach &&
		!index && !middle && !ring {
		return 0.85
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
