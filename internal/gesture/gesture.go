// Package gesture classifies hand landmarks into a closed set of control
// gestures and guards their activation with per-class cooldowns.
package gesture

// Class identifies one gesture in the closed vocabulary.
type Class string

const (
	// ClassNone means no gesture was recognized with enough confidence.
	ClassNone Class = "none"
	// ClassIndexExtended is a pointing hand, used for cursor control.
	ClassIndexExtended Class = "index_extended"
	// ClassThumbIndexPinch triggers a left click.
	ClassThumbIndexPinch Class = "thumb_index_pinch"
	// ClassThumbMiddlePinch triggers a right click.
	ClassThumbMiddlePinch Class = "thumb_middle_pinch"
	// ClassTwoFingerScroll is index and middle extended, hand moved vertically.
	ClassTwoFingerScroll Class = "two_finger_scroll"
	// ClassThreeFingerClose is index, middle and ring tips bunched together.
	ClassThreeFingerClose Class = "three_finger_close"
	// ClassThreeFingerSpread is index, middle and ring extended and apart.
	ClassThreeFingerSpread Class = "three_finger_spread"
	// ClassClosedFist is all four fingers curled, minimizes the window.
	ClassClosedFist Class = "closed_fist"
	// ClassOpenPalm is all four fingers extended, maximizes the window.
	ClassOpenPalm Class = "open_palm"
	// ClassThumbDown is the thumb tip below the wrist.
	ClassThumbDown Class = "thumb_down"
	// ClassThumbPinkyExtended is the shaka pose, used for volume control.
	ClassThumbPinkyExtended Class = "thumb_pinky_extended"
)

// Classes lists every recognizable class, excluding ClassNone.
var Classes = []Class{
	ClassIndexExtended,
	ClassThumbIndexPinch,
	ClassThumbMiddlePinch,
	ClassTwoFingerScroll,
	ClassThreeFingerClose,
	ClassThreeFingerSpread,
	ClassClosedFist,
	ClassOpenPalm,
	ClassThumbDown,
	ClassThumbPinkyExtended,
}

// Classification is the outcome of scoring one frame, or of smoothing a
// window of frames: a class and a confidence in [0,1].
type Classification struct {
	Class      Class   `json:"class"`
	Confidence float64 `json:"confidence"`
}

// none is the null classification used for invalid or low-confidence input.
var none = Classification{Class: ClassNone, Confidence: 0}
