package control

import (
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Scroll tuning: vertical hand displacement below the dead band produces
// no scrolling; beyond it the displacement is scaled into wheel ticks.
const (
	scrollDeadBand = 0.02
	scrollScale    = 150
)

// Volume zones: the hand's vertical position selects the direction, with
// a dead zone in the middle of the frame.
const (
	volumeUpBelow   = 0.4
	volumeDownAbove = 0.6
)

// Event is the record announced to the observer for every discrete
// action that fires.
type Event struct {
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	Gesture   gesture.Class `json:"gesture"`
}

// Dispatcher turns stabilized classifications into sink primitives,
// applying the per-gesture business rules: cooldown gating for discrete
// actions, scroll-origin tracking, volume zones and the control-zone
// remap for pointer movement.
//
// Dispatch runs on the pipeline goroutine; the margin and smoothing
// setters may be called from the UI, so state sits behind a mutex.
type Dispatcher struct {
	mu      sync.Mutex
	gate    *gesture.Gate
	sink    Sink
	pointer *PointerFilter
	drag    *Drag

	margin float64

	scrollOriginY   float64
	hasScrollOrigin bool

	actions  int
	onAction func(Event)
}

// NewDispatcher wires a dispatcher to its gate, sink and pointer filter.
func NewDispatcher(gate *gesture.Gate, sink Sink, pointer *PointerFilter) *Dispatcher {
	return &Dispatcher{
		gate:    gate,
		sink:    sink,
		pointer: pointer,
		drag:    NewDrag(sink),
		margin:  DefaultControlZoneMargin,
	}
}

// OnAction registers the observer notified of every discrete action.
func (d *Dispatcher) OnAction(fn func(Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onAction = fn
}

// SetControlZoneMargin sets the control-zone margin; values outside
// [0, 0.5) are ignored.
func (d *Dispatcher) SetControlZoneMargin(margin float64) {
	if margin < 0 || margin >= 0.5 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.margin = margin
}

// ControlZoneMargin returns the active margin.
func (d *Dispatcher) ControlZoneMargin() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.margin
}

// SetSmoothing adjusts the pointer filter's smoothing factor.
func (d *Dispatcher) SetSmoothing(smoothing float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pointer.SetSmoothing(smoothing)
}

// ActionCount returns the number of discrete actions fired this session.
func (d *Dispatcher) ActionCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.actions
}

// Drag exposes the drag state machine.
func (d *Dispatcher) Drag() *Drag {
	return d.drag
}

// Reset clears the pointer filter, force-closes any drag and forgets the
// scroll origin. The action counter survives: it is a session metric.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pointer.Reset()
	d.drag.Reset()
	d.hasScrollOrigin = false
}

// Dispatch executes the action bound to the classification, if any.
// Returns true when an action fired. With the emergency stop latched
// nothing runs, pointer movement included.
func (d *Dispatcher) Dispatch(cls gesture.Classification, landmarks []detector.Point3D) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gate.EmergencyStopped() {
		return false
	}

	// The scroll origin is only meaningful while the scroll gesture is
	// held; any other class discards it.
	if cls.Class != gesture.ClassTwoFingerScroll {
		d.hasScrollOrigin = false
	}

	switch cls.Class {
	case gesture.ClassIndexExtended:
		return d.movePointer(landmarks)

	case gesture.ClassThumbIndexPinch:
		return d.gatedAction(cls.Class, "Left Click", func() error {
			return d.sink.Click(ButtonLeft)
		})

	case gesture.ClassThumbMiddlePinch:
		return d.gatedAction(cls.Class, "Right Click", func() error {
			return d.sink.Click(ButtonRight)
		})

	case gesture.ClassTwoFingerScroll:
		return d.scroll(landmarks)

	case gesture.ClassClosedFist:
		return d.gatedAction(cls.Class, "Minimize Window", d.sink.MinimizeWindow)

	case gesture.ClassOpenPalm:
		return d.gatedAction(cls.Class, "Maximize Window", d.sink.MaximizeWindow)

	case gesture.ClassThumbPinkyExtended:
		return d.volume(landmarks)
	}

	return false
}

// movePointer remaps the index fingertip through the control zone and
// forwards it to the pointer filter and sink. Continuous, never gated.
func (d *Dispatcher) movePointer(landmarks []detector.Point3D) bool {
	x, y, ok := cursorPosition(landmarks)
	if !ok {
		return false
	}

	nx := MapToControlZone(x, d.margin)
	ny := MapToControlZone(y, d.margin)
	px, py := d.pointer.Filter(nx, ny)

	if err := d.sink.MovePointer(px, py); err != nil {
		log.Printf("move pointer: %v", err)
		return false
	}
	return true
}

// scroll converts vertical displacement from the scroll origin into
// wheel ticks. The first frame of a scroll gesture only records the
// origin.
func (d *Dispatcher) scroll(landmarks []detector.Point3D) bool {
	_, y, ok := cursorPosition(landmarks)
	if !ok {
		return false
	}

	if !d.hasScrollOrigin {
		d.scrollOriginY = y
		d.hasScrollOrigin = true
		return false
	}

	delta := y - d.scrollOriginY
	if delta > -scrollDeadBand && delta < scrollDeadBand {
		return false
	}

	amount := int(math.Round(-delta * scrollScale))
	if err := d.sink.Scroll(amount); err != nil {
		// Held gestures hit the micro-cooldown every tick; only real
		// sink failures are worth a log line.
		if !errors.Is(err, ErrThrottled) {
			log.Printf("scroll: %v", err)
		}
		return false
	}
	return true
}

// volume picks a direction from the hand's vertical zone; the middle band
// is a dead zone.
func (d *Dispatcher) volume(landmarks []detector.Point3D) bool {
	_, y, ok := cursorPosition(landmarks)
	if !ok {
		return false
	}

	var direction VolumeDirection
	switch {
	case y < volumeUpBelow:
		direction = VolumeUp
	case y > volumeDownAbove:
		direction = VolumeDown
	default:
		return false
	}

	if err := d.sink.Volume(direction); err != nil {
		if !errors.Is(err, ErrThrottled) {
			log.Printf("volume %s: %v", direction, err)
		}
		return false
	}

	d.record("Volume "+string(direction), gesture.ClassThumbPinkyExtended)
	return true
}

// gatedAction runs a cooldown-gated discrete action: check the gate, run
// the primitive, record the activation only on success.
func (d *Dispatcher) gatedAction(class gesture.Class, name string, fn func() error) bool {
	if !d.gate.CanActivate(class) {
		return false
	}
	if err := fn(); err != nil {
		if !errors.Is(err, ErrThrottled) {
			log.Printf("%s: %v", name, err)
		}
		return false
	}
	d.gate.Activate(class)
	d.record(name, class)
	return true
}

// record increments the action counter and announces the event.
func (d *Dispatcher) record(name string, class gesture.Class) {
	d.actions++
	if d.onAction != nil {
		d.onAction(Event{
			Timestamp: time.Now(),
			Action:    name,
			Gesture:   class,
		})
	}
}

// cursorPosition extracts the index fingertip, the point tracked for
// cursor, scroll and volume control.
func cursorPosition(landmarks []detector.Point3D) (x, y float64, ok bool) {
	if len(landmarks) <= detector.IndexTip {
		return 0, 0, false
	}
	tip := landmarks[detector.IndexTip]
	return tip.X, tip.Y, true
}
