package control

import "errors"

// Drag state machine errors. Misuse is a failure result, never a panic.
var (
	ErrAlreadyDragging = errors.New("drag already in progress")
	ErrNotDragging     = errors.New("no drag in progress")
)

// Drag pairs button-down and button-up around a two-state machine so a
// press can never be issued twice or released twice.
type Drag struct {
	sink     Sink
	dragging bool
	startX   int
	startY   int
}

// NewDrag creates an idle drag machine issuing presses through sink.
func NewDrag(sink Sink) *Drag {
	return &Drag{sink: sink}
}

// Start records the current pointer position, issues button-down and
// transitions to dragging. Returns ErrAlreadyDragging if a drag is in
// progress.
func (d *Drag) Start(x, y int) error {
	if d.dragging {
		return ErrAlreadyDragging
	}
	if err := d.sink.ButtonDown(); err != nil {
		return err
	}
	d.dragging = true
	d.startX = x
	d.startY = y
	return nil
}

// End issues button-up and returns to idle, clearing the start position.
// Returns ErrNotDragging if no drag is in progress.
func (d *Drag) End() error {
	if !d.dragging {
		return ErrNotDragging
	}
	err := d.sink.ButtonUp()
	d.dragging = false
	d.startX = 0
	d.startY = 0
	return err
}

// Dragging reports whether a drag is in progress.
func (d *Drag) Dragging() bool {
	return d.dragging
}

// StartPosition returns the position recorded when the drag began; valid
// only while Dragging.
func (d *Drag) StartPosition() (x, y int) {
	return d.startX, d.startY
}

// Reset force-closes any drag in progress.
func (d *Drag) Reset() {
	if d.dragging {
		d.End()
	}
}
