package control

import (
	"errors"
	"sync"
	"time"
)

// ErrThrottled is returned by a throttled sink when a primitive fires
// again before its micro-cooldown has elapsed.
var ErrThrottled = errors.New("action throttled")

// primitive keys the per-operation cooldown table.
type primitive string

const (
	primMove     primitive = "move_pointer"
	primClick    primitive = "click"
	primScroll   primitive = "scroll"
	primMinimize primitive = "minimize_window"
	primMaximize primitive = "maximize_window"
	primClose    primitive = "close_window"
	primVolume   primitive = "volume"
)

// Micro-cooldown defaults. These are a safety backstop below the
// activation gate, not a substitute for it.
const (
	clickCooldown  = 100 * time.Millisecond
	scrollCooldown = 100 * time.Millisecond
	volumeCooldown = 100 * time.Millisecond
	windowCooldown = time.Second
)

// Throttled wraps a Sink with per-primitive micro-cooldowns. Pointer
// movement and drag button pairing are never throttled: movement is
// continuous and a suppressed button-up would leave the mouse stuck down.
type Throttled struct {
	sink Sink

	mu        sync.Mutex
	cooldowns map[primitive]time.Duration
	last      map[primitive]time.Time
	now       func() time.Time
}

// NewThrottled wraps sink with the default micro-cooldowns.
func NewThrottled(sink Sink) *Throttled {
	return &Throttled{
		sink: sink,
		cooldowns: map[primitive]time.Duration{
			primClick:    clickCooldown,
			primScroll:   scrollCooldown,
			primVolume:   volumeCooldown,
			primMinimize: windowCooldown,
			primMaximize: windowCooldown,
			primClose:    windowCooldown,
		},
		last: make(map[primitive]time.Time),
		now:  time.Now,
	}
}

// allow checks and, when permitted, records an activation for p.
func (t *Throttled) allow(p primitive) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cooldown := t.cooldowns[p]
	if cooldown <= 0 {
		return true
	}
	if last, ok := t.last[p]; ok && t.now().Sub(last) <= cooldown {
		return false
	}
	t.last[p] = t.now()
	return true
}

// Reset clears all cooldown bookkeeping.
func (t *Throttled) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = make(map[primitive]time.Time)
}

func (t *Throttled) MovePointer(x, y int) error {
	return t.sink.MovePointer(x, y)
}

func (t *Throttled) Click(button Button) error {
	if !t.allow(primClick) {
		return ErrThrottled
	}
	return t.sink.Click(button)
}

func (t *Throttled) Scroll(amount int) error {
	if !t.allow(primScroll) {
		return ErrThrottled
	}
	return t.sink.Scroll(amount)
}

func (t *Throttled) ButtonDown() error {
	return t.sink.ButtonDown()
}

func (t *Throttled) ButtonUp() error {
	return t.sink.ButtonUp()
}

func (t *Throttled) MinimizeWindow() error {
	if !t.allow(primMinimize) {
		return ErrThrottled
	}
	return t.sink.MinimizeWindow()
}

func (t *Throttled) MaximizeWindow() error {
	if !t.allow(primMaximize) {
		return ErrThrottled
	}
	return t.sink.MaximizeWindow()
}

func (t *Throttled) CloseWindow() error {
	if !t.allow(primClose) {
		return ErrThrottled
	}
	return t.sink.CloseWindow()
}

func (t *Throttled) Volume(direction VolumeDirection) error {
	if !t.allow(primVolume) {
		return ErrThrottled
	}
	return t.sink.Volume(direction)
}
