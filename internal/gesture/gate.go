package gesture

import (
	"sync"
	"time"
)

// DefaultCooldown is the minimum time between two activations of the same
// gesture class.
const DefaultCooldown = 500 * time.Millisecond

// Gate enforces per-class activation cooldowns and carries the
// emergency-stop latch. It is purely a guard: callers check CanActivate
// and, having acted, record the activation with Activate.
//
// The gate may be consulted from the pipeline goroutine while the
// emergency stop is toggled from the UI, so all state sits behind a mutex.
type Gate struct {
	mu       sync.Mutex
	cooldown time.Duration
	last     map[Class]time.Time
	stopped  bool
	now      func() time.Time
}

// NewGate creates a Gate with the given cooldown. A non-positive cooldown
// falls back to DefaultCooldown.
func NewGate(cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{
		cooldown: cooldown,
		last:     make(map[Class]time.Time),
		now:      time.Now,
	}
}

// CanActivate reports whether the class may fire: never while the
// emergency stop is set, never for ClassNone, and not until the cooldown
// since its own last activation has fully elapsed.
func (g *Gate) CanActivate(class Class) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped || class == ClassNone {
		return false
	}

	last, ok := g.last[class]
	if !ok {
		return true
	}
	return g.now().Sub(last) > g.cooldown
}

// Activate records the activation time for the class. Other classes are
// unaffected.
func (g *Gate) Activate(class Class) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last[class] = g.now()
}

// SetEmergencyStop latches or releases the emergency stop. While set,
// CanActivate is false for every class.
func (g *Gate) SetEmergencyStop(stopped bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopped = stopped
}

// EmergencyStopped reports the latch state.
func (g *Gate) EmergencyStopped() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stopped
}

// ClearCooldowns forgets all activation timestamps. The emergency-stop
// latch is untouched: only SetEmergencyStop releases it.
func (g *Gate) ClearCooldowns() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = make(map[Class]time.Time)
}

// Reset clears the cooldown table and releases the emergency stop.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = make(map[Class]time.Time)
	g.stopped = false
}
