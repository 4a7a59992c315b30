package gesture

import (
	"testing"
	"time"
)

// fakeClock drives the gate's clock in tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestGate(cooldown time.Duration) (*Gate, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	g := NewGate(cooldown)
	g.now = clock.now
	return g, clock
}

func TestGate_Cooldown(t *testing.T) {
	g, clock := newTestGate(500 * time.Millisecond)

	if !g.CanActivate(ClassClosedFist) {
		t.Fatal("first activation should be allowed")
	}
	g.Activate(ClassClosedFist)

	if g.CanActivate(ClassClosedFist) {
		t.Error("immediate re-activation should be blocked")
	}

	clock.advance(500 * time.Millisecond)
	if g.CanActivate(ClassClosedFist) {
		t.Error("activation at exactly the cooldown should still be blocked")
	}

	clock.advance(time.Millisecond)
	if !g.CanActivate(ClassClosedFist) {
		t.Error("activation after the cooldown should be allowed")
	}
}

func TestGate_PerClassIndependence(t *testing.T) {
	g, _ := newTestGate(500 * time.Millisecond)

	g.Activate(ClassClosedFist)

	if g.CanActivate(ClassClosedFist) {
		t.Error("activated class should be cooling down")
	}
	if !g.CanActivate(ClassOpenPalm) {
		t.Error("other classes should be unaffected")
	}
}

func TestGate_NoneNeverActivates(t *testing.T) {
	g, _ := newTestGate(0)
	if g.CanActivate(ClassNone) {
		t.Error("ClassNone must never activate")
	}
}

func TestGate_EmergencyStop(t *testing.T) {
	g, clock := newTestGate(500 * time.Millisecond)

	g.SetEmergencyStop(true)
	if !g.EmergencyStopped() {
		t.Fatal("expected stop to be latched")
	}

	clock.advance(time.Hour)
	for _, class := range Classes {
		if g.CanActivate(class) {
			t.Errorf("class %s should be blocked while stopped", class)
		}
	}

	g.SetEmergencyStop(false)
	if !g.CanActivate(ClassOpenPalm) {
		t.Error("release should restore activation")
	}
}

func TestGate_Reset(t *testing.T) {
	g, _ := newTestGate(time.Hour)

	g.Activate(ClassClosedFist)
	g.SetEmergencyStop(true)

	g.Reset()

	if g.EmergencyStopped() {
		t.Error("reset should release the emergency stop")
	}
	if !g.CanActivate(ClassClosedFist) {
		t.Error("reset should clear the cooldown table")
	}
}

func TestGate_ClearCooldownsKeepsLatch(t *testing.T) {
	g, _ := newTestGate(time.Hour)

	g.Activate(ClassClosedFist)
	g.SetEmergencyStop(true)

	g.ClearCooldowns()

	if !g.EmergencyStopped() {
		t.Error("clearing cooldowns must not release the emergency stop")
	}
	if g.CanActivate(ClassClosedFist) {
		t.Error("latch should still block activation")
	}

	g.SetEmergencyStop(false)
	if !g.CanActivate(ClassClosedFist) {
		t.Error("cooldown table should be cleared")
	}
}

func TestGate_DefaultCooldown(t *testing.T) {
	g := NewGate(0)
	if g.cooldown != DefaultCooldown {
		t.Errorf("expected default cooldown %v, got %v", DefaultCooldown, g.cooldown)
	}
}
