package control

import (
	"errors"
	"testing"
	"time"
)

func newTestThrottled(rec *RecordingSink) (*Throttled, *time.Time) {
	now := time.Unix(2000, 0)
	th := NewThrottled(rec)
	th.now = func() time.Time { return now }
	return th, &now
}

func TestThrottled_ClickCooldown(t *testing.T) {
	rec := NewRecordingSink()
	th, now := newTestThrottled(rec)

	if err := th.Click(ButtonLeft); err != nil {
		t.Fatalf("first click failed: %v", err)
	}
	if err := th.Click(ButtonLeft); !errors.Is(err, ErrThrottled) {
		t.Errorf("expected ErrThrottled, got %v", err)
	}

	*now = now.Add(101 * time.Millisecond)
	if err := th.Click(ButtonRight); err != nil {
		t.Errorf("click after cooldown failed: %v", err)
	}

	if len(rec.Calls) != 2 {
		t.Errorf("expected 2 sink calls, got %v", rec.Calls)
	}
}

func TestThrottled_WindowCooldownIsLonger(t *testing.T) {
	rec := NewRecordingSink()
	th, now := newTestThrottled(rec)

	if err := th.MinimizeWindow(); err != nil {
		t.Fatalf("minimize failed: %v", err)
	}

	*now = now.Add(500 * time.Millisecond)
	if err := th.MinimizeWindow(); !errors.Is(err, ErrThrottled) {
		t.Errorf("window action should still be throttled at 500ms, got %v", err)
	}

	*now = now.Add(501 * time.Millisecond)
	if err := th.MinimizeWindow(); err != nil {
		t.Errorf("minimize after 1s failed: %v", err)
	}
}

func TestThrottled_PrimitivesIndependent(t *testing.T) {
	rec := NewRecordingSink()
	th, _ := newTestThrottled(rec)

	th.Click(ButtonLeft)
	if err := th.Scroll(5); err != nil {
		t.Errorf("scroll should not share the click cooldown: %v", err)
	}
	if err := th.Volume(VolumeUp); err != nil {
		t.Errorf("volume should not share the click cooldown: %v", err)
	}
}

func TestThrottled_MovementNeverThrottled(t *testing.T) {
	rec := NewRecordingSink()
	th, _ := newTestThrottled(rec)

	for i := 0; i < 10; i++ {
		if err := th.MovePointer(i, i); err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}
	}
	if err := th.ButtonDown(); err != nil {
		t.Errorf("button down failed: %v", err)
	}
	if err := th.ButtonUp(); err != nil {
		t.Errorf("button up failed: %v", err)
	}
}

func TestThrottled_Reset(t *testing.T) {
	rec := NewRecordingSink()
	th, _ := newTestThrottled(rec)

	th.Click(ButtonLeft)
	th.Reset()

	if err := th.Click(ButtonLeft); err != nil {
		t.Errorf("click after reset failed: %v", err)
	}
}
