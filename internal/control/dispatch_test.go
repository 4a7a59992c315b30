package control

import (
	"bytes"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

var errTestSink = errors.New("sink unavailable")

func newTestDispatcher() (*Dispatcher, *RecordingSink) {
	rec := NewRecordingSink()
	gate := gesture.NewGate(time.Hour)
	pointer := NewPointerFilter(1920, 1080, 0)
	return NewDispatcher(gate, rec, pointer), rec
}

func classify(class gesture.Class) gesture.Classification {
	return gesture.Classification{Class: class, Confidence: 0.9}
}

func TestDispatcher_PointerMove(t *testing.T) {
	d, rec := newTestDispatcher()

	hand := detector.PointingHandLandmarks()
	if !d.Dispatch(classify(gesture.ClassIndexExtended), hand.Landmarks()) {
		t.Fatal("expected pointer move to fire")
	}

	// Index tip (0.5, 0.3) through the 0.15 control zone, unsmoothed:
	// x = 0.5 -> 960, y = (0.3-0.15)/0.7 * 1080 = 231.
	if rec.MovedX != 960 || rec.MovedY != 231 {
		t.Errorf("expected pointer at (960, 231), got (%d, %d)", rec.MovedX, rec.MovedY)
	}
}

func TestDispatcher_PointerMoveIsNeverGated(t *testing.T) {
	d, rec := newTestDispatcher()

	hand := detector.PointingHandLandmarks()
	for i := 0; i < 5; i++ {
		if !d.Dispatch(classify(gesture.ClassIndexExtended), hand.Landmarks()) {
			t.Fatalf("move %d should fire despite the hour-long gate cooldown", i)
		}
	}
	if len(rec.Calls) != 5 {
		t.Errorf("expected 5 moves, got %v", rec.Calls)
	}
}

func TestDispatcher_Clicks(t *testing.T) {
	tests := []struct {
		name  string
		class gesture.Class
		want  string
	}{
		{"left click", gesture.ClassThumbIndexPinch, "click:left"},
		{"right click", gesture.ClassThumbMiddlePinch, "click:right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDispatcher()
			hand := detector.PinchHandLandmarks()

			if !d.Dispatch(classify(tt.class), hand.Landmarks()) {
				t.Fatal("expected click to fire")
			}
			if len(rec.Calls) != 1 || rec.Calls[0] != tt.want {
				t.Errorf("expected [%s], got %v", tt.want, rec.Calls)
			}

			// A second dispatch within the cooldown is swallowed.
			if d.Dispatch(classify(tt.class), hand.Landmarks()) {
				t.Error("second click should be blocked by the gate")
			}
			if len(rec.Calls) != 1 {
				t.Errorf("gate leak: %v", rec.Calls)
			}
		})
	}
}

func TestDispatcher_WindowActions(t *testing.T) {
	d, rec := newTestDispatcher()

	if !d.Dispatch(classify(gesture.ClassClosedFist), detector.FistHandLandmarks().Landmarks()) {
		t.Fatal("expected minimize to fire")
	}
	if !d.Dispatch(classify(gesture.ClassOpenPalm), detector.PalmHandLandmarks().Landmarks()) {
		t.Fatal("expected maximize to fire")
	}

	want := []string{"minimize_window", "maximize_window"}
	for i := range want {
		if rec.Calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], rec.Calls[i])
		}
	}
}

func TestDispatcher_Scroll(t *testing.T) {
	d, rec := newTestDispatcher()

	hand := detector.ScrollHandLandmarks()
	cls := classify(gesture.ClassTwoFingerScroll)

	// First frame only records the origin.
	if d.Dispatch(cls, hand.Landmarks()) {
		t.Error("origin frame should not scroll")
	}

	t.Run("within dead band", func(t *testing.T) {
		hand.Points[detector.IndexTip].Y -= 0.01
		if d.Dispatch(cls, hand.Landmarks()) {
			t.Error("movement inside the dead band should not scroll")
		}
	})

	t.Run("upward movement scrolls up", func(t *testing.T) {
		hand.Points[detector.IndexTip].Y = 0.25 // 0.1 above the origin
		if !d.Dispatch(cls, hand.Landmarks()) {
			t.Fatal("expected scroll to fire")
		}
		if len(rec.Scrolled) != 1 || rec.Scrolled[0] != 15 {
			t.Errorf("expected scroll amount 15, got %v", rec.Scrolled)
		}
	})

	t.Run("downward movement scrolls down", func(t *testing.T) {
		hand.Points[detector.IndexTip].Y = 0.45 // 0.1 below the origin
		if !d.Dispatch(cls, hand.Landmarks()) {
			t.Fatal("expected scroll to fire")
		}
		if rec.Scrolled[len(rec.Scrolled)-1] != -15 {
			t.Errorf("expected scroll amount -15, got %v", rec.Scrolled)
		}
	})
}

func TestDispatcher_ScrollOriginResetsOnOtherClass(t *testing.T) {
	d, rec := newTestDispatcher()

	hand := detector.ScrollHandLandmarks()
	cls := classify(gesture.ClassTwoFingerScroll)

	d.Dispatch(cls, hand.Landmarks())

	// An interleaved gesture discards the origin; the next scroll frame
	// records a new one instead of scrolling.
	d.Dispatch(classify(gesture.ClassNone), hand.Landmarks())

	hand.Points[detector.IndexTip].Y = 0.1
	if d.Dispatch(cls, hand.Landmarks()) {
		t.Error("frame after origin reset should only record a new origin")
	}
	if len(rec.Scrolled) != 0 {
		t.Errorf("unexpected scrolls: %v", rec.Scrolled)
	}
}

func TestDispatcher_VolumeZones(t *testing.T) {
	hand := detector.ThumbPinkyHandLandmarks()
	cls := classify(gesture.ClassThumbPinkyExtended)

	t.Run("high hand raises volume", func(t *testing.T) {
		d, rec := newTestDispatcher()
		hand.Points[detector.IndexTip].Y = 0.2
		if !d.Dispatch(cls, hand.Landmarks()) {
			t.Fatal("expected volume up to fire")
		}
		if len(rec.Volumes) != 1 || rec.Volumes[0] != VolumeUp {
			t.Errorf("expected [up], got %v", rec.Volumes)
		}
	})

	t.Run("low hand lowers volume", func(t *testing.T) {
		d, rec := newTestDispatcher()
		hand.Points[detector.IndexTip].Y = 0.8
		if !d.Dispatch(cls, hand.Landmarks()) {
			t.Fatal("expected volume down to fire")
		}
		if len(rec.Volumes) != 1 || rec.Volumes[0] != VolumeDown {
			t.Errorf("expected [down], got %v", rec.Volumes)
		}
	})

	t.Run("middle band is dead", func(t *testing.T) {
		d, rec := newTestDispatcher()
		hand.Points[detector.IndexTip].Y = 0.5
		if d.Dispatch(cls, hand.Landmarks()) {
			t.Error("dead zone should not adjust volume")
		}
		if len(rec.Volumes) != 0 {
			t.Errorf("unexpected volumes: %v", rec.Volumes)
		}
	})
}

func TestDispatcher_EmergencyStopBlocksEverything(t *testing.T) {
	rec := NewRecordingSink()
	gate := gesture.NewGate(time.Millisecond)
	d := NewDispatcher(gate, rec, NewPointerFilter(1920, 1080, 0))

	gate.SetEmergencyStop(true)

	dispatches := []struct {
		class gesture.Class
		hand  detector.HandLandmarks
	}{
		{gesture.ClassIndexExtended, detector.PointingHandLandmarks()},
		{gesture.ClassThumbIndexPinch, detector.PinchHandLandmarks()},
		{gesture.ClassClosedFist, detector.FistHandLandmarks()},
		{gesture.ClassThumbPinkyExtended, detector.ThumbPinkyHandLandmarks()},
	}
	for _, dp := range dispatches {
		if d.Dispatch(classify(dp.class), dp.hand.Landmarks()) {
			t.Errorf("class %s fired during emergency stop", dp.class)
		}
	}
	if len(rec.Calls) != 0 {
		t.Errorf("sink reached during emergency stop: %v", rec.Calls)
	}
}

func TestDispatcher_ActionEvents(t *testing.T) {
	d, _ := newTestDispatcher()

	var events []Event
	d.OnAction(func(e Event) { events = append(events, e) })

	d.Dispatch(classify(gesture.ClassThumbIndexPinch), detector.PinchHandLandmarks().Landmarks())
	d.Dispatch(classify(gesture.ClassClosedFist), detector.FistHandLandmarks().Landmarks())

	if d.ActionCount() != 2 {
		t.Errorf("expected 2 actions, got %d", d.ActionCount())
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != "Left Click" || events[0].Gesture != gesture.ClassThumbIndexPinch {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Action != "Minimize Window" {
		t.Errorf("unexpected second event: %+v", events[1])
	}
	if events[0].Timestamp.IsZero() {
		t.Error("event timestamp should be set")
	}
}

func TestDispatcher_SinkFailureDoesNotConsumeCooldown(t *testing.T) {
	d, rec := newTestDispatcher()
	rec.Err = errTestSink

	hand := detector.PinchHandLandmarks()
	if d.Dispatch(classify(gesture.ClassThumbIndexPinch), hand.Landmarks()) {
		t.Fatal("failed sink call should not report success")
	}

	// The cooldown was not recorded, so fixing the sink lets the same
	// gesture fire immediately.
	rec.Err = nil
	if !d.Dispatch(classify(gesture.ClassThumbIndexPinch), hand.Landmarks()) {
		t.Error("click should fire once the sink recovers")
	}
}

func TestDispatcher_ThrottledSinkIsSilent(t *testing.T) {
	d, rec := newTestDispatcher()
	rec.Err = ErrThrottled

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	hand := detector.ScrollHandLandmarks()
	d.Dispatch(classify(gesture.ClassTwoFingerScroll), hand.Landmarks())
	hand.Points[detector.IndexTip].Y = 0.25
	for i := 0; i < 5; i++ {
		if d.Dispatch(classify(gesture.ClassTwoFingerScroll), hand.Landmarks()) {
			t.Fatal("throttled scroll should not report success")
		}
	}
	d.Dispatch(classify(gesture.ClassThumbIndexPinch), detector.PinchHandLandmarks().Landmarks())

	if buf.Len() != 0 {
		t.Errorf("throttled primitives should not log, got %q", buf.String())
	}

	// A genuine sink failure still gets a log line.
	rec.Err = errTestSink
	d.Dispatch(classify(gesture.ClassThumbIndexPinch), detector.PinchHandLandmarks().Landmarks())
	if buf.Len() == 0 {
		t.Error("real sink failures should be logged")
	}
}

func TestDispatcher_Reset(t *testing.T) {
	d, rec := newTestDispatcher()

	d.Drag().Start(10, 10)
	d.Dispatch(classify(gesture.ClassThumbIndexPinch), detector.PinchHandLandmarks().Landmarks())

	d.Reset()

	if d.Drag().Dragging() {
		t.Error("Reset should force-close the drag")
	}
	if rec.Calls[len(rec.Calls)-1] != "button_up" {
		t.Errorf("expected trailing button_up, calls: %v", rec.Calls)
	}
	if d.ActionCount() != 1 {
		t.Errorf("action counter is a session metric and should survive Reset, got %d", d.ActionCount())
	}
}
