package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server"
)

// produce is the capture half of the pipeline. It reads frames at a
// motion-gated rate, runs hand detection, and hands snapshots to the
// consumer. When the queue is full the newest snapshot is dropped so
// capture never stalls.
func (a *App) produce(stopCh <-chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotion := time.Now()

	frameInterval := time.Second / capture.IdleFPS
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)
			if motionDetected {
				lastMotion = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(capture.ActiveFPS)
					ticker.Reset(time.Second / capture.ActiveFPS)
				}
			} else if activeMode && time.Since(lastMotion) > IdleTimeout {
				activeMode = false
				a.camera.SetFPS(capture.IdleFPS)
				ticker.Reset(time.Second / capture.IdleFPS)
			}

			if !activeMode {
				frame.Close()
				continue
			}

			hands, err := a.detector.Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			snap := snapshot{hands: hands, timestamp: time.Now()}
			select {
			case a.snapshots <- snap:
			default:
				// Consumer is behind; drop the frame.
			}
		}
	}
}

// consume is the resolve half of the pipeline. Each tick it takes the
// freshest snapshot, runs recognition, dispatches when control is
// enabled, and publishes state.
func (a *App) consume(stopCh <-chan struct{}) {
	defer a.wg.Done()

	ticker := time.NewTicker(resolveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			snap, ok := a.latestSnapshot()
			if !ok {
				continue
			}

			cls := gesture.Classification{Class: gesture.ClassNone}
			var points []detector.Point3D
			if len(snap.hands) > 0 {
				points = snap.hands[0].Landmarks()
				cls = a.recognizer.Recognize(points)
			}

			if a.IsEnabled() && len(points) > 0 {
				a.dispatcher.Dispatch(cls, points)
			}

			a.publishState(cls)
		}
	}
}

// latestSnapshot drains the queue and returns the newest snapshot.
func (a *App) latestSnapshot() (snapshot, bool) {
	var snap snapshot
	ok := false
	for {
		select {
		case s := <-a.snapshots:
			snap, ok = s, true
		default:
			return snap, ok
		}
	}
}

func (a *App) publishState(cls gesture.Classification) {
	if a.config.Publish == nil {
		return
	}

	a.config.Publish(server.State{
		Gesture:        string(cls.Class),
		Confidence:     cls.Confidence,
		FPS:            a.camera.FPS(),
		Actions:        a.dispatcher.ActionCount(),
		ControlEnabled: a.IsEnabled(),
		EmergencyStop:  a.gate.EmergencyStopped(),
		Timestamp:      time.Now().UnixMilli(),
	})
}
