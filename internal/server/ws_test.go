package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestStateHandler_PublishReachesClient(t *testing.T) {
	h := NewStateHandler()
	ts := httptest.NewServer(h)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Registration happens on the server goroutine; wait for it.
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if h.ClientCount() != 1 {
		t.Fatal("client never registered")
	}

	want := State{
		Gesture:        "open_palm",
		Confidence:     0.92,
		FPS:            15,
		Actions:        3,
		ControlEnabled: true,
		Timestamp:      time.Now().UnixMilli(),
	}
	h.Publish(want)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var got State
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Gesture != want.Gesture || got.FPS != want.FPS || !got.ControlEnabled {
		t.Errorf("unexpected state: %+v", got)
	}
}

func TestStateHandler_PublishWithoutClients(t *testing.T) {
	h := NewStateHandler()
	// Must not block or panic with nobody listening.
	h.Publish(State{Gesture: "none"})
	if h.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", h.ClientCount())
	}
}
