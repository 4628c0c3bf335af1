package platform

import (
	"errors"
	"testing"

	"github.com/go-drift/carousel/pkg/graphics"
)

func TestSetNativeBridgeRejectsInvalidVersion(t *testing.T) {
	SetupTestBridge(t.Cleanup)

	err := SetNativeBridge(NewLoopbackBridge(), "1.2.0")
	if !errors.Is(err, ErrProtocolMismatch) {
		t.Fatalf("expected ErrProtocolMismatch for non-semver string, got %v", err)
	}
}

func TestSetNativeBridgeRejectsMajorMismatch(t *testing.T) {
	SetupTestBridge(t.Cleanup)

	err := SetNativeBridge(NewLoopbackBridge(), "v2.0.0")
	if !errors.Is(err, ErrProtocolMismatch) {
		t.Fatalf("expected ErrProtocolMismatch for major bump, got %v", err)
	}
}

func TestSetNativeBridgeAcceptsSameMajor(t *testing.T) {
	SetupTestBridge(t.Cleanup)

	for _, version := range []string{"v1.0.0", "v1.2.0", "v1.9.3"} {
		if err := SetNativeBridge(NewLoopbackBridge(), version); err != nil {
			t.Errorf("SetNativeBridge(%q) = %v, want nil", version, err)
		}
	}
}

func TestSetNativeBridgeStartsPendingStreams(t *testing.T) {
	SetupTestBridge(t.Cleanup)
	ResetForTest()

	// Built-in listeners (lifecycle, display) subscribed during
	// ResetForTest's init replay, before any bridge existed.
	bridge := NewLoopbackBridge()
	if err := SetNativeBridge(bridge, BridgeProtocolVersion); err != nil {
		t.Fatalf("SetNativeBridge: %v", err)
	}

	if !bridge.StreamStarted("carousel/lifecycle/events") {
		t.Error("lifecycle event stream should have been started")
	}
	if !bridge.StreamStarted("carousel/display/events") {
		t.Error("display event stream should have been started")
	}
}

func TestDisplayMetricsEvent(t *testing.T) {
	bridge := setupLoopback(t)

	var got []DisplayMetrics
	remove := Display.AddHandler(func(m DisplayMetrics) {
		got = append(got, m)
	})
	defer remove()

	err := bridge.EmitEvent("carousel/display/events", map[string]any{
		"width":  390.0,
		"height": 844.0,
		"scale":  3.0,
		"insets": map[string]any{"top": 47.0, "bottom": 34.0},
	})
	if err != nil {
		t.Fatalf("EmitEvent: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 metrics update, got %d", len(got))
	}
	want := DisplayMetrics{
		Size:   graphics.Size{Width: 390, Height: 844},
		Scale:  3,
		Insets: EdgeInsets{Top: 47, Bottom: 34},
	}
	if got[0] != want {
		t.Errorf("metrics = %+v, want %+v", got[0], want)
	}
	if Display.Size() != want.Size {
		t.Errorf("Display.Size() = %+v, want %+v", Display.Size(), want.Size)
	}
}

func TestDisplayMetricsDuplicateEventNotRedelivered(t *testing.T) {
	bridge := setupLoopback(t)

	updates := 0
	remove := Display.AddHandler(func(DisplayMetrics) { updates++ })
	defer remove()

	event := map[string]any{"width": 390.0, "height": 844.0, "scale": 3.0}
	bridge.EmitEvent("carousel/display/events", event)
	bridge.EmitEvent("carousel/display/events", event)

	if updates != 1 {
		t.Errorf("expected 1 update for duplicate events, got %d", updates)
	}
}

func TestLifecycleEventUpdatesState(t *testing.T) {
	bridge := setupLoopback(t)

	var states []LifecycleState
	remove := Lifecycle.AddHandler(func(s LifecycleState) {
		states = append(states, s)
	})
	defer remove()

	bridge.EmitEvent("carousel/lifecycle/events", map[string]any{"state": "paused"})

	if Lifecycle.State() != LifecycleStatePaused {
		t.Errorf("State = %v, want paused", Lifecycle.State())
	}
	if !Lifecycle.IsPaused() {
		t.Error("IsPaused should be true")
	}
	if len(states) != 1 || states[0] != LifecycleStatePaused {
		t.Errorf("handler states = %v, want [paused]", states)
	}
}

func TestMethodChannelRoundTrip(t *testing.T) {
	bridge := setupLoopback(t)
	bridge.Handle("test/echo", func(method string, args map[string]any) (any, error) {
		return map[string]any{"method": method, "value": args["value"]}, nil
	})

	ch := NewMethodChannel("test/echo")
	result, err := ch.Invoke("ping", map[string]any{"value": "hello"})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	m, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("result type %T, want map", result)
	}
	if m["method"] != "ping" || m["value"] != "hello" {
		t.Errorf("result = %v", m)
	}
}

func TestEventChannelStartStop(t *testing.T) {
	bridge := setupLoopback(t)

	ch := NewEventChannel("test/events")
	sub := ch.Listen(EventHandler{OnEvent: func(any) {}})

	if !bridge.StreamStarted("test/events") {
		t.Fatal("stream should be started after first Listen")
	}

	sub.Cancel()
	if bridge.StreamStarted("test/events") {
		t.Fatal("stream should be stopped after last subscription cancels")
	}
}
