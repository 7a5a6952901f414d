package ui

import (
	"testing"

	"github.com/Faultbox/terrainview/internal/engine/debug"
	"github.com/Faultbox/terrainview/internal/engine/input"
)

func keyIndex(t *testing.T, k input.Key) int {
	t.Helper()
	for i, hk := range hostKeys {
		if hk == k {
			return i
		}
	}
	t.Fatalf("key %v is not tracked", k)
	return -1
}

func TestTranslateKeyTransitions(t *testing.T) {
	tr := eventTranslator{width: 800, height: 600}
	w := keyIndex(t, input.KeyW)

	var in frameInput
	in.width, in.height = 800, 600
	in.down[w] = true

	events := tr.translate(in, nil)
	if len(events) != 1 || events[0].Type != input.EventKeyDown || events[0].Key != input.KeyW {
		t.Fatalf("press: got %+v", events)
	}

	// Held keys are levels, not new presses.
	if events := tr.translate(in, nil); len(events) != 0 {
		t.Errorf("held: got %+v, want none", events)
	}

	in.down[w] = false
	events = tr.translate(in, nil)
	if len(events) != 1 || events[0].Type != input.EventKeyUp || events[0].Key != input.KeyW {
		t.Errorf("release: got %+v", events)
	}
}

func TestTranslateFeedsInputState(t *testing.T) {
	tr := eventTranslator{width: 800, height: 600}
	state := input.NewState()

	var in frameInput
	in.width, in.height = 800, 600
	in.down[keyIndex(t, input.KeyF12)] = true
	in.down[keyIndex(t, input.KeyUp)] = true

	state.Apply(tr.translate(in, nil))
	if !state.ScreenshotRequested() {
		t.Error("F12 press should request a screenshot")
	}
	if !state.Pressed(input.KeyUp) {
		t.Error("Up should be held")
	}

	// F12 still held next frame: no second screenshot.
	state.Apply(tr.translate(in, nil))
	if state.ScreenshotRequested() {
		t.Error("held F12 requested another screenshot")
	}

	in.down[keyIndex(t, input.KeyEscape)] = true
	state.Apply(tr.translate(in, nil))
	if !state.QuitRequested() {
		t.Error("Escape should quit")
	}
}

func TestTranslateMouseLookNeedsButton(t *testing.T) {
	tr := eventTranslator{width: 800, height: 600}
	in := frameInput{dx: 5, dy: -3, width: 800, height: 600}

	if events := tr.translate(in, nil); len(events) != 0 {
		t.Errorf("hover without button: got %+v", events)
	}

	in.look = true
	events := tr.translate(in, nil)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Type != input.EventMouseMove || !e.Relative || e.DX != 5 || e.DY != -3 {
		t.Errorf("look event = %+v", e)
	}

	in.dx, in.dy = 0, 0
	if events := tr.translate(in, nil); len(events) != 0 {
		t.Errorf("still mouse: got %+v", events)
	}
}

func TestTranslateResize(t *testing.T) {
	tr := eventTranslator{width: 800, height: 600}

	if events := tr.translate(frameInput{width: 800, height: 600}, nil); len(events) != 0 {
		t.Errorf("same size: got %+v", events)
	}

	events := tr.translate(frameInput{width: 1024, height: 768}, nil)
	if len(events) != 1 || events[0].Type != input.EventWindowResize ||
		events[0].Width != 1024 || events[0].Height != 768 {
		t.Fatalf("resize: got %+v", events)
	}

	// A minimized window reports zero size; keep the last real one.
	if events := tr.translate(frameInput{}, nil); len(events) != 0 {
		t.Errorf("zero size: got %+v", events)
	}
}

func TestTranslateAppendsToDst(t *testing.T) {
	tr := eventTranslator{width: 800, height: 600}
	dst := []input.Event{{Type: input.EventQuit}}

	in := frameInput{width: 800, height: 600}
	in.down[keyIndex(t, input.KeyA)] = true
	got := tr.translate(in, dst)
	if len(got) != 2 || got[0].Type != input.EventQuit || got[1].Key != input.KeyA {
		t.Errorf("got %+v", got)
	}
}

func TestFPSColor(t *testing.T) {
	tests := []struct {
		fps     float64
		r, g, b float32
	}{
		{0, 1.0, 0.2, 0.2},
		{29.9, 1.0, 0.2, 0.2},
		{30, 1.0, 1.0, 0.2},
		{59.9, 1.0, 1.0, 0.2},
		{60, 0.2, 1.0, 0.2},
		{144, 0.2, 1.0, 0.2},
	}
	for _, tt := range tests {
		r, g, b := fpsColor(tt.fps)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("fpsColor(%v) = (%v, %v, %v), want (%v, %v, %v)", tt.fps, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

func TestDisabledOverlayDrawsNothing(t *testing.T) {
	// Render returns before any ImGui call, so no context is needed.
	NewDebugOverlay(false).Render(debug.OverlayInfo{FPS: 10})
}
