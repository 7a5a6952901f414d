package input

import "testing"

func move(x, y float32) Event {
	return Event{Type: EventMouseMove, X: x, Y: y}
}

func TestFirstMouseOnlyRecordsPosition(t *testing.T) {
	s := NewState()
	s.Apply([]Event{move(500, 300)})

	if n := len(s.MouseDeltas()); n != 0 {
		t.Fatalf("first move produced %d deltas, want 0", n)
	}

	s.Apply([]Event{move(510, 290)})
	d := s.MouseDeltas()
	if len(d) != 1 {
		t.Fatalf("got %d deltas, want 1", len(d))
	}
	if d[0].DX != 10 || d[0].DY != 10 {
		t.Errorf("delta = %+v, want {10 10}", d[0])
	}
}

func TestMouseDeltasKeepArrivalOrder(t *testing.T) {
	s := NewState()
	s.Apply([]Event{
		move(0, 0),
		move(5, 0),
		move(5, 7),
		move(2, 7),
	})

	want := []MouseDelta{{5, 0}, {0, -7}, {-3, 0}}
	got := s.MouseDeltas()
	if len(got) != len(want) {
		t.Fatalf("got %d deltas, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delta %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRelativeMotionFlipsY(t *testing.T) {
	s := NewState()
	s.Apply([]Event{
		{Type: EventMouseMove, Relative: true, DX: 3, DY: 4},
		{Type: EventMouseMove, Relative: true, DX: -1, DY: -2},
	})

	want := []MouseDelta{{3, -4}, {-1, 2}}
	got := s.MouseDeltas()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("deltas = %+v, want %+v", got, want)
	}
}

func TestDeltasClearedEachFrame(t *testing.T) {
	s := NewState()
	s.Apply([]Event{move(0, 0), move(1, 1)})
	s.Apply(nil)

	if n := len(s.MouseDeltas()); n != 0 {
		t.Errorf("stale deltas: %d", n)
	}
}

func TestKeysPersistAcrossFrames(t *testing.T) {
	s := NewState()
	s.Apply([]Event{{Type: EventKeyDown, Key: KeyW}})
	s.Apply(nil)

	if !s.Pressed(KeyW) {
		t.Error("W should still be held")
	}
	if !s.AnyPressed(KeyUp, KeyW) {
		t.Error("AnyPressed(Up, W) = false")
	}

	s.Apply([]Event{{Type: EventKeyUp, Key: KeyW}})
	if s.Pressed(KeyW) {
		t.Error("W should be released")
	}
}

func TestQuitRequests(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   bool
	}{
		{"none", nil, false},
		{"window close", []Event{{Type: EventQuit}}, true},
		{"escape", []Event{{Type: EventKeyDown, Key: KeyEscape}}, true},
		{"escape release only", []Event{{Type: EventKeyUp, Key: KeyEscape}}, false},
		{"other key", []Event{{Type: EventKeyDown, Key: KeyA}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.Apply(tt.events)
			if got := s.QuitRequested(); got != tt.want {
				t.Errorf("QuitRequested() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScreenshotOncePerPress(t *testing.T) {
	s := NewState()
	s.Apply([]Event{{Type: EventKeyDown, Key: KeyF12}})
	if !s.ScreenshotRequested() {
		t.Fatal("F12 should request a screenshot")
	}

	s.Apply([]Event{{Type: EventKeyDown, Key: KeyF12, Repeat: true}})
	if s.ScreenshotRequested() {
		t.Error("auto-repeat should not request another screenshot")
	}
}

func TestResize(t *testing.T) {
	s := NewState()
	s.Apply([]Event{
		{Type: EventWindowResize, Width: 800, Height: 600},
		{Type: EventWindowResize, Width: 1280, Height: 720},
	})

	w, h, ok := s.Resized()
	if !ok || w != 1280 || h != 720 {
		t.Errorf("Resized() = %d, %d, %v; want 1280, 720, true", w, h, ok)
	}

	s.Apply(nil)
	if _, _, ok := s.Resized(); ok {
		t.Error("resize should not carry over to the next frame")
	}
}

func TestResetMouse(t *testing.T) {
	s := NewState()
	s.Apply([]Event{move(0, 0), move(10, 10)})
	s.ResetMouse()
	s.Apply([]Event{move(400, 400)})

	if n := len(s.MouseDeltas()); n != 0 {
		t.Errorf("move after reset produced %d deltas, want 0", n)
	}
}

func TestUnknownKeysIgnored(t *testing.T) {
	s := NewState()
	s.Apply([]Event{{Type: EventKeyDown, Key: KeyUnknown}, {Type: EventKeyDown, Key: Key(99)}})

	if s.Pressed(KeyUnknown) || s.Pressed(Key(99)) {
		t.Error("unknown keys should never report pressed")
	}
	if Key(99).String() != "invalid" || KeyF12.String() != "F12" {
		t.Errorf("String() = %q, %q", Key(99).String(), KeyF12.String())
	}
}
