package ui

import "github.com/Faultbox/terrainview/internal/engine/input"

// hostKeys are the keys the viewer reads, in the order frameInput.down
// stores them.
var hostKeys = [...]input.Key{
	input.KeyW, input.KeyA, input.KeyS, input.KeyD,
	input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight,
	input.KeyEscape, input.KeyF12,
}

// frameInput is one frame of host input state. ImGui reports levels, not
// events, so the translator diffs consecutive frames.
type frameInput struct {
	down   [len(hostKeys)]bool
	look   bool // mouse look button held
	dx, dy float32
	width  int
	height int
}

// eventTranslator turns successive frameInput snapshots into the events
// the SDL and GLFW windows produce.
type eventTranslator struct {
	down          [len(hostKeys)]bool
	width, height int
}

func (t *eventTranslator) translate(in frameInput, dst []input.Event) []input.Event {
	for i, key := range hostKeys {
		if in.down[i] == t.down[i] {
			continue
		}
		t.down[i] = in.down[i]
		typ := input.EventKeyUp
		if in.down[i] {
			typ = input.EventKeyDown
		}
		dst = append(dst, input.Event{Type: typ, Key: key})
	}

	if in.look && (in.dx != 0 || in.dy != 0) {
		dst = append(dst, input.Event{
			Type:     input.EventMouseMove,
			DX:       in.dx,
			DY:       in.dy,
			Relative: true,
		})
	}

	if in.width > 0 && in.height > 0 && (in.width != t.width || in.height != t.height) {
		t.width, t.height = in.width, in.height
		dst = append(dst, input.Event{
			Type:   input.EventWindowResize,
			Width:  in.width,
			Height: in.height,
		})
	}
	return dst
}
