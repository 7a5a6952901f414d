package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/engine/camera"
	"github.com/Faultbox/terrainview/internal/engine/input"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	g := newFollower(t, flatMesh(t, 64, 0), GroundConfig{EyeOffset: 2, Mode: FollowLerp, Rate: 10})
	return NewController(camera.NewFlyCamera(mgl32.Vec3{32, 2, 32}, -90, 0), g)
}

func keyDown(k input.Key) input.Event { return input.Event{Type: input.EventKeyDown, Key: k} }
func keyUp(k input.Key) input.Event   { return input.Event{Type: input.EventKeyUp, Key: k} }

func TestControllerMovesForward(t *testing.T) {
	for _, k := range []input.Key{input.KeyW, input.KeyUp} {
		c := newTestController(t)
		c.Step([]input.Event{keyDown(k)}, 0.1)

		p := c.Camera.Position
		if !approxEqual(p[2], 30, 1e-4) || !approxEqual(p[0], 32, 1e-4) {
			t.Errorf("%v: position = %v, want (32, _, 30)", k, p)
		}
		if !approxEqual(p[1], 2, 1e-5) {
			t.Errorf("%v: y = %f, want eye height 2", k, p[1])
		}
	}
}

func TestControllerHeldKeyPersists(t *testing.T) {
	c := newTestController(t)
	c.Step([]input.Event{keyDown(input.KeyD)}, 0.1)
	c.Step(nil, 0.1)
	if !approxEqual(c.Camera.Position[0], 36, 1e-3) {
		t.Errorf("x = %f, want 36 after two frames", c.Camera.Position[0])
	}

	c.Step([]input.Event{keyUp(input.KeyD)}, 0.1)
	if !approxEqual(c.Camera.Position[0], 36, 1e-3) {
		t.Errorf("x = %f, moved after release", c.Camera.Position[0])
	}
}

func TestControllerOpposingKeysCancel(t *testing.T) {
	c := newTestController(t)
	c.Step([]input.Event{keyDown(input.KeyW), keyDown(input.KeyS)}, 0.5)
	p := c.Camera.Position
	if !approxEqual(p[0], 32, 1e-4) || !approxEqual(p[2], 32, 1e-4) {
		t.Errorf("position = %v, want unchanged", p)
	}
}

func TestControllerMouseLook(t *testing.T) {
	c := newTestController(t)
	c.Step([]input.Event{
		{Type: input.EventMouseMove, Relative: true, DX: 10, DY: 0},
		{Type: input.EventMouseMove, Relative: true, DX: 0, DY: -20},
	}, 0.016)

	if !approxEqual(c.Camera.Yaw(), -89, 1e-4) {
		t.Errorf("yaw = %f, want -89", c.Camera.Yaw())
	}
	// Relative DY grows downward, so -20 looks up.
	if !approxEqual(c.Camera.Pitch(), 2, 1e-4) {
		t.Errorf("pitch = %f, want 2", c.Camera.Pitch())
	}
}

func TestControllerClampsToTerrain(t *testing.T) {
	c := newTestController(t)
	c.Camera.Position = mgl32.Vec3{-100, 50, 500}
	c.Step(nil, 0.016)

	p := c.Camera.Position
	if p[0] != 0 || p[2] != 63 {
		t.Errorf("xz = (%f, %f), want (0, 63)", p[0], p[2])
	}
}

func TestControllerQuit(t *testing.T) {
	c := newTestController(t)
	c.Step(nil, 0.016)
	if c.ShouldQuit() {
		t.Fatal("quit before any event")
	}

	c.Step([]input.Event{keyDown(input.KeyEscape)}, 0.016)
	if !c.ShouldQuit() {
		t.Error("Escape did not request quit")
	}

	c = newTestController(t)
	c.Step([]input.Event{{Type: input.EventQuit}}, 0.016)
	if !c.ShouldQuit() {
		t.Error("window close did not request quit")
	}
}

func TestControllerWithoutGround(t *testing.T) {
	c := NewController(camera.NewFlyCamera(mgl32.Vec3{0, 50, 0}, -90, 0), nil)
	c.Step([]input.Event{keyDown(input.KeyW)}, 1)
	if c.Camera.Position[1] != 50 {
		t.Errorf("y = %f, want 50 without ground following", c.Camera.Position[1])
	}
}
