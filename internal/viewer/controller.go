package viewer

import (
	"github.com/Faultbox/terrainview/internal/engine/camera"
	"github.com/Faultbox/terrainview/internal/engine/input"
)

// Controller applies one frame of input to the camera and keeps it on the
// ground. It holds no GL state.
type Controller struct {
	Camera *camera.FlyCamera
	Ground *GroundFollower
	Input  *input.State
}

// NewController wires a camera and ground follower to a fresh input state.
func NewController(cam *camera.FlyCamera, ground *GroundFollower) *Controller {
	return &Controller{
		Camera: cam,
		Ground: ground,
		Input:  input.NewState(),
	}
}

// Step folds events into the input state, turns the camera once per mouse
// delta in arrival order, moves it, then runs ground following.
func (c *Controller) Step(events []input.Event, dt float32) {
	c.Input.Apply(events)

	for _, d := range c.Input.MouseDeltas() {
		c.Camera.ProcessMouseMovement(d.DX, d.DY)
	}

	if dirs := c.movement(); dirs != 0 {
		c.Camera.ProcessKeyboard(dirs, dt)
	}

	if c.Ground != nil {
		c.Ground.Update(&c.Camera.Position, dt)
	}
}

// ShouldQuit reports whether the last step saw Escape or a close request.
func (c *Controller) ShouldQuit() bool {
	return c.Input.QuitRequested()
}

func (c *Controller) movement() camera.Movement {
	var m camera.Movement
	if c.Input.AnyPressed(input.KeyW, input.KeyUp) {
		m |= camera.MoveForward
	}
	if c.Input.AnyPressed(input.KeyS, input.KeyDown) {
		m |= camera.MoveBackward
	}
	if c.Input.AnyPressed(input.KeyA, input.KeyLeft) {
		m |= camera.MoveLeft
	}
	if c.Input.AnyPressed(input.KeyD, input.KeyRight) {
		m |= camera.MoveRight
	}
	return m
}
