// Package camera provides a free-fly camera for walking over terrain.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a bitmask of keyboard movement directions.
type Movement uint8

const (
	MoveForward Movement = 1 << iota
	MoveBackward
	MoveLeft
	MoveRight
)

// Default camera tuning.
const (
	DefaultSpeed       = 20.0
	DefaultSensitivity = 0.1

	// MaxPitch keeps the front vector away from world-up so the
	// cross products never degenerate.
	MaxPitch = 89.0
)

// FlyCamera is a yaw/pitch camera. Angles are in degrees.
// The basis vectors are derived from yaw and pitch on every change.
type FlyCamera struct {
	Position    mgl32.Vec3
	Speed       float32
	Sensitivity float32

	yaw     float32
	pitch   float32
	front   mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3
	worldUp mgl32.Vec3
}

// NewFlyCamera creates a camera at pos looking along yaw/pitch.
func NewFlyCamera(pos mgl32.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		Position:    pos,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		worldUp:     mgl32.Vec3{0, 1, 0},
	}
	c.SetOrientation(yaw, pitch)
	return c
}

// Yaw returns the horizontal angle in degrees.
func (c *FlyCamera) Yaw() float32 { return c.yaw }

// Pitch returns the vertical angle in degrees, always within [-89, 89].
func (c *FlyCamera) Pitch() float32 { return c.pitch }

func (c *FlyCamera) Front() mgl32.Vec3 { return c.front }
func (c *FlyCamera) Right() mgl32.Vec3 { return c.right }
func (c *FlyCamera) Up() mgl32.Vec3    { return c.up }

// SetOrientation sets yaw and pitch directly, clamping pitch.
func (c *FlyCamera) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = clampPitch(pitch)
	c.updateVectors()
}

// ProcessKeyboard moves the camera along the front/right vectors flattened
// onto the XZ plane. Y is left untouched; height belongs to ground following.
func (c *FlyCamera) ProcessKeyboard(dirs Movement, dt float32) {
	if dirs == 0 {
		return
	}

	forward := flatten(c.front)
	right := flatten(c.right)
	velocity := c.Speed * dt

	var move mgl32.Vec3
	if dirs&MoveForward != 0 {
		move = move.Add(forward)
	}
	if dirs&MoveBackward != 0 {
		move = move.Sub(forward)
	}
	if dirs&MoveRight != 0 {
		move = move.Add(right)
	}
	if dirs&MoveLeft != 0 {
		move = move.Sub(right)
	}

	c.Position[0] += move[0] * velocity
	c.Position[2] += move[2] * velocity
}

// ProcessMouseMovement turns the camera by a cursor delta.
// Positive dy looks up.
func (c *FlyCamera) ProcessMouseMovement(dx, dy float32) {
	c.yaw += dx * c.Sensitivity
	c.pitch = clampPitch(c.pitch + dy*c.Sensitivity)
	c.updateVectors()
}

// ViewMatrix returns the world-to-view transform.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

func (c *FlyCamera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

// flatten projects v onto the XZ plane and renormalizes it.
func flatten(v mgl32.Vec3) mgl32.Vec3 {
	v[1] = 0
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

func clampPitch(p float32) float32 {
	if math.IsNaN(float64(p)) {
		return 0
	}
	if p > MaxPitch {
		return MaxPitch
	}
	if p < -MaxPitch {
		return -MaxPitch
	}
	return p
}

// Perspective builds a projection for a width x height viewport.
// A zero size is treated as one pixel so minimized windows do not
// produce NaNs.
func Perspective(fovDeg float32, width, height int, near, far float32) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
}
