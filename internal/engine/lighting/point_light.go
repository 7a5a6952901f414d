// Package lighting provides the scene's point light and the sphere mesh
// that marks it.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// DefaultHeight is the light's Y when its position is derived from the
// terrain size.
const DefaultHeight = 100.0

// PointLight is a single white-or-tinted point light.
type PointLight struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// NewPointLight creates a light at pos with the given colour.
func NewPointLight(pos, color mgl32.Vec3) *PointLight {
	return &PointLight{Position: pos, Color: color}
}

// DefaultPosition places the light over the far X edge of a
// width x height terrain, halfway along Z.
func DefaultPosition(width, height int) mgl32.Vec3 {
	return mgl32.Vec3{float32(width), DefaultHeight, float32(height) / 2}
}

// ModelMatrix returns the marker sphere transform: translate to the
// light, then scale uniformly.
func (l *PointLight) ModelMatrix(scale float32) mgl32.Mat4 {
	return mgl32.Translate3D(l.Position[0], l.Position[1], l.Position[2]).
		Mul4(mgl32.Scale3D(scale, scale, scale))
}
