// Package terrain builds triangle meshes from heightmaps and answers
// terrain height queries.
package terrain

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrGridTooSmall is returned for grids that cannot form a single quad.
var ErrGridTooSmall = errors.New("terrain: grid must be at least 2x2")

// HeightGrid is a row-major grid of normalized heights in [0,1].
// Sample (x, z) lives at index z*Width+x.
type HeightGrid struct {
	Width   int
	Height  int
	Samples []float32
}

// Vertex is a terrain mesh vertex. The layout is tightly packed for
// GPU upload: position (0), normal (12), texcoord (24), stride 32.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Mesh holds terrain geometry ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Width    int // samples along X
	Height   int // samples along Z
	Bounds   Bounds
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// QuadCount returns the number of grid quads in the mesh.
func (m *Mesh) QuadCount() int {
	return (m.Width - 1) * (m.Height - 1)
}

// MeshOptions controls how heights become geometry.
type MeshOptions struct {
	// HeightScale converts normalized heights to world units.
	HeightScale float32
	// TexRepeat is how many times the texture tiles across the terrain.
	TexRepeat float32
	// NormalStrength is the Y component fed into the central-difference
	// normal. It is tied to the one world unit spacing between samples:
	// larger values flatten the shading.
	NormalStrength float32
}

// DefaultMeshOptions returns the standard viewer settings.
func DefaultMeshOptions() MeshOptions {
	return MeshOptions{
		HeightScale:    20.0,
		TexRepeat:      10.0,
		NormalStrength: 2.0,
	}
}
