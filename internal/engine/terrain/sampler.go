package terrain

import "math"

// Sampler answers terrain height queries at continuous coordinates.
// It reads heights straight from the mesh vertices, so the rendered surface
// and the sampled surface never disagree.
type Sampler struct {
	vertices []Vertex
	width    int
	height   int
}

// NewSampler creates a sampler over a built mesh.
func NewSampler(mesh *Mesh) *Sampler {
	return &Sampler{
		vertices: mesh.Vertices,
		width:    mesh.Width,
		height:   mesh.Height,
	}
}

// Width returns the number of samples along X.
func (s *Sampler) Width() int { return s.width }

// Height returns the number of samples along Z.
func (s *Sampler) Height() int { return s.height }

// Clamp snaps (x, z) into [0, W-1] x [0, H-1]. NaN maps to 0.
func (s *Sampler) Clamp(x, z float32) (float32, float32) {
	return clampf(x, 0, float32(s.width-1)), clampf(z, 0, float32(s.height-1))
}

// HeightAt returns the bilinearly interpolated surface height at (x, z).
// Points outside the grid are clamped to the nearest edge.
func (s *Sampler) HeightAt(x, z float32) float32 {
	x, z = s.Clamp(x, z)

	ix := int(x)
	iz := int(z)
	ix1 := min(ix+1, s.width-1)
	iz1 := min(iz+1, s.height-1)

	fx := x - float32(ix)
	fz := z - float32(iz)

	h00 := s.at(ix, iz)
	h10 := s.at(ix1, iz)
	h01 := s.at(ix, iz1)
	h11 := s.at(ix1, iz1)

	h0 := lerp(h00, h10, fx)
	h1 := lerp(h01, h11, fx)
	return lerp(h0, h1, fz)
}

func (s *Sampler) at(x, z int) float32 {
	return s.vertices[z*s.width+x].Position[1]
}

// lerp interpolates from a to b. The result always lies within [a, b]
// (or [b, a]) and equals a exactly when a == b or t == 0.
func lerp(a, b, t float32) float32 {
	v := a + (b-a)*t
	lo, hi := min(a, b), max(a, b)
	return clampf(v, lo, hi)
}

func clampf(v, lo, hi float32) float32 {
	if math.IsNaN(float64(v)) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
