package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SphereMesh is a position-only UV sphere.
type SphereMesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// GenerateSphere builds a UV sphere centred on the origin.
//
// Stack i runs from the north pole (i=0) to the south pole (i=stacks);
// each ring repeats its first vertex at j=sectors. That gives (stacks+1)*(sectors+1)
// vertices and stacks*sectors*6 indices. Pole quads collapse into
// degenerate triangles, which GL skips.
func GenerateSphere(radius float32, sectors, stacks int) *SphereMesh {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	m := &SphereMesh{
		Vertices: make([]mgl32.Vec3, 0, (stacks+1)*(sectors+1)),
		Indices:  make([]uint32, 0, stacks*sectors*6),
	}

	r := float64(radius)
	for i := 0; i <= stacks; i++ {
		stackAngle := math.Pi/2 - float64(i)*math.Pi/float64(stacks)
		xz := r * math.Cos(stackAngle)
		y := r * math.Sin(stackAngle)

		for j := 0; j <= sectors; j++ {
			sectorAngle := float64(j) * 2 * math.Pi / float64(sectors)
			m.Vertices = append(m.Vertices, mgl32.Vec3{
				float32(xz * math.Cos(sectorAngle)),
				float32(y),
				float32(xz * math.Sin(sectorAngle)),
			})
		}
	}

	for i := 0; i < stacks; i++ {
		k1 := uint32(i * (sectors + 1))
		k2 := k1 + uint32(sectors) + 1

		for j := 0; j < sectors; j, k1, k2 = j+1, k1+1, k2+1 {
			m.Indices = append(m.Indices,
				k1, k2, k1+1,
				k1+1, k2, k2+1,
			)
		}
	}

	return m
}
