package terrain

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BuildMesh converts a height grid into one vertex per sample and two
// triangles per grid quad.
//
// Sample (x, z) is placed at world (x, h*HeightScale, z), so one world unit
// separates neighbouring samples.
func BuildMesh(grid *HeightGrid, opts MeshOptions) (*Mesh, error) {
	if grid == nil {
		return nil, fmt.Errorf("terrain: nil height grid")
	}
	if grid.Width < 2 || grid.Height < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, grid.Width, grid.Height)
	}
	if len(grid.Samples) != grid.Width*grid.Height {
		return nil, fmt.Errorf("terrain: %d samples for %dx%d grid", len(grid.Samples), grid.Width, grid.Height)
	}

	width, height := grid.Width, grid.Height
	vertices := make([]Vertex, width*height)

	bounds := Bounds{
		Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			i := z*width + x
			pos := mgl32.Vec3{float32(x), grid.Samples[i] * opts.HeightScale, float32(z)}
			vertices[i] = Vertex{
				Position: pos,
				Normal:   mgl32.Vec3{0, 1, 0},
				TexCoord: mgl32.Vec2{
					float32(x) / float32(width) * opts.TexRepeat,
					float32(z) / float32(height) * opts.TexRepeat,
				},
			}
			bounds.extend(pos)
		}
	}

	computeNormals(vertices, width, height, opts.NormalStrength)

	return &Mesh{
		Vertices: vertices,
		Indices:  GenerateIndices(width, height),
		Width:    width,
		Height:   height,
		Bounds:   bounds,
	}, nil
}

// computeNormals fills per-vertex normals from central differences of the
// scaled heights. Neighbours past the edge reuse the boundary sample.
func computeNormals(vertices []Vertex, width, height int, strength float32) {
	y := func(x, z int) float32 {
		return vertices[clampi(z, 0, height-1)*width+clampi(x, 0, width-1)].Position[1]
	}

	for z := 0; z < height; z++ {
		for x := 0; x < width; x++ {
			n := mgl32.Vec3{
				y(x-1, z) - y(x+1, z),
				strength,
				y(x, z-1) - y(x, z+1),
			}
			if n.Len() == 0 {
				n = mgl32.Vec3{0, 1, 0}
			}
			vertices[z*width+x].Normal = n.Normalize()
		}
	}
}

// GenerateIndices triangulates a width x height vertex grid.
// Each quad emits (topLeft, bottomLeft, topRight) and
// (topRight, bottomLeft, bottomRight). The winding is part of the
// contract with the terrain shader and face culling.
func GenerateIndices(width, height int) []uint32 {
	if width < 2 || height < 2 {
		return nil
	}

	indices := make([]uint32, 0, (width-1)*(height-1)*6)
	for z := 0; z < height-1; z++ {
		for x := 0; x < width-1; x++ {
			topLeft := uint32(z*width + x)
			topRight := topLeft + 1
			bottomLeft := uint32((z+1)*width + x)
			bottomRight := bottomLeft + 1

			indices = append(indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}
	return indices
}

func (b *Bounds) extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
