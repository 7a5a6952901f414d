package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGenerateSphereCounts(t *testing.T) {
	tests := []struct {
		sectors, stacks int
	}{
		{32, 16},
		{3, 2},
		{8, 5},
	}

	for _, tt := range tests {
		m := GenerateSphere(5, tt.sectors, tt.stacks)

		if want := (tt.stacks + 1) * (tt.sectors + 1); len(m.Vertices) != want {
			t.Errorf("%dx%d: %d vertices, want %d", tt.sectors, tt.stacks, len(m.Vertices), want)
		}
		if want := tt.stacks * tt.sectors * 6; len(m.Indices) != want {
			t.Errorf("%dx%d: %d indices, want %d", tt.sectors, tt.stacks, len(m.Indices), want)
		}
		for i, idx := range m.Indices {
			if int(idx) >= len(m.Vertices) {
				t.Fatalf("%dx%d: index %d = %d out of range", tt.sectors, tt.stacks, i, idx)
			}
		}
	}
}

func TestGenerateSphereRadius(t *testing.T) {
	m := GenerateSphere(5, 32, 16)
	for i, v := range m.Vertices {
		if d := math.Abs(float64(v.Len() - 5)); d > 1e-4 {
			t.Fatalf("vertex %d at distance %f, want 5", i, v.Len())
		}
	}
}

func TestGenerateSpherePoles(t *testing.T) {
	m := GenerateSphere(2, 16, 8)

	north := m.Vertices[0]
	south := m.Vertices[len(m.Vertices)-1]
	if math.Abs(float64(north[1]-2)) > 1e-5 {
		t.Errorf("first vertex %v is not the north pole", north)
	}
	if math.Abs(float64(south[1]+2)) > 1e-5 {
		t.Errorf("last vertex %v is not the south pole", south)
	}
}

func TestGenerateSphereFirstQuad(t *testing.T) {
	m := GenerateSphere(1, 4, 2)
	// k1 = 0, k2 = sectors+1 = 5
	want := []uint32{0, 5, 1, 1, 5, 6}
	for i, w := range want {
		if m.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, m.Indices[i], w)
		}
	}
}

func TestGenerateSphereClampsDegenerateInput(t *testing.T) {
	m := GenerateSphere(1, 0, 0)
	if len(m.Vertices) != 3*4 {
		t.Errorf("got %d vertices, want minimum sphere of 12", len(m.Vertices))
	}
}

func TestDefaultPosition(t *testing.T) {
	got := DefaultPosition(257, 129)
	want := mgl32.Vec3{257, 100, 64.5}
	if got != want {
		t.Errorf("DefaultPosition = %v, want %v", got, want)
	}
}

func TestModelMatrix(t *testing.T) {
	l := NewPointLight(mgl32.Vec3{10, 100, 20}, mgl32.Vec3{1, 1, 1})

	// Unit scale: origin lands on the light, offsets are unchanged.
	m := l.ModelMatrix(1)
	p := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if p.Vec3() != l.Position || p[3] != 1 {
		t.Errorf("origin -> %v, want %v with w=1", p, l.Position)
	}

	// Scale applies before translation.
	m = l.ModelMatrix(2)
	p = m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !p.Vec3().ApproxEqual(mgl32.Vec3{12, 100, 20}) {
		t.Errorf("scaled point = %v, want (12, 100, 20)", p)
	}
}
