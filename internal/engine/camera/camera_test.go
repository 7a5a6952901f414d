package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNewFlyCameraDefaults(t *testing.T) {
	cam := NewFlyCamera(mgl32.Vec3{0, 50, 100}, -90, 0)

	if cam.Speed != DefaultSpeed || cam.Sensitivity != DefaultSensitivity {
		t.Errorf("speed/sensitivity = %f/%f", cam.Speed, cam.Sensitivity)
	}

	// yaw -90 looks down -Z
	f := cam.Front()
	if !near(f[0], 0) || !near(f[1], 0) || !near(f[2], -1) {
		t.Errorf("front = %v, want (0, 0, -1)", f)
	}
	r := cam.Right()
	if !near(r[0], 1) || !near(r[1], 0) || !near(r[2], 0) {
		t.Errorf("right = %v, want (1, 0, 0)", r)
	}
	u := cam.Up()
	if !near(u[1], 1) {
		t.Errorf("up = %v, want (0, 1, 0)", u)
	}
}

func TestPitchConvergesTo89(t *testing.T) {
	cam := NewFlyCamera(mgl32.Vec3{}, -90, 0)
	for i := 0; i < 1000; i++ {
		cam.ProcessMouseMovement(0, 500)
	}
	if cam.Pitch() != MaxPitch {
		t.Errorf("pitch = %f, want %f", cam.Pitch(), float32(MaxPitch))
	}

	for i := 0; i < 1000; i++ {
		cam.ProcessMouseMovement(0, -500)
	}
	if cam.Pitch() != -MaxPitch {
		t.Errorf("pitch = %f, want %f", cam.Pitch(), float32(-MaxPitch))
	}
}

func TestPitchBoundedUnderRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cam := NewFlyCamera(mgl32.Vec3{}, 0, 0)

	for i := 0; i < 10000; i++ {
		dx := float32(rng.NormFloat64() * 300)
		dy := float32(rng.NormFloat64() * 300)
		cam.ProcessMouseMovement(dx, dy)

		if p := cam.Pitch(); p > MaxPitch || p < -MaxPitch {
			t.Fatalf("step %d: pitch %f out of range", i, p)
		}
	}
}

func TestBasisStaysOrthonormal(t *testing.T) {
	cam := NewFlyCamera(mgl32.Vec3{}, 0, 0)
	moves := [][2]float32{{10, 5}, {-300, 40}, {1000, 2000}, {7, -9000}, {0.5, 0.5}}

	for _, m := range moves {
		cam.ProcessMouseMovement(m[0], m[1])

		f, r, u := cam.Front(), cam.Right(), cam.Up()
		for name, v := range map[string]mgl32.Vec3{"front": f, "right": r, "up": u} {
			if !near(v.Len(), 1) {
				t.Errorf("after %v: %s length = %f", m, name, v.Len())
			}
		}
		if !near(f.Dot(r), 0) || !near(f.Dot(u), 0) || !near(r.Dot(u), 0) {
			t.Errorf("after %v: basis not orthogonal", m)
		}
		if !near(r[1], 0) {
			t.Errorf("after %v: right has Y component %f", m, r[1])
		}
	}
}

func TestKeyboardNeverChangesY(t *testing.T) {
	cam := NewFlyCamera(mgl32.Vec3{5, 42, 5}, 30, 60)

	all := []Movement{
		MoveForward, MoveBackward, MoveLeft, MoveRight,
		MoveForward | MoveRight, MoveBackward | MoveLeft,
	}
	for _, dirs := range all {
		cam.ProcessKeyboard(dirs, 0.25)
		if cam.Position[1] != 42 {
			t.Fatalf("dirs %b: Y = %f, want 42", dirs, cam.Position[1])
		}
	}
}

func TestKeyboardMovesAlongFlattenedFront(t *testing.T) {
	// Looking steeply down still walks at full speed across the ground.
	cam := NewFlyCamera(mgl32.Vec3{0, 0, 0}, -90, -80)
	cam.ProcessKeyboard(MoveForward, 0.5)

	if !near(cam.Position[0], 0) || !near(cam.Position[2], -10) {
		t.Errorf("position = %v, want (0, 0, -10)", cam.Position)
	}

	cam.ProcessKeyboard(MoveRight, 0.5)
	if !near(cam.Position[0], 10) {
		t.Errorf("x = %f, want 10", cam.Position[0])
	}
}

func TestOpposingKeysCancel(t *testing.T) {
	cam := NewFlyCamera(mgl32.Vec3{1, 2, 3}, 10, 0)
	cam.ProcessKeyboard(MoveForward|MoveBackward|MoveLeft|MoveRight, 1)

	if !near(cam.Position[0], 1) || !near(cam.Position[2], 3) {
		t.Errorf("position = %v, want unchanged", cam.Position)
	}
}

func TestMouseSensitivity(t *testing.T) {
	cam := NewFlyCamera(mgl32.Vec3{}, -90, 0)
	cam.ProcessMouseMovement(100, 50)

	if !near(cam.Yaw(), -80) {
		t.Errorf("yaw = %f, want -80", cam.Yaw())
	}
	if !near(cam.Pitch(), 5) {
		t.Errorf("pitch = %f, want 5", cam.Pitch())
	}
}

func TestSetOrientationClamps(t *testing.T) {
	cam := NewFlyCamera(mgl32.Vec3{}, 0, 0)
	cam.SetOrientation(45, 120)
	if cam.Pitch() != MaxPitch {
		t.Errorf("pitch = %f, want %f", cam.Pitch(), float32(MaxPitch))
	}

	cam.SetOrientation(0, float32(math.NaN()))
	if cam.Pitch() != 0 {
		t.Errorf("NaN pitch = %f, want 0", cam.Pitch())
	}
}

func TestViewMatrixMapsFrontToNegativeZ(t *testing.T) {
	cam := NewFlyCamera(mgl32.Vec3{3, 4, 5}, 20, -30)
	view := cam.ViewMatrix()

	target := cam.Position.Add(cam.Front())
	p := view.Mul4x1(target.Vec4(1))
	if !near(p[0], 0) || !near(p[1], 0) || !near(p[2], -1) {
		t.Errorf("view * (pos+front) = %v, want (0, 0, -1)", p)
	}

	eye := view.Mul4x1(cam.Position.Vec4(1))
	if !near(eye.Vec3().Len(), 0) {
		t.Errorf("view * pos = %v, want origin", eye)
	}
}

func TestPerspectiveMatchesMathgl(t *testing.T) {
	got := Perspective(45, 1000, 600, 0.1, 1000)
	want := mgl32.Perspective(mgl32.DegToRad(45), 1000.0/600.0, 0.1, 1000)

	if !got.ApproxEqual(want) {
		t.Errorf("Perspective = %v, want %v", got, want)
	}
}

func TestPerspectiveAspectFollowsSize(t *testing.T) {
	wide := Perspective(45, 1600, 400, 0.1, 1000)
	square := Perspective(45, 400, 400, 0.1, 1000)

	// X scale is f/aspect, so a wider viewport shrinks it.
	if wide[0] >= square[0] {
		t.Errorf("wide x-scale %f should be below square %f", wide[0], square[0])
	}
	if wide[5] != square[5] {
		t.Errorf("y-scale should not depend on aspect: %f vs %f", wide[5], square[5])
	}
}

func TestPerspectiveZeroSize(t *testing.T) {
	m := Perspective(45, 800, 0, 0.1, 1000)
	for i, v := range m {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("element %d = %f", i, v)
		}
	}
}
