package viewer

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrainview/internal/config"
	"github.com/Faultbox/terrainview/internal/engine/debug"
	"github.com/Faultbox/terrainview/internal/engine/input"
	"github.com/Faultbox/terrainview/internal/engine/terrain"
	"github.com/Faultbox/terrainview/internal/engine/texture"
	"github.com/Faultbox/terrainview/internal/engine/ui"
	"github.com/Faultbox/terrainview/internal/logger"
)

func TestInitError(t *testing.T) {
	cause := errors.New("no display")
	var err error = &InitError{Stage: "window", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
	var ie *InitError
	if !errors.As(err, &ie) || ie.Stage != "window" {
		t.Errorf("errors.As = %v", ie)
	}
	if msg := err.Error(); !strings.Contains(msg, "window") || !strings.Contains(msg, "no display") {
		t.Errorf("message = %q", msg)
	}
}

func TestNewMissingHeightmap(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.Heightmap = filepath.Join(t.TempDir(), "missing.png")

	_, err := New(cfg)
	var le *texture.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *texture.LoadError", err)
	}
	if le.Path != cfg.Terrain.Heightmap {
		t.Errorf("path = %s", le.Path)
	}
}

func TestLoadTextureFallback(t *testing.T) {
	cfg := config.Default()
	cfg.Terrain.Texture = filepath.Join(t.TempDir(), "missing.png")
	a := &App{cfg: cfg, log: logger.Named("viewer")}

	if _, err := a.loadTexture(); err == nil {
		t.Fatal("expected error without fallback")
	} else {
		var le *texture.LoadError
		if !errors.As(err, &le) {
			t.Errorf("err = %v, want *texture.LoadError", err)
		}
	}

	cfg.Terrain.TextureFallback = true
	pix, err := a.loadTexture()
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if pix.Width != 64 || pix.Height != 64 || pix.Channels != 3 {
		t.Errorf("placeholder = %dx%d/%d", pix.Width, pix.Height, pix.Channels)
	}
}

func TestLightFromConfig(t *testing.T) {
	mesh := flatMesh(t, 9, 0)
	lc := config.Default().Light

	l := lightFromConfig(lc, mesh)
	if want := (mgl32.Vec3{9, 100, 4.5}); l.Position != want {
		t.Errorf("default position = %v, want %v", l.Position, want)
	}
	if want := (mgl32.Vec3{1, 1, 1}); l.Color != want {
		t.Errorf("color = %v, want %v", l.Color, want)
	}

	lc.Position = []float32{1, 2, 3}
	if l := lightFromConfig(lc, mesh); l.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("configured position = %v", l.Position)
	}
}

func TestNewControllerFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Speed = 5
	cfg.Camera.Sensitivity = 0.5

	c, err := newController(cfg, flatMesh(t, 4, 0))
	if err != nil {
		t.Fatal(err)
	}
	if c.Camera.Speed != 5 || c.Camera.Sensitivity != 0.5 {
		t.Errorf("speed/sensitivity = %f/%f", c.Camera.Speed, c.Camera.Sensitivity)
	}
	if c.Camera.Yaw() != -90 {
		t.Errorf("yaw = %f", c.Camera.Yaw())
	}

	cfg.Camera.FollowMode = "hover"
	if _, err := newController(cfg, flatMesh(t, 4, 0)); err == nil {
		t.Error("expected error for unknown follow mode")
	}
}

type fakeWindow struct {
	events []input.Event
	title  string
	swaps  int
}

func (w *fakeWindow) PollEvents(dst []input.Event) []input.Event {
	dst = append(dst, w.events...)
	w.events = nil
	return dst
}
func (w *fakeWindow) SwapBuffers()          { w.swaps++ }
func (w *fakeWindow) Size() (int, int)      { return 800, 600 }
func (w *fakeWindow) SetTitle(title string) { w.title = title }
func (w *fakeWindow) Close()                {}

func newTestApp(t *testing.T, mesh *terrain.Mesh) (*App, *fakeWindow) {
	t.Helper()
	cfg := config.Default()
	controller, err := newController(cfg, mesh)
	if err != nil {
		t.Fatal(err)
	}
	win := &fakeWindow{}
	return &App{
		cfg:        cfg,
		log:        logger.Named("viewer"),
		mesh:       mesh,
		window:     win,
		controller: controller,
		stats:      debug.NewFrameStats(time.Second),
	}, win
}

func TestOverlayInfo(t *testing.T) {
	// 4x4 samples at 0.5: ground at 10, 3x3 quads of two triangles.
	a, _ := newTestApp(t, flatMesh(t, 4, 0.5))
	a.controller.Camera.Position = mgl32.Vec3{1, 12, 2}
	a.stats.Tick(1)

	info := a.overlayInfo()
	if info.FPS != 1 || info.FrameTime != 1000 {
		t.Errorf("fps/frame = %v/%v", info.FPS, info.FrameTime)
	}
	if info.Position != (mgl32.Vec3{1, 12, 2}) {
		t.Errorf("position = %v", info.Position)
	}
	if info.Yaw != a.controller.Camera.Yaw() || info.Pitch != a.controller.Camera.Pitch() {
		t.Errorf("yaw/pitch = %v/%v", info.Yaw, info.Pitch)
	}
	if !approxEqual(info.Ground, 10, 1e-5) {
		t.Errorf("ground = %v, want 10", info.Ground)
	}
	if info.GridWidth != 4 || info.GridDepth != 4 || info.Triangles != 18 {
		t.Errorf("grid %dx%d, %d triangles", info.GridWidth, info.GridDepth, info.Triangles)
	}
}

func TestFrameDoneTitleFallback(t *testing.T) {
	a, win := newTestApp(t, flatMesh(t, 3, 0))
	a.cfg.Render.ShowFPS = true

	a.frameDone(0.5)
	if win.title != "" {
		t.Errorf("title set before a full second: %q", win.title)
	}
	a.frameDone(0.5)
	if want := a.cfg.Window.Title + " - 2 FPS"; win.title != want {
		t.Errorf("title = %q, want %q", win.title, want)
	}

	// With the overlay on screen the title stays put.
	win.title = ""
	a.overlay = ui.NewDebugOverlay(true)
	a.frameDone(1)
	if win.title != "" {
		t.Errorf("title changed with overlay: %q", win.title)
	}
}

func TestFrameStopsOnEscapeBeforeDrawing(t *testing.T) {
	a, win := newTestApp(t, flatMesh(t, 3, 0))
	a.lastTime = time.Now()
	win.events = []input.Event{{Type: input.EventKeyDown, Key: input.KeyEscape}}

	if a.frame() {
		t.Fatal("frame should report exit after Escape")
	}
	if win.swaps != 0 {
		t.Errorf("swapped %d times after exit", win.swaps)
	}
}
