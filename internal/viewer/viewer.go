// Package viewer runs the terrain viewer: it loads the terrain, opens the
// window and drives the frame loop.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/config"
	"github.com/Faultbox/terrainview/internal/engine/camera"
	"github.com/Faultbox/terrainview/internal/engine/debug"
	"github.com/Faultbox/terrainview/internal/engine/framebuffer"
	"github.com/Faultbox/terrainview/internal/engine/input"
	"github.com/Faultbox/terrainview/internal/engine/lighting"
	"github.com/Faultbox/terrainview/internal/engine/renderer"
	"github.com/Faultbox/terrainview/internal/engine/scene"
	"github.com/Faultbox/terrainview/internal/engine/terrain"
	"github.com/Faultbox/terrainview/internal/engine/texture"
	"github.com/Faultbox/terrainview/internal/engine/ui"
	"github.com/Faultbox/terrainview/internal/engine/window"
	"github.com/Faultbox/terrainview/internal/logger"
)

// App is a running viewer instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	mesh       *terrain.Mesh
	window     window.Window
	renderer   *renderer.Renderer
	scene      *scene.Scene
	controller *Controller
	screenshot *debug.ScreenshotCapture
	stats      *debug.FrameStats

	// Set for the imgui backend, which owns the frame loop. The terrain
	// is drawn into target and shown as the window background.
	host    *ui.Backend
	target  *framebuffer.Framebuffer
	overlay *ui.DebugOverlay

	events   []input.Event
	lastTime time.Time
}

// New loads the terrain and texture, then creates the window, GL context
// and GPU resources. Asset failures return *texture.LoadError; window and
// GL failures return *InitError.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    logger.Named("viewer"),
		stats:  debug.NewFrameStats(time.Second),
		events: make([]input.Event, 0, 64),
	}

	a.log.Info("initializing viewer",
		zap.String("heightmap", cfg.Terrain.Heightmap),
		zap.String("texture", cfg.Terrain.Texture),
		zap.String("backend", cfg.Window.Backend),
	)

	grid, err := terrain.LoadHeightmap(cfg.Terrain.Heightmap)
	if err != nil {
		return nil, err
	}
	a.mesh, err = terrain.BuildMesh(grid, terrain.MeshOptions{
		HeightScale:    cfg.Terrain.HeightScale,
		TexRepeat:      cfg.Terrain.TexRepeat,
		NormalStrength: cfg.Terrain.NormalStrength,
	})
	if err != nil {
		return nil, fmt.Errorf("building terrain mesh: %w", err)
	}
	a.log.Info("terrain built",
		zap.Int("width", a.mesh.Width),
		zap.Int("depth", a.mesh.Height),
		zap.Int("vertices", len(a.mesh.Vertices)),
		zap.Int("indices", len(a.mesh.Indices)),
	)

	pixels, err := a.loadTexture()
	if err != nil {
		return nil, err
	}

	a.controller, err = newController(cfg, a.mesh)
	if err != nil {
		return nil, err
	}

	if err := a.openWindow(); err != nil {
		return nil, &InitError{Stage: "window", Err: err}
	}

	// Drawable size can differ from the requested size on HiDPI or fullscreen.
	width, height := a.window.Size()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: mgl32.Vec3(cfg.Render.ClearColor),
		Wireframe:  cfg.Render.Wireframe,
		FOV:        cfg.Camera.FOV,
		Near:       cfg.Camera.Near,
		Far:        cfg.Camera.Far,
	})
	if err != nil {
		a.Close()
		return nil, &InitError{Stage: "opengl", Err: err}
	}

	a.scene, err = scene.New(scene.Config{
		Mesh:          a.mesh,
		Texture:       pixels,
		Light:         lightFromConfig(cfg.Light, a.mesh),
		SphereRadius:  cfg.Light.SphereRadius,
		SphereSectors: cfg.Light.SphereSectors,
		SphereStacks:  cfg.Light.SphereStacks,
		SphereScale:   cfg.Light.SphereScale,
	})
	if err != nil {
		a.Close()
		return nil, &InitError{Stage: "scene", Err: err}
	}

	if a.host != nil {
		a.target, err = framebuffer.New(width, height)
		if err != nil {
			a.Close()
			return nil, &InitError{Stage: "framebuffer", Err: err}
		}
		a.overlay = ui.NewDebugOverlay(cfg.Render.ShowFPS)
		a.host.OnShutdown(a.releaseGPU)
	}

	a.screenshot = debug.NewScreenshotCapture(cfg.Render.ScreenshotDir, "terrain")

	a.log.Info("viewer initialized")
	return a, nil
}

func (a *App) openWindow() error {
	wc := a.cfg.Window
	if wc.Backend == window.BackendImGui {
		host, err := ui.NewBackend(ui.Config{
			Title:      wc.Title,
			Width:      wc.Width,
			Height:     wc.Height,
			Fullscreen: wc.Fullscreen,
			ClearColor: a.cfg.Render.ClearColor,
		})
		if err != nil {
			return err
		}
		a.host, a.window = host, host
		return nil
	}

	win, err := window.New(window.Config{
		Title:      wc.Title,
		Width:      wc.Width,
		Height:     wc.Height,
		Fullscreen: wc.Fullscreen,
		VSync:      wc.VSync,
		Backend:    wc.Backend,
	})
	if err != nil {
		return err
	}
	a.window = win
	return nil
}

func (a *App) loadTexture() (*texture.PixelData, error) {
	img, err := texture.LoadFile(a.cfg.Terrain.Texture)
	if err == nil {
		return texture.Pack(img), nil
	}
	if !a.cfg.Terrain.TextureFallback {
		return nil, err
	}
	a.log.Warn("texture unavailable, using placeholder", zap.Error(err))
	return texture.Pack(placeholderTexture()), nil
}

// placeholderTexture is a green checkerboard used when the texture file
// cannot be loaded and fallback is enabled.
func placeholderTexture() *image.RGBA {
	return texture.Checkerboard(64, 8,
		color.RGBA{R: 96, G: 140, B: 64, A: 255},
		color.RGBA{R: 72, G: 110, B: 48, A: 255},
	)
}

func newController(cfg *config.Config, mesh *terrain.Mesh) (*Controller, error) {
	cam := camera.NewFlyCamera(mgl32.Vec3(cfg.Camera.Position), cfg.Camera.Yaw, cfg.Camera.Pitch)
	cam.Speed = cfg.Camera.Speed
	cam.Sensitivity = cfg.Camera.Sensitivity

	ground, err := NewGroundFollower(terrain.NewSampler(mesh), GroundConfig{
		EyeOffset:       cfg.Camera.EyeOffset,
		Mode:            FollowMode(cfg.Camera.FollowMode),
		Rate:            cfg.Camera.FollowRate,
		SpringFrequency: cfg.Camera.SpringFrequency,
		SpringDamping:   cfg.Camera.SpringDamping,
	})
	if err != nil {
		return nil, err
	}
	return NewController(cam, ground), nil
}

// lightFromConfig uses the configured position, or (W, 100, H/2) when none
// is set.
func lightFromConfig(lc config.LightConfig, mesh *terrain.Mesh) *lighting.PointLight {
	pos := lighting.DefaultPosition(mesh.Width, mesh.Height)
	if len(lc.Position) == 3 {
		pos = mgl32.Vec3{lc.Position[0], lc.Position[1], lc.Position[2]}
	}
	return lighting.NewPointLight(pos, mgl32.Vec3(lc.Color))
}

// Run drives the frame loop until Escape or a window close.
func (a *App) Run() error {
	a.lastTime = time.Now()
	a.log.Info("starting render loop", zap.String("backend", a.cfg.Window.Backend))

	if a.host != nil {
		a.host.Run(a.hostedFrame)
		return nil
	}
	for a.frame() {
	}
	return nil
}

// frame runs one iteration on a window the viewer presents itself. It
// reports false once exit was requested.
func (a *App) frame() bool {
	dt := a.tick()
	if !a.update(a.window.PollEvents(a.events[:0]), dt) {
		return false
	}

	a.render()
	// Read before the swap, while the back buffer still holds this frame.
	if a.controller.Input.ScreenshotRequested() {
		a.saveScreenshot()
	}
	a.window.SwapBuffers()

	a.frameDone(dt)
	return true
}

// hostedFrame is the frame function handed to the imgui backend. The
// terrain goes to the offscreen target, so screenshots never include the
// overlay.
func (a *App) hostedFrame() {
	dt := a.tick()
	if !a.update(a.host.PollEvents(a.events[:0]), dt) {
		a.host.RequestClose()
		return
	}

	a.target.Bind()
	a.render()
	if a.controller.Input.ScreenshotRequested() {
		a.saveScreenshot()
	}
	a.target.Unbind()

	a.host.DrawScene(a.target.ColorTexture())
	a.frameDone(dt)
	a.overlay.Render(a.overlayInfo())
}

func (a *App) tick() float32 {
	now := time.Now()
	dt := float32(now.Sub(a.lastTime).Seconds())
	a.lastTime = now
	return dt
}

// update applies one frame of events. It reports false when the viewer
// should exit.
func (a *App) update(events []input.Event, dt float32) bool {
	a.events = events
	a.controller.Step(events, dt)

	if w, h, ok := a.controller.Input.Resized(); ok {
		a.renderer.Resize(w, h)
		if a.target != nil {
			a.target.Resize(w, h)
		}
	}

	if a.controller.ShouldQuit() {
		a.log.Info("exit requested")
		return false
	}
	return true
}

// frameDone feeds the frame counter. Without an overlay the FPS goes to
// the window title when show_fps is set.
func (a *App) frameDone(dt float32) {
	if !a.stats.Tick(dt) {
		return
	}
	a.log.Debug("fps",
		zap.Float64("fps", a.stats.FPS()),
		zap.Float64("frame_ms", a.stats.FrameTime()),
		zap.Reflect("camera", a.controller.Camera.Position),
	)
	if a.cfg.Render.ShowFPS && a.overlay == nil {
		a.window.SetTitle(fmt.Sprintf("%s - %.0f FPS", a.cfg.Window.Title, a.stats.FPS()))
	}
}

func (a *App) overlayInfo() debug.OverlayInfo {
	cam := a.controller.Camera
	info := debug.OverlayInfo{
		FPS:       a.stats.FPS(),
		FrameTime: a.stats.FrameTime(),
		Position:  cam.Position,
		Yaw:       cam.Yaw(),
		Pitch:     cam.Pitch(),
		GridWidth: a.mesh.Width,
		GridDepth: a.mesh.Height,
		Triangles: len(a.mesh.Indices) / 3,
	}
	if a.controller.Ground != nil {
		info.Ground = a.controller.Ground.SurfaceAt(cam.Position[0], cam.Position[2])
	}
	return info
}

func (a *App) render() {
	cam := a.controller.Camera
	a.renderer.Begin()
	a.scene.Render(cam.ViewMatrix(), a.renderer.Projection(), cam.Position)
}

func (a *App) saveScreenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.screenshot.CaptureFromPixels(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// releaseGPU deletes GL objects. It must run while the context is
// current; the imgui backend calls it just before destroying its context.
func (a *App) releaseGPU() {
	if a.target != nil {
		a.target.Destroy()
		a.target = nil
	}
	if a.scene != nil {
		a.scene.Destroy()
		a.scene = nil
	}
	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	a.releaseGPU()
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
	a.host = nil
}
