// Package renderer owns global OpenGL state: initialization, viewport,
// clearing and the projection matrix.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/engine/camera"
	"github.com/Faultbox/terrainview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor mgl32.Vec3
	Wireframe  bool

	FOV  float32 // degrees
	Near float32
	Far  float32
}

// Renderer handles frame-level OpenGL state.
type Renderer struct {
	config Config
	log    *zap.Logger
}

// New initializes OpenGL.
// Must be called after the OpenGL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{config: cfg, log: logger.Named("renderer")}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	if cfg.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close logs shutdown. The renderer owns no GL objects.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
}

// Resize sets the viewport to the new drawable size.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Projection returns the perspective matrix for the current viewport.
func (r *Renderer) Projection() mgl32.Mat4 {
	return camera.Perspective(r.config.FOV, r.config.Width, r.config.Height, r.config.Near, r.config.Far)
}

// Begin starts a new frame. Clear colour and viewport are set every frame
// because the ImGui host resets both between frames.
func (r *Renderer) Begin() {
	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels returns the back buffer as tightly packed RGBA rows,
// bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
