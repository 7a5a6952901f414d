// Package ui hosts the viewer in a Dear ImGui window and draws the debug
// overlay on top of the terrain.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/engine/input"
	"github.com/Faultbox/terrainview/internal/logger"
)

// imguiKeys matches hostKeys index for index.
var imguiKeys = [len(hostKeys)]imgui.Key{
	imgui.KeyW, imgui.KeyA, imgui.KeyS, imgui.KeyD,
	imgui.KeyUpArrow, imgui.KeyDownArrow, imgui.KeyLeftArrow, imgui.KeyRightArrow,
	imgui.KeyEscape, imgui.KeyF12,
}

// Config holds host window settings.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	ClearColor [3]float32
}

// Backend is a window owned by the cimgui-go SDL backend. The backend
// drives the frame loop: the viewer hands it a frame function through Run
// and draws the terrain into an offscreen target shown by DrawScene.
//
// Backend satisfies window.Window so the viewer reads input the same way
// for every backend. Mouse look is active while the right button is held.
type Backend struct {
	backend    backend.Backend[sdlbackend.SDLWindowFlags]
	translator eventTranslator
	log        *zap.Logger
}

// NewBackend creates the window and its GL context. OpenGL function
// pointers still have to be loaded by the caller.
func NewBackend(cfg Config) (*Backend, error) {
	b := &Backend{log: logger.Named("ui")}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	if cfg.Fullscreen {
		b.log.Warn("fullscreen is not supported by the imgui backend, opening a window")
	}

	c := cfg.ClearColor
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	b.translator.width, b.translator.height = b.Size()
	b.log.Info("imgui window created",
		zap.Int("width", b.translator.width),
		zap.Int("height", b.translator.height),
	)
	return b, nil
}

// Run calls frame once per frame until RequestClose or the window is
// closed. ImGui calls are valid only inside frame.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// OnShutdown registers fn to run after the last frame, while the GL
// context is still current.
func (b *Backend) OnShutdown(fn func()) {
	b.backend.SetBeforeDestroyContextHook(fn)
}

// RequestClose ends Run after the current frame.
func (b *Backend) RequestClose() {
	b.backend.SetShouldClose(true)
}

// PollEvents reports this frame's input changes. Call it from the frame
// function.
func (b *Backend) PollEvents(dst []input.Event) []input.Event {
	var in frameInput
	for i, key := range imguiKeys {
		in.down[i] = imgui.IsKeyDown(key)
	}
	in.look = imgui.IsMouseDown(imgui.MouseButtonRight)
	delta := imgui.CurrentIO().MouseDelta()
	in.dx, in.dy = delta.X, delta.Y
	in.width, in.height = b.Size()
	return b.translator.translate(in, dst)
}

// SwapBuffers is a no-op; the backend presents after the frame function
// returns.
func (b *Backend) SwapBuffers() {}

// Size returns the window size.
func (b *Backend) Size() (width, height int) {
	w, h := b.backend.DisplaySize()
	return int(w), int(h)
}

// SetTitle updates the window title.
func (b *Backend) SetTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Close is a no-op; the backend tears the window down when Run returns.
func (b *Backend) Close() {
	b.log.Debug("imgui window closed")
}

// DrawScene fills the work area with the colour texture of an offscreen
// target. The texture is flipped because GL rows run bottom-up.
func (b *Backend) DrawScene(textureID uint32) {
	if textureID == 0 {
		return
	}

	viewport := imgui.MainViewport()
	pos, size := viewport.WorkPos(), viewport.WorkSize()
	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Terrain", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
		imgui.ImageV(*texRef,
			size,
			imgui.NewVec2(0, 1),
			imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()
}
