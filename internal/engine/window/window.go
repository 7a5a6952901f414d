// Package window creates the OS window and OpenGL context and translates
// native events into input events.
package window

import (
	"fmt"
	"runtime"

	"github.com/Faultbox/terrainview/internal/engine/input"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Backend names accepted by New.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"

	// BackendImGui windows are owned by the ui package, which drives
	// its own frame loop.
	BackendImGui = "imgui"
)

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Backend    string
}

// Window is an OpenGL 4.1 core window with captured mouse look.
type Window interface {
	// PollEvents appends every pending event to dst and returns it.
	PollEvents(dst []input.Event) []input.Event
	SwapBuffers()
	// Size returns the drawable size in pixels.
	Size() (width, height int)
	SetTitle(title string)
	Close()
}

// New creates a window using the configured backend. An empty backend
// means SDL.
func New(cfg Config) (Window, error) {
	switch cfg.Backend {
	case "", BackendSDL:
		return newSDLWindow(cfg)
	case BackendGLFW:
		return newGLFWWindow(cfg)
	case BackendImGui:
		return nil, fmt.Errorf("window backend %q is created by ui.NewBackend", cfg.Backend)
	default:
		return nil, fmt.Errorf("unknown window backend %q", cfg.Backend)
	}
}
