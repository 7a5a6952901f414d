package window

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/engine/input"
	"github.com/Faultbox/terrainview/internal/logger"
)

var glfwKeys = map[glfw.Key]input.Key{
	glfw.KeyW:      input.KeyW,
	glfw.KeyA:      input.KeyA,
	glfw.KeyS:      input.KeyS,
	glfw.KeyD:      input.KeyD,
	glfw.KeyUp:     input.KeyUp,
	glfw.KeyDown:   input.KeyDown,
	glfw.KeyLeft:   input.KeyLeft,
	glfw.KeyRight:  input.KeyRight,
	glfw.KeyEscape: input.KeyEscape,
	glfw.KeyF12:    input.KeyF12,
}

// glfwWindow queues events from GLFW callbacks so the render loop can
// poll them like SDL events.
type glfwWindow struct {
	win     *glfw.Window
	pending []input.Event
	log     *zap.Logger
}

func newGLFWWindow(cfg Config) (*glfwWindow, error) {
	log := logger.Named("window")

	log.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwInit failed: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	width, height := cfg.Width, cfg.Height
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		w, h, err := fullscreenSize(monitor)
		if err != nil {
			glfw.Terminate()
			return nil, err
		}
		width, height = w, h
	}

	win, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwCreateWindow failed: %w", err)
	}
	win.MakeContextCurrent()

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		win.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}

	w := &glfwWindow{
		win:     win,
		pending: make([]input.Event, 0, 32),
		log:     log,
	}
	w.installCallbacks()

	pw, ph := w.Size()
	log.Info("window created",
		zap.String("backend", BackendGLFW),
		zap.String("title", cfg.Title),
		zap.Int("width", pw),
		zap.Int("height", ph),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// fullscreenSize returns the current video mode size of monitor.
// GetPrimaryMonitor returns nil when no monitor is connected.
func fullscreenSize(monitor *glfw.Monitor) (int, int, error) {
	if monitor == nil {
		return 0, 0, errors.New("fullscreen requested but no monitor is connected")
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return 0, 0, errors.New("fullscreen requested but the primary monitor has no video mode")
	}
	return mode.Width, mode.Height, nil
}

func (w *glfwWindow) installCallbacks() {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k, ok := glfwKeys[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyDown, Key: k})
		case glfw.Repeat:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyDown, Key: k, Repeat: true})
		case glfw.Release:
			w.pending = append(w.pending, input.Event{Type: input.EventKeyUp, Key: k})
		}
	})

	// With the cursor disabled GLFW reports a virtual, unbounded position,
	// so absolute moves are enough for mouse look.
	w.win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.pending = append(w.pending, input.Event{
			Type: input.EventMouseMove,
			X:    float32(xpos),
			Y:    float32(ypos),
		})
	})

	// Framebuffer size, not window size: they differ on high-DPI displays.
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pending = append(w.pending, input.Event{
			Type:   input.EventWindowResize,
			Width:  width,
			Height: height,
		})
	})

	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.pending = append(w.pending, input.Event{Type: input.EventQuit})
	})
}

func (w *glfwWindow) PollEvents(dst []input.Event) []input.Event {
	glfw.PollEvents()

	dst = append(dst, w.pending...)
	w.pending = w.pending[:0]
	return dst
}

func (w *glfwWindow) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *glfwWindow) Size() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *glfwWindow) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *glfwWindow) Close() {
	w.log.Info("closing window")

	w.win.Destroy()
	glfw.Terminate()
}
