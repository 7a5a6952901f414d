package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/engine/input"
	"github.com/Faultbox/terrainview/internal/logger"
)

var sdlKeys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_UP:     input.KeyUp,
	sdl.SCANCODE_DOWN:   input.KeyDown,
	sdl.SCANCODE_LEFT:   input.KeyLeft,
	sdl.SCANCODE_RIGHT:  input.KeyRight,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyF12,
}

// sdlWindow wraps an SDL2 window and its OpenGL context.
type sdlWindow struct {
	win *sdl.Window
	ctx sdl.GLContext
	log *zap.Logger
}

func newSDLWindow(cfg Config) (*sdlWindow, error) {
	log := logger.Named("window")

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Attributes must be set before the window exists.
	// 4.1 core is the highest macOS supports.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	win, err := sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	// Relative mode hides the cursor and reports raw motion.
	sdl.SetRelativeMouseMode(true)
	if !sdl.GetRelativeMouseMode() {
		log.Warn("relative mouse mode unavailable")
	}

	w := &sdlWindow{win: win, ctx: ctx, log: log}
	pw, ph := w.Size()
	log.Info("window created",
		zap.String("backend", BackendSDL),
		zap.String("title", cfg.Title),
		zap.Int("width", pw),
		zap.Int("height", ph),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

func (w *sdlWindow) PollEvents(dst []input.Event) []input.Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			dst = append(dst, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				width, height := w.Size()
				dst = append(dst, input.Event{
					Type:   input.EventWindowResize,
					Width:  width,
					Height: height,
				})
			}

		case *sdl.KeyboardEvent:
			key, ok := sdlKeys[e.Keysym.Scancode]
			if !ok {
				continue
			}
			typ := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = input.EventKeyUp
			}
			dst = append(dst, input.Event{Type: typ, Key: key, Repeat: e.Repeat != 0})

		case *sdl.MouseMotionEvent:
			dst = append(dst, input.Event{
				Type:     input.EventMouseMove,
				Relative: true,
				DX:       float32(e.XRel),
				DY:       float32(e.YRel),
			})
		}
	}
	return dst
}

func (w *sdlWindow) SwapBuffers() {
	w.win.GLSwap()
}

func (w *sdlWindow) Size() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *sdlWindow) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *sdlWindow) Close() {
	w.log.Info("closing window")

	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
}
