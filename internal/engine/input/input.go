// Package input folds window-system events into per-frame input state.
//
// Window backends translate their native events into Event values and the
// render loop hands one frame's worth of them to State.Apply. Nothing in
// this package talks to SDL or GLFW directly.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Key is a backend-independent key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyF12
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "unknown",
	KeyW:       "W",
	KeyA:       "A",
	KeyS:       "S",
	KeyD:       "D",
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeyEscape:  "Escape",
	KeyF12:     "F12",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "invalid"
	}
	return keyNames[k]
}

// Event is a translated window-system event.
type Event struct {
	Type   EventType
	Key    Key
	Repeat bool // key auto-repeat

	// Window size for EventWindowResize.
	Width  int
	Height int

	// Cursor position for absolute mouse moves, motion for relative ones.
	X, Y     float32
	DX, DY   float32
	Relative bool
}

// MouseDelta is one look delta in camera convention: positive DY looks up.
type MouseDelta struct {
	DX, DY float32
}

// State holds everything the render loop needs to know about input.
type State struct {
	pressed [keyCount]bool

	lastX, lastY float32
	firstMouse   bool
	deltas       []MouseDelta

	quit       bool
	screenshot bool
	resized    bool
	width      int
	height     int
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{
		firstMouse: true,
		deltas:     make([]MouseDelta, 0, 16),
	}
}

// Apply folds one frame of events, in order. Mouse deltas, resize and
// screenshot requests from the previous frame are discarded first; held
// keys and the quit flag persist.
func (s *State) Apply(events []Event) {
	s.deltas = s.deltas[:0]
	s.resized = false
	s.screenshot = false

	for _, e := range events {
		switch e.Type {
		case EventQuit:
			s.quit = true

		case EventWindowResize:
			s.resized = true
			s.width, s.height = e.Width, e.Height

		case EventKeyDown:
			s.setKey(e.Key, true)
			if e.Repeat {
				continue
			}
			switch e.Key {
			case KeyEscape:
				s.quit = true
			case KeyF12:
				s.screenshot = true
			}

		case EventKeyUp:
			s.setKey(e.Key, false)

		case EventMouseMove:
			s.mouseMove(e)
		}
	}
}

func (s *State) mouseMove(e Event) {
	if e.Relative {
		s.deltas = append(s.deltas, MouseDelta{DX: e.DX, DY: -e.DY})
		return
	}

	if s.firstMouse {
		s.lastX, s.lastY = e.X, e.Y
		s.firstMouse = false
		return
	}

	// Window Y grows downward.
	dx := e.X - s.lastX
	dy := s.lastY - e.Y
	s.lastX, s.lastY = e.X, e.Y
	s.deltas = append(s.deltas, MouseDelta{DX: dx, DY: dy})
}

func (s *State) setKey(k Key, down bool) {
	if k > KeyUnknown && k < keyCount {
		s.pressed[k] = down
	}
}

// Pressed reports whether k is currently held.
func (s *State) Pressed(k Key) bool {
	if k <= KeyUnknown || k >= keyCount {
		return false
	}
	return s.pressed[k]
}

// AnyPressed reports whether any of keys is held.
func (s *State) AnyPressed(keys ...Key) bool {
	for _, k := range keys {
		if s.Pressed(k) {
			return true
		}
	}
	return false
}

// MouseDeltas returns this frame's look deltas in arrival order.
// The slice is reused by the next Apply.
func (s *State) MouseDeltas() []MouseDelta {
	return s.deltas
}

// QuitRequested reports whether Escape or a window close was seen.
func (s *State) QuitRequested() bool {
	return s.quit
}

// ScreenshotRequested reports whether F12 was pressed this frame.
func (s *State) ScreenshotRequested() bool {
	return s.screenshot
}

// Resized returns the latest window size if it changed this frame.
func (s *State) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}

// ResetMouse makes the next absolute move only record the cursor position.
// Backends call this after warping or recapturing the cursor.
func (s *State) ResetMouse() {
	s.firstMouse = true
}
