package debug

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameStats averages the frame rate over a fixed window.
type FrameStats struct {
	window  float64 // seconds
	elapsed float64
	frames  int

	fps       float64
	frameTime float64 // ms
}

// NewFrameStats creates stats that refresh their average once per window.
func NewFrameStats(window time.Duration) *FrameStats {
	return &FrameStats{window: window.Seconds()}
}

// Tick records one frame that took dt seconds. It reports true when the
// average was refreshed by this frame.
func (s *FrameStats) Tick(dt float32) bool {
	if dt < 0 {
		dt = 0
	}
	s.frameTime = float64(dt) * 1000
	s.frames++
	s.elapsed += float64(dt)
	if s.elapsed < s.window || s.elapsed <= 0 {
		return false
	}
	s.fps = float64(s.frames) / s.elapsed
	s.frames = 0
	s.elapsed = 0
	return true
}

// FPS returns the frame rate of the last completed window.
func (s *FrameStats) FPS() float64 { return s.fps }

// FrameTime returns the duration of the last frame in milliseconds.
func (s *FrameStats) FrameTime() float64 { return s.frameTime }

// OverlayInfo is what the debug overlay shows for one frame.
type OverlayInfo struct {
	FPS       float64
	FrameTime float64 // ms

	Position   mgl32.Vec3
	Yaw, Pitch float32
	Ground     float32 // terrain height under the camera

	GridWidth, GridDepth int
	Triangles            int
}

// FPSLine is the headline row of the overlay.
func (o OverlayInfo) FPSLine() string {
	return fmt.Sprintf("FPS: %.1f (%.2f ms)", o.FPS, o.FrameTime)
}

// Lines returns the rows shown below the FPS line.
func (o OverlayInfo) Lines() []string {
	return []string{
		fmt.Sprintf("Pos: %.1f, %.1f, %.1f", o.Position[0], o.Position[1], o.Position[2]),
		fmt.Sprintf("Yaw: %.1f  Pitch: %.1f", o.Yaw, o.Pitch),
		fmt.Sprintf("Ground: %.2f  Eye: %.2f", o.Ground, o.Position[1]-o.Ground),
		fmt.Sprintf("Grid: %dx%d", o.GridWidth, o.GridDepth),
		fmt.Sprintf("Triangles: %d", o.Triangles),
	}
}
