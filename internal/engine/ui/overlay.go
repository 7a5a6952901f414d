package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/terrainview/internal/engine/debug"
)

// FPS thresholds for the overlay colour.
const (
	fpsLow  = 30
	fpsGood = 60
)

// DebugOverlay draws frame rate, camera and terrain stats in the top-left
// corner. It takes no input.
type DebugOverlay struct {
	Enabled bool
}

// NewDebugOverlay creates an overlay.
func NewDebugOverlay(enabled bool) *DebugOverlay {
	return &DebugOverlay{Enabled: enabled}
}

// Render draws one frame of the overlay. Call it from the frame function
// after DrawScene so it stays on top.
func (d *DebugOverlay) Render(info debug.OverlayInfo) {
	if !d.Enabled {
		return
	}

	viewport := imgui.MainViewport()
	pos := viewport.WorkPos()
	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+10, pos.Y+10))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsAlwaysAutoResize

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)

	if imgui.BeginV("##DebugOverlay", nil, flags) {
		r, g, b := fpsColor(info.FPS)
		imgui.TextColored(imgui.NewVec4(r, g, b, 1.0), info.FPSLine())
		imgui.Separator()
		for _, line := range info.Lines() {
			imgui.Text(line)
		}
	}
	imgui.End()

	imgui.PopStyleVar()
}

// fpsColor is red below 30 FPS, yellow below 60 and green otherwise.
func fpsColor(fps float64) (r, g, b float32) {
	switch {
	case fps < fpsLow:
		return 1.0, 0.2, 0.2
	case fps < fpsGood:
		return 1.0, 1.0, 0.2
	default:
		return 0.2, 1.0, 0.2
	}
}
