package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (a *App) DrawHUD() {
	cam := a.View.Camera
	lines := []string{
		fmt.Sprintf("center  %s", cam.Center),
		fmt.Sprintf("zoom    %.3f", cam.Zoom),
		fmt.Sprintf("iter    %d", a.View.MaxIterations),
		fmt.Sprintf("fps     %.0f (%.1f ms)", a.View.FPS(), a.View.FrameTime()*1000),
	}

	rl.DrawRectangle(10, 10, 300, int32(16+18*len(lines)), ColShade)
	for i, line := range lines {
		rl.DrawText(line, 18, int32(18+18*i), 16, ColText)
	}

	h := int32(a.frame.Height)
	rl.DrawText("[DRAG] PAN  [WHEEL] ZOOM  [ ] ITER  [R] RESET  [H] HUD  [ESC] QUIT", 10, h-24, 14, ColTextDim)

	a.DrawTelemetry()
}

// DrawTelemetry plots the recent zoom level above the key help line.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	box := rl.NewRectangle(10, float32(a.frame.Height-100), 240, 60)
	ys := zoomTrace(a.Telemetry, minZoomSpan)

	points := make([]rl.Vector2, len(ys))
	for i, y := range ys {
		x := float32(i) / float32(maxTelemetry-1)
		points[i] = rl.NewVector2(box.X+x*box.Width, box.Y+(1-float32(y))*box.Height)
	}

	rl.DrawRectangleRec(box, ColShade)
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("z %.2f", a.Telemetry[len(a.Telemetry)-1]),
		int32(box.X+box.Width)+6, int32(box.Y+box.Height)-14, 14, ColText)
}
