package gui

import (
	"context"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/render"
	"github.com/san-kum/mandelzoom/internal/view"
)

var (
	ColShade   = rl.NewColor(0, 0, 0, 140)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColText    = rl.NewColor(220, 220, 220, 255)
	ColTextDim = rl.NewColor(140, 140, 140, 255)
)

// Keyboard pan speed in view extents per second, zoom speed in levels per
// second, and iteration bound step.
const (
	keyPan        = 1.5
	keyZoom       = 1.0
	iterationStep = 25
	maxTelemetry  = 240
)

type App struct {
	View     *view.View
	Renderer *render.Renderer

	frame   *render.Frame
	pixels  []color.RGBA
	texture rl.Texture2D

	ShowHUD   bool
	Telemetry []float64 // zoom level per frame
}

// initWindow opens a resizable window sized to the configured frame.
func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "MandelZoom")
	rl.SetTargetFPS(int32(cfg.FrameRate))
}

// NewApp builds the view and the frame texture. The window must already be
// open.
func NewApp(cfg *config.Config, r *render.Renderer) (*App, error) {
	v, err := view.New(cfg)
	if err != nil {
		return nil, err
	}
	a := &App{
		View:      v,
		Renderer:  r,
		frame:     render.NewFrame(cfg.Width, cfg.Height, render.RGBA),
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	a.loadTexture()
	return a, nil
}

// Run opens the window and blocks until it is closed. Escape closes it.
func Run(cfg *config.Config, r *render.Renderer) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, r)
	if err != nil {
		return err
	}
	defer app.Close()

	render.Logger().Info("window opened", "width", cfg.Width, "height", cfg.Height, "workers", r.Workers())
	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		a.Update()
		if err := a.Renderer.Render(context.Background(), a.View.Scene(), a.frame); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

func (a *App) Close() {
	rl.UnloadTexture(a.texture)
}

func (a *App) loadTexture() {
	img := rl.GenImageColor(a.frame.Width, a.frame.Height, rl.Black)
	a.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

// Update reads input and advances the view by the last frame time.
func (a *App) Update() {
	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		if w > 0 && h > 0 && (w != a.frame.Width || h != a.frame.Height) {
			rl.UnloadTexture(a.texture)
			a.frame.Resize(w, h)
			a.loadTexture()
			render.Logger().Debug("window resized", "width", w, "height", h)
		}
	}

	w, h := a.frame.Width, a.frame.Height
	mouse := rl.GetMousePosition()
	mx, my := int(mouse.X), int(mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.View.Press(mx, my, w, h)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		a.View.Move(mx, my, w, h)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.View.Release()
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.View.Wheel(mx, my, w, h, float64(wheel))
	}

	dt := float64(rl.GetFrameTime())
	a.handleKeys(dt)
	a.View.Update(dt)

	a.Telemetry = append(a.Telemetry, a.View.Camera.Zoom)
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) handleKeys(dt float64) {
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		a.View.Nudge(-keyPan*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		a.View.Nudge(keyPan*dt, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		a.View.Nudge(0, -keyPan*dt)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		a.View.Nudge(0, keyPan*dt)
	}
	if rl.IsKeyDown(rl.KeyEqual) || rl.IsKeyDown(rl.KeyKpAdd) {
		a.View.NudgeZoom(keyZoom * dt)
	}
	if rl.IsKeyDown(rl.KeyMinus) || rl.IsKeyDown(rl.KeyKpSubtract) {
		a.View.NudgeZoom(-keyZoom * dt)
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		a.View.AdjustIterations(iterationStep)
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		a.View.AdjustIterations(-iterationStep)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.View.Reset()
		a.Telemetry = a.Telemetry[:0]
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
}

func (a *App) Draw() {
	a.pixels = a.frame.CopyRGBA(a.pixels)
	rl.UpdateTexture(a.texture, a.pixels)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(a.texture, 0, 0, rl.White)
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()

	rl.SetWindowTitle(a.View.Title())
}
