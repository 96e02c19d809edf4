// Package view owns the interactive state of a MandelZoom session: the
// camera, the gradient and the iteration bound. Frame drivers feed it input
// gestures and elapsed time, then render from a Scene snapshot.
//
// A View is not safe for concurrent use. Drivers call Update and the input
// methods from one goroutine and hand Scene values to the renderer.
package view

import (
	"fmt"

	"github.com/san-kum/mandelzoom/internal/camera"
	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/cplx"
	"github.com/san-kum/mandelzoom/internal/gradient"
	"github.com/san-kum/mandelzoom/internal/metrics"
	"github.com/san-kum/mandelzoom/internal/render"
)

const title = "MandelZoom"

type View struct {
	Camera        camera.Camera
	Gradient      *gradient.Gradient
	MaxIterations int

	// Per-second velocity decay factors in (0, 1].
	Damping     float64
	ZoomDamping float64

	// WheelStep is the zoom velocity added per wheel notch.
	WheelStep float64

	home     camera.Camera
	rate     *metrics.FrameRate
	dragging bool
	anchor   cplx.Complex
}

// New builds a view from a validated config.
func New(cfg *config.Config) (*View, error) {
	g, err := cfg.BuildGradient()
	if err != nil {
		return nil, err
	}
	cam := cfg.InitialCamera()
	return &View{
		Camera:        cam,
		Gradient:      g,
		MaxIterations: cfg.MaxIterations,
		Damping:       cfg.Damping,
		ZoomDamping:   cfg.ZoomDamping,
		WheelStep:     cfg.WheelStep,
		home:          cam,
		rate:          metrics.NewFrameRate(float64(cfg.FrameRate)),
	}, nil
}

// Update advances the view by elapsed seconds. Call it once per frame before
// rendering.
func (v *View) Update(elapsed float64) {
	v.rate.Observe(elapsed)
	v.Camera.Update(elapsed, v.Damping, v.ZoomDamping)
}

// Scene snapshots the state needed to render one frame.
func (v *View) Scene() render.Scene {
	return render.Scene{
		Camera:        v.Camera,
		Gradient:      v.Gradient,
		MaxIterations: v.MaxIterations,
	}
}

// Wheel zooms by notches wheel steps. Outside a drag it also pushes the
// camera toward the point under the cursor, so zooming in homes in on it.
func (v *View) Wheel(x, y, width, height int, notches float64) {
	target := v.Camera.PixelToPoint(x, y, width, height)
	amount := notches * v.WheelStep

	v.Camera.ZoomVelocity += amount
	if !v.dragging {
		dif := target.Sub(v.Camera.Center)
		v.Camera.Velocity = v.Camera.Velocity.Add(dif.Scale(amount))
	}
}

// Press starts a drag anchored at the plane point under the pointer.
func (v *View) Press(x, y, width, height int) {
	v.anchor = v.Camera.PixelToPoint(x, y, width, height)
	v.dragging = true
}

// Move keeps the anchor under the pointer while dragging. The last drag
// delta becomes the camera velocity so releasing flings the view.
func (v *View) Move(x, y, width, height int) {
	if !v.dragging {
		return
	}
	point := v.Camera.PixelToPoint(x, y, width, height)
	diff := point.Sub(v.anchor)
	v.Camera.Center = v.Camera.Center.Sub(diff)
	v.Camera.Velocity = diff.Neg()
}

func (v *View) Release() {
	v.dragging = false
}

func (v *View) Dragging() bool { return v.dragging }

// Nudge adds pan velocity measured in view extents per second, so a key
// press moves the picture by the same on-screen amount at any zoom.
func (v *View) Nudge(dx, dy float64) {
	e := v.Camera.Extent()
	v.Camera.Velocity = v.Camera.Velocity.Add(cplx.New(dx*e, dy*e))
}

// NudgeZoom adds zoom velocity.
func (v *View) NudgeZoom(dz float64) {
	v.Camera.ZoomVelocity += dz
}

// AdjustIterations changes the iteration bound by delta, keeping it at
// least 1.
func (v *View) AdjustIterations(delta int) {
	v.MaxIterations = max(1, v.MaxIterations+delta)
}

// Reset returns the camera to where the session started.
func (v *View) Reset() {
	v.Camera = v.home
	v.dragging = false
}

// FPS returns the smoothed frame rate.
func (v *View) FPS() float64 {
	return v.rate.Value()
}

// FrameTime returns the smoothed seconds per frame.
func (v *View) FrameTime() float64 {
	return v.rate.SecondsPerFrame()
}

// Title is the window title with the current frame rate.
func (v *View) Title() string {
	return fmt.Sprintf("%s (%.0f fps)", title, v.FPS())
}
