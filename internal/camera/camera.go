// Package camera maps between screen pixels and the complex plane and moves
// the view over time.
package camera

import (
	"math"

	"github.com/san-kum/mandelzoom/internal/cplx"
)

// Camera is a view of the complex plane.
type Camera struct {
	// Center is the point in the middle of the view.
	Center cplx.Complex

	// Zoom is logarithmic: the edge length of the view is proportional to
	// 2^(-Zoom).
	Zoom float64

	// Velocity is the change in Center per second.
	Velocity cplx.Complex

	// ZoomVelocity is the change in Zoom per second.
	ZoomVelocity float64
}

// New returns a camera at rest.
func New(center cplx.Complex, zoom float64) Camera {
	return Camera{Center: center, Zoom: zoom}
}

// Extent is half the edge length of the view along the larger screen axis.
func (c Camera) Extent() float64 {
	return math.Pow(0.5, c.Zoom)
}

// TopLeftAndStep returns the plane coordinate of the center of pixel (0, 0)
// and the distance between adjacent pixel centers. The larger screen axis
// spans [-Extent, Extent]; the smaller one uses the same pixel size so the
// image is never stretched.
func (c Camera) TopLeftAndStep(width, height int) (cplx.Complex, float64) {
	z := c.Extent()
	w, h := float64(width), float64(height)

	if width > height {
		px := z * 2.0 / w
		off := cplx.New(px*0.5-z, (w-h)*px*0.5+px*0.5-z)
		return c.Center.Add(off), px
	}

	px := z * 2.0 / h
	off := cplx.New((h-w)*px*0.5+px*0.5-z, px*0.5-z)
	return c.Center.Add(off), px
}

// PixelToPoint returns the plane coordinate of the center of pixel (x, y).
// It steps from TopLeftAndStep so a scan of the whole image lands on exactly
// the same points.
func (c Camera) PixelToPoint(x, y, width, height int) cplx.Complex {
	tl, px := c.TopLeftAndStep(width, height)
	return cplx.New(tl.Real+px*float64(x), tl.Imag+px*float64(y))
}

// Update advances the camera by t seconds with an explicit Euler step, then
// decays both velocities by their per-second damping factor raised to t.
// Damping 1 keeps velocity constant.
func (c *Camera) Update(t, damping, zoomDamping float64) {
	c.Center = c.Center.Add(c.Velocity.Scale(t))
	c.Zoom += c.ZoomVelocity * t

	c.Velocity = c.Velocity.Scale(math.Pow(damping, t))
	c.ZoomVelocity *= math.Pow(zoomDamping, t)
}

// AtRest reports whether both velocities are below eps.
func (c Camera) AtRest(eps float64) bool {
	return math.Abs(c.Velocity.Real) < eps && math.Abs(c.Velocity.Imag) < eps && math.Abs(c.ZoomVelocity) < eps
}
