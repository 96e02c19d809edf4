package metrics

import (
	"math"

	"github.com/san-kum/mandelzoom/internal/camera"
)

// PeakSpeed is the largest pan speed seen, in view extents per second, so a
// fast pan deep in a zoom scores the same as one at the top level.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(c camera.Camera, t float64) {
	speed := math.Hypot(c.Velocity.Real, c.Velocity.Imag) / c.Extent()
	p.peak = math.Max(p.peak, speed)
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// Depth is the deepest zoom level reached.
type Depth struct {
	name    string
	deepest float64
	samples int
}

func NewDepth() *Depth {
	return &Depth{name: "depth"}
}

func (d *Depth) Name() string { return d.name }

func (d *Depth) Observe(c camera.Camera, t float64) {
	if d.samples == 0 || c.Zoom > d.deepest {
		d.deepest = c.Zoom
	}
	d.samples++
}

func (d *Depth) Value() float64 { return d.deepest }

func (d *Depth) Reset() {
	d.deepest = 0
	d.samples = 0
}

// Travel is the length of the path traced by the camera center.
type Travel struct {
	name     string
	total    float64
	lastR    float64
	lastI    float64
	observed bool
}

func NewTravel() *Travel {
	return &Travel{name: "travel"}
}

func (tr *Travel) Name() string { return tr.name }

func (tr *Travel) Observe(c camera.Camera, t float64) {
	if tr.observed {
		tr.total += math.Hypot(c.Center.Real-tr.lastR, c.Center.Imag-tr.lastI)
	}
	tr.lastR, tr.lastI = c.Center.Real, c.Center.Imag
	tr.observed = true
}

func (tr *Travel) Value() float64 { return tr.total }

func (tr *Travel) Reset() {
	tr.total = 0
	tr.observed = false
}

// Settled is the fraction of samples in which the camera was at rest.
type Settled struct {
	name    string
	eps     float64
	resting int
	samples int
}

func NewSettled(eps float64) *Settled {
	return &Settled{name: "settled", eps: eps}
}

func (s *Settled) Name() string { return s.name }

func (s *Settled) Observe(c camera.Camera, t float64) {
	s.samples++
	if c.AtRest(s.eps) {
		s.resting++
	}
}

func (s *Settled) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.resting) / float64(s.samples)
}

func (s *Settled) Reset() {
	s.resting = 0
	s.samples = 0
}
