package metrics

// FrameRate estimates frames per second from per-frame elapsed times with an
// exponential moving average over seconds per frame.
type FrameRate struct {
	name    string
	weight  float64
	initial float64
	spf     float64
	samples int
}

// NewFrameRate starts the estimate at initialFPS. Each new frame counts as
// one part in 21 of the running average.
func NewFrameRate(initialFPS float64) *FrameRate {
	f := &FrameRate{
		name:    "fps",
		weight:  20,
		initial: 1 / initialFPS,
	}
	f.Reset()
	return f
}

func (f *FrameRate) Name() string { return f.name }

// Observe records one frame that took elapsed seconds. Non-positive times are
// ignored.
func (f *FrameRate) Observe(elapsed float64) {
	if !(elapsed > 0) {
		return
	}
	f.spf = (f.spf*f.weight + elapsed) / (f.weight + 1)
	f.samples++
}

// Value returns the estimated frames per second.
func (f *FrameRate) Value() float64 {
	return 1 / f.spf
}

func (f *FrameRate) SecondsPerFrame() float64 { return f.spf }

func (f *FrameRate) Samples() int { return f.samples }

func (f *FrameRate) Reset() {
	f.spf = f.initial
	f.samples = 0
}
