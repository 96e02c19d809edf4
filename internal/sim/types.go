package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/mandelzoom/internal/camera"
)

type GestureKind int

const (
	Wheel GestureKind = iota
	Press
	Move
	Release
)

func (k GestureKind) String() string {
	switch k {
	case Wheel:
		return "wheel"
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	}
	return fmt.Sprintf("gesture(%d)", int(k))
}

// Gesture is one pointer event at time At, in pixel coordinates of a
// Config.Width x Config.Height surface.
type Gesture struct {
	At      float64
	Kind    GestureKind
	X, Y    int
	Notches float64
}

// Script is a list of gestures. Run applies them in time order.
type Script []Gesture

// Sorted returns a copy ordered by At, keeping the order of simultaneous
// gestures.
func (s Script) Sorted() Script {
	out := make(Script, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].At < out[j].At })
	return out
}

// Metric accumulates a value over the samples of one flight.
type Metric interface {
	Name() string
	Observe(c camera.Camera, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Config struct {
	Dt       float64
	Duration float64
	Width    int
	Height   int
}

// Sample is the camera state at Time, taken after the step that reached it.
type Sample struct {
	Time   float64
	Camera camera.Camera
}

// Valid reports whether every camera field is finite.
func (s Sample) Valid() bool {
	c := s.Camera
	for _, v := range []float64{
		c.Center.Real, c.Center.Imag, c.Zoom,
		c.Velocity.Real, c.Velocity.Imag, c.ZoomVelocity,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
}

// Zooms returns the zoom level of every sample.
func (r *Result) Zooms() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Camera.Zoom
	}
	return out
}

// Speeds returns the pan speed of every sample in view extents per second.
func (r *Result) Speeds() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		c := s.Camera
		out[i] = math.Hypot(c.Velocity.Real, c.Velocity.Imag) / c.Extent()
	}
	return out
}

// Final returns the last sample, or the zero Sample for an empty result.
func (r *Result) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
