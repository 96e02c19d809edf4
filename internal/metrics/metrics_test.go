package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/mandelzoom/internal/camera"
	"github.com/san-kum/mandelzoom/internal/cplx"
)

func TestFrameRate_Initial(t *testing.T) {
	f := NewFrameRate(60)
	if math.Abs(f.Value()-60) > 1e-9 {
		t.Errorf("expected 60 fps before any frame, got %f", f.Value())
	}
}

func TestFrameRate_Converges(t *testing.T) {
	f := NewFrameRate(60)
	for i := 0; i < 500; i++ {
		f.Observe(0.04)
	}
	if math.Abs(f.Value()-25) > 1e-6 {
		t.Errorf("expected 25 fps, got %f", f.Value())
	}
	if f.Samples() != 500 {
		t.Errorf("expected 500 samples, got %d", f.Samples())
	}
}

func TestFrameRate_Smoothing(t *testing.T) {
	f := NewFrameRate(10)
	f.Observe(1.0)
	want := (0.1*20 + 1.0) / 21
	if math.Abs(f.SecondsPerFrame()-want) > 1e-12 {
		t.Errorf("expected spf %f, got %f", want, f.SecondsPerFrame())
	}
}

func TestFrameRate_IgnoresNonPositive(t *testing.T) {
	f := NewFrameRate(30)
	f.Observe(0)
	f.Observe(-1)
	f.Observe(math.NaN())
	if f.Samples() != 0 || math.Abs(f.Value()-30) > 1e-9 {
		t.Errorf("non-positive samples changed the estimate: %f", f.Value())
	}

	f.Observe(1)
	f.Reset()
	if math.Abs(f.Value()-30) > 1e-9 {
		t.Error("expected initial estimate after reset")
	}
}

func TestPeakSpeed(t *testing.T) {
	m := NewPeakSpeed()
	m.Observe(camera.Camera{Velocity: cplx.New(3, 4)}, 0)
	m.Observe(camera.Camera{Velocity: cplx.New(1, 0), Zoom: 3}, 1)

	if math.Abs(m.Value()-8) > 1e-12 {
		t.Errorf("expected peak 8 extents/s, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDepth(t *testing.T) {
	m := NewDepth()
	for _, z := range []float64{-1.5, 2, 7, 4} {
		m.Observe(camera.Camera{Zoom: z}, 0)
	}
	if m.Value() != 7 {
		t.Errorf("expected depth 7, got %f", m.Value())
	}

	m.Reset()
	m.Observe(camera.Camera{Zoom: -3}, 0)
	if m.Value() != -3 {
		t.Errorf("expected depth -3 after reset, got %f", m.Value())
	}
}

func TestTravel(t *testing.T) {
	m := NewTravel()
	for _, p := range []cplx.Complex{cplx.New(0, 0), cplx.New(3, 4), cplx.New(3, 0)} {
		m.Observe(camera.Camera{Center: p}, 0)
	}
	if math.Abs(m.Value()-9) > 1e-12 {
		t.Errorf("expected travel 9, got %f", m.Value())
	}
}

func TestSettled(t *testing.T) {
	m := NewSettled(1e-3)
	if m.Value() != 1 {
		t.Error("expected 1 with no samples")
	}

	m.Observe(camera.Camera{Velocity: cplx.New(1, 0)}, 0)
	m.Observe(camera.Camera{}, 1)
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}
