package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/mandelzoom/internal/view"
)

const maxSteps = 1 << 24

// Simulator flies a view's camera with a fixed time step, replaying a
// gesture script the way a frame driver would replay live input.
type Simulator struct {
	view      *view.View
	metrics   []Metric
	observers []Observer
}

func New(v *view.View) *Simulator {
	return &Simulator{
		view:      v,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) View() *view.View { return s.view }

func (s *Simulator) Run(ctx context.Context, script Script, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 1e-9)
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	pending := script.Sorted()
	t := 0.0

	pending = s.apply(pending, t, cfg)
	s.record(result, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.view.Update(cfg.Dt)
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++

		pending = s.apply(pending, t, cfg)
		sample := s.record(result, t)
		if !sample.Valid() {
			return result, SimError{Time: t, Step: i, Message: "camera left finite range"}
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// apply feeds every gesture due at or before t to the view and returns the
// rest.
func (s *Simulator) apply(pending Script, t float64, cfg Config) Script {
	for len(pending) > 0 && pending[0].At <= t {
		g := pending[0]
		pending = pending[1:]
		switch g.Kind {
		case Wheel:
			s.view.Wheel(g.X, g.Y, cfg.Width, cfg.Height, g.Notches)
		case Press:
			s.view.Press(g.X, g.Y, cfg.Width, cfg.Height)
		case Move:
			s.view.Move(g.X, g.Y, cfg.Width, cfg.Height)
		case Release:
			s.view.Release()
		}
	}
	return pending
}

func (s *Simulator) record(result *Result, t float64) Sample {
	sample := Sample{Time: t, Camera: s.view.Camera}
	result.Samples = append(result.Samples, sample)
	for _, m := range s.metrics {
		m.Observe(sample.Camera, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(sample)
	}
	return sample
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive and finite, got %f", cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("duration must be positive and finite, got %f", cfg.Duration)
	}
	if cfg.Duration/cfg.Dt > maxSteps {
		return fmt.Errorf("duration %g at dt %g exceeds %d steps", cfg.Duration, cfg.Dt, maxSteps)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("surface must be non-empty, got %dx%d", cfg.Width, cfg.Height)
	}
	return nil
}
