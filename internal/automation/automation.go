// Package automation runs yaml scenarios: named lists of scripted camera
// flights, each starting from an optional preset.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/sim"
	"github.com/san-kum/mandelzoom/internal/view"
)

const (
	defaultDt      = 1.0 / 60
	maxDiveScrolls = 1 << 20
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario defines a set of scripted flights
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one flight. Pixel coordinates refer to the configured
// width and height.
type ScenarioStep struct {
	Name     string        `yaml:"name"`
	Preset   string        `yaml:"preset"`
	Palette  string        `yaml:"palette"`
	Duration float64       `yaml:"duration"`
	Dt       float64       `yaml:"dt"`
	Gestures []GestureSpec `yaml:"gestures"`
	Dive     *DiveSpec     `yaml:"dive"`
	Drag     *DragSpec     `yaml:"drag"`
}

type GestureSpec struct {
	At      float64 `yaml:"at"`
	Kind    string  `yaml:"kind"`
	X       int     `yaml:"x"`
	Y       int     `yaml:"y"`
	Notches float64 `yaml:"notches"`
}

type DiveSpec struct {
	X        int     `yaml:"x"`
	Y        int     `yaml:"y"`
	Notches  float64 `yaml:"notches"`
	Interval float64 `yaml:"interval"`
	Until    float64 `yaml:"until"`
}

type DragSpec struct {
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
	From     [2]int  `yaml:"from"`
	To       [2]int  `yaml:"to"`
	Steps    int     `yaml:"steps"`
}

var gestureKinds = map[string]sim.GestureKind{
	"wheel":   sim.Wheel,
	"press":   sim.Press,
	"move":    sim.Move,
	"release": sim.Release,
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps: %w", s.Name, ErrInvalidScenario)
	}
	for i, step := range s.Steps {
		if !positive(step.Duration) {
			return fmt.Errorf("step %d: duration %g: %w", i+1, step.Duration, ErrInvalidScenario)
		}
		if step.Dt < 0 || !finite(step.Dt) {
			return fmt.Errorf("step %d: dt %g: %w", i+1, step.Dt, ErrInvalidScenario)
		}
		if _, err := step.Script(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Script expands the step's gestures, dive and drag into one script.
func (st ScenarioStep) Script() (sim.Script, error) {
	var script sim.Script
	for _, g := range st.Gestures {
		kind, ok := gestureKinds[g.Kind]
		if !ok {
			return nil, fmt.Errorf("unknown gesture %q: %w", g.Kind, ErrInvalidScenario)
		}
		script = append(script, sim.Gesture{At: g.At, Kind: kind, X: g.X, Y: g.Y, Notches: g.Notches})
	}
	if d := st.Dive; d != nil {
		if !positive(d.Interval) || !finite(d.Until) || d.Until/d.Interval > maxDiveScrolls {
			return nil, fmt.Errorf("dive interval %g until %g: %w", d.Interval, d.Until, ErrInvalidScenario)
		}
		until := d.Until
		if until == 0 {
			until = st.Duration
		}
		script = append(script, sim.Dive(d.X, d.Y, d.Notches, d.Interval, until)...)
	}
	if d := st.Drag; d != nil {
		if !finite(d.Start) || !finite(d.Duration) {
			return nil, fmt.Errorf("drag start %g duration %g: %w", d.Start, d.Duration, ErrInvalidScenario)
		}
		script = append(script, sim.Drag(d.Start, d.Duration, d.From[0], d.From[1], d.To[0], d.To[1], d.Steps)...)
	}
	return script, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

func (st ScenarioStep) label(i int) string {
	if st.Name != "" {
		return st.Name
	}
	if st.Preset != "" {
		return st.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// StepResult pairs a flight with the settings it ran under.
type StepResult struct {
	Name          string
	MaxIterations int
	Config        sim.Config
	Result        *sim.Result
}

// RunScenario flies every step concurrently from base, each on its own view,
// and returns the results in step order. metrics may be nil.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, metrics func() []sim.Metric) ([]StepResult, error) {
	flights := make([]sim.Flight, len(scenario.Steps))
	out := make([]StepResult, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg := *base
		cfg.Gradient.Stops = append([]config.StopConfig(nil), base.Gradient.Stops...)
		if step.Preset != "" {
			if err := cfg.ApplyPreset(step.Preset); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if step.Palette != "" {
			if err := cfg.UsePalette(step.Palette); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		v, err := view.New(&cfg)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		script, err := step.Script()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		dt := step.Dt
		if dt == 0 {
			dt = defaultDt
		}
		simCfg := sim.Config{Dt: dt, Duration: step.Duration, Width: cfg.Width, Height: cfg.Height}

		flights[i] = sim.Flight{Name: step.label(i), View: v, Script: script, Config: simCfg}
		out[i] = StepResult{Name: step.label(i), MaxIterations: cfg.MaxIterations, Config: simCfg}
	}

	results, err := sim.NewEnsemble(flights, metrics).Run(ctx)
	if err != nil {
		return nil, err
	}
	for i, r := range results {
		out[i].Result = r
	}
	return out, nil
}
