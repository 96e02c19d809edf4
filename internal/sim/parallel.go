package sim

import (
	"context"
	"sync"

	"github.com/san-kum/mandelzoom/internal/view"
)

// Flight is one scripted run over its own view.
type Flight struct {
	Name   string
	View   *view.View
	Script Script
	Config Config
}

// Ensemble runs independent flights concurrently. Each flight gets a fresh
// set of metrics from the factory since metrics carry per-run state.
type Ensemble struct {
	flights []Flight
	metrics func() []Metric
}

func NewEnsemble(flights []Flight, metrics func() []Metric) *Ensemble {
	return &Ensemble{flights: flights, metrics: metrics}
}

// Run returns results in flight order. The first error wins.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(e.flights))
	errs := make([]error, len(e.flights))

	var wg sync.WaitGroup
	for i, f := range e.flights {
		wg.Add(1)
		go func(idx int, f Flight) {
			defer wg.Done()

			sim := New(f.View)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, f.Script, f.Config)
		}(i, f)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
