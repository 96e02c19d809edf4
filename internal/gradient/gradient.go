// Package gradient maps escape-time iteration counts to colors.
//
// A [Gradient] repeats every Period iterations. Within one period the color
// runs from Initial through each [Stop] and back to Initial, so period
// boundaries are seamless. Iteration counts close to the maximum fade into
// the Final color over the last Falloff iterations, and counts that reach the
// maximum are drawn in Final.
//
// Gradients are immutable and safe for concurrent use.
package gradient

import "math"

// Stop is a color at a fixed offset within one period.
type Stop struct {
	Offset float64
	Color  Color
}

type Gradient struct {
	period  float64
	initial Color
	stops   []Stop
	final   Color
	falloff float64
	cache   []Color
}

// New validates the parameters and builds a gradient. Stops must lie in
// (0, 1) and be strictly ascending; period and falloff must be positive.
func New(period float64, initial Color, stops []Stop, final Color, falloff float64) (*Gradient, error) {
	if !(period > 0) || math.IsInf(period, 1) {
		return nil, ErrInvalidPeriod
	}
	if !(falloff > 0) || math.IsInf(falloff, 1) {
		return nil, ErrInvalidFalloff
	}

	prev := 0.0
	for i, s := range stops {
		if !(s.Offset > 0 && s.Offset < 1) {
			return nil, &StopError{Index: i, Offset: s.Offset, Wrapped: ErrStopRange}
		}
		if i > 0 && s.Offset <= prev {
			return nil, &StopError{Index: i, Offset: s.Offset, Wrapped: ErrStopOrder}
		}
		prev = s.Offset
	}

	owned := make([]Stop, len(stops))
	copy(owned, stops)

	return &Gradient{
		period:  period,
		initial: initial,
		stops:   owned,
		final:   final,
		falloff: falloff,
	}, nil
}

// Cached returns a copy of g whose period colors come from a table of size
// entries. Lookups are quantized to 1/size of a period.
func (g *Gradient) Cached(size int) (*Gradient, error) {
	if size <= 0 {
		return nil, ErrCacheSize
	}

	c := *g
	c.cache = make([]Color, size)
	for t := range c.cache {
		c.cache[t] = g.PeriodColor(float64(t) / float64(size))
	}
	return &c, nil
}

func (g *Gradient) Period() float64  { return g.period }
func (g *Gradient) Initial() Color   { return g.initial }
func (g *Gradient) Final() Color     { return g.final }
func (g *Gradient) Falloff() float64 { return g.falloff }
func (g *Gradient) CacheSize() int   { return len(g.cache) }

// Stops returns a copy of the stops.
func (g *Gradient) Stops() []Stop {
	out := make([]Stop, len(g.stops))
	copy(out, g.stops)
	return out
}

// Color returns the color for a fragment that took iterations steps out of
// max. Fragments at or beyond max are interior and get the final color.
func (g *Gradient) Color(iterations, max int) Color {
	if iterations >= max {
		return g.final
	}

	col := g.periodColorAt(iterations)

	// iterations > max - falloff; the mix stays below 1 since iterations < max.
	if f := float64(iterations-max) + g.falloff; f > 0 {
		col = Mix(col, g.final, f/g.falloff)
	}
	return col
}

func (g *Gradient) periodColorAt(iterations int) Color {
	phase := math.Mod(float64(iterations), g.period)
	if phase < 0 {
		phase += g.period
	}

	if g.cache != nil {
		idx := int(phase * float64(len(g.cache)) / g.period)
		if idx >= len(g.cache) {
			idx = len(g.cache) - 1
		}
		return g.cache[idx]
	}
	return g.PeriodColor(phase / g.period)
}

// PeriodColor returns the color at offset in [0, 1] within one period.
func (g *Gradient) PeriodColor(offset float64) Color {
	prev := g.initial
	prevOffset := 0.0
	for _, s := range g.stops {
		if offset < s.Offset {
			return Mix(prev, s.Color, (offset-prevOffset)/(s.Offset-prevOffset))
		}
		prev = s.Color
		prevOffset = s.Offset
	}
	return Mix(prev, g.initial, (offset-prevOffset)/(1.0-prevOffset))
}
