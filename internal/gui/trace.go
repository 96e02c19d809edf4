package gui

import "slices"

// minZoomSpan keeps a steady camera from filling the plot with noise.
const minZoomSpan = 0.5

// zoomTrace maps zoom levels to heights in [0, 1]. The window is centered on
// the samples and spans at least span zoom units.
func zoomTrace(zooms []float64, span float64) []float64 {
	if len(zooms) == 0 {
		return nil
	}
	lo, hi := slices.Min(zooms), slices.Max(zooms)
	if hi-lo < span {
		mid := (lo + hi) / 2
		lo, hi = mid-span/2, mid+span/2
	}

	ys := make([]float64, len(zooms))
	for i, z := range zooms {
		ys[i] = (z - lo) / (hi - lo)
	}
	return ys
}
