package sim

import "math"

const maxDiveScrolls = 1 << 20

// Dive scrolls the wheel at pixel (x, y) once every interval seconds from
// t=0 up to and including until.
func Dive(x, y int, notches, interval, until float64) Script {
	if !(interval > 0) || math.IsNaN(until) || until/interval > maxDiveScrolls {
		return nil
	}
	var s Script
	for i := 0; ; i++ {
		at := float64(i) * interval
		if at > until {
			break
		}
		s = append(s, Gesture{At: at, Kind: Wheel, X: x, Y: y, Notches: notches})
	}
	return s
}

// Drag presses at (x0, y0), moves to (x1, y1) over steps evenly spaced
// moves and releases, leaving the last move delta as fling velocity.
func Drag(start, duration float64, x0, y0, x1, y1, steps int) Script {
	if steps < 1 {
		steps = 1
	}
	s := Script{{At: start, Kind: Press, X: x0, Y: y0}}
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps)
		s = append(s, Gesture{
			At:   start + f*duration,
			Kind: Move,
			X:    x0 + (x1-x0)*i/steps,
			Y:    y0 + (y1-y0)*i/steps,
		})
	}
	return append(s, Gesture{At: start + duration, Kind: Release})
}
