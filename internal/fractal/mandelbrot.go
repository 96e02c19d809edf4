// Package fractal implements the escape-time kernel for the Mandelbrot set.
package fractal

import "github.com/san-kum/mandelzoom/internal/cplx"

// Bailout is the squared escape radius. An orbit whose squared magnitude
// exceeds it is guaranteed to diverge.
const Bailout = 4.0

// Kernel maps a point of the complex plane to an escape-time iteration count
// in [0, max].
type Kernel func(point cplx.Complex, max int) int

// Evaluate iterates z = z*z + c starting from z = c = point and returns the
// number of iterations before the orbit escapes. Points that have not escaped
// after max iterations return max and are treated as inside the set.
func Evaluate(point cplx.Complex, max int) int {
	cr, ci := point.Real, point.Imag
	zr, zi := cr, ci

	iter := 0
	for iter < max {
		zrs := zr * zr
		zis := zi * zi
		if zrs+zis > Bailout {
			break
		}

		zi = 2*zr*zi + ci
		zr = zrs - zis + cr
		iter++
	}
	return iter
}

var _ Kernel = Evaluate
