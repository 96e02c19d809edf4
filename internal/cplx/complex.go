// Package cplx provides the complex-plane value type shared by the camera,
// the fractal kernel and the input handling.
package cplx

import "fmt"

// Complex is a point in the complex plane. Values are immutable; every
// operation returns a new Complex.
type Complex struct {
	Real float64
	Imag float64
}

func New(re, im float64) Complex {
	return Complex{Real: re, Imag: im}
}

func FromComplex128(z complex128) Complex {
	return Complex{Real: real(z), Imag: imag(z)}
}

func (a Complex) Complex128() complex128 {
	return complex(a.Real, a.Imag)
}

func (a Complex) Add(b Complex) Complex {
	return Complex{Real: a.Real + b.Real, Imag: a.Imag + b.Imag}
}

func (a Complex) Sub(b Complex) Complex {
	return Complex{Real: a.Real - b.Real, Imag: a.Imag - b.Imag}
}

// Mul is standard complex multiplication.
func (a Complex) Mul(b Complex) Complex {
	return Complex{
		Real: a.Real*b.Real - a.Imag*b.Imag,
		Imag: a.Real*b.Imag + a.Imag*b.Real,
	}
}

// Scale multiplies both components by s.
func (a Complex) Scale(s float64) Complex {
	return Complex{Real: a.Real * s, Imag: a.Imag * s}
}

func (a Complex) Neg() Complex {
	return Complex{Real: -a.Real, Imag: -a.Imag}
}

func (a Complex) String() string {
	return fmt.Sprintf("(%g%+gi)", a.Real, a.Imag)
}
