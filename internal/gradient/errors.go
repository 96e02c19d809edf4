package gradient

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	// ErrInvalidPeriod indicates a period that is not a finite positive number.
	ErrInvalidPeriod = errors.New("gradient: period must be positive")

	// ErrInvalidFalloff indicates a falloff that is not a finite positive number.
	ErrInvalidFalloff = errors.New("gradient: falloff must be positive")

	// ErrStopRange indicates a stop offset outside the open interval (0, 1).
	ErrStopRange = errors.New("gradient: stop offset outside (0, 1)")

	// ErrStopOrder indicates stops that are not strictly ascending.
	ErrStopOrder = errors.New("gradient: stops not strictly ascending")

	// ErrCacheSize indicates a non-positive cache size.
	ErrCacheSize = errors.New("gradient: cache size must be positive")
)

// StopError reports which stop failed validation.
type StopError struct {
	Index   int
	Offset  float64
	Wrapped error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("%v (stop %d, offset %g)", e.Wrapped, e.Index, e.Offset)
}

func (e *StopError) Unwrap() error {
	return e.Wrapped
}
