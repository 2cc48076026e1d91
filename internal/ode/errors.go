package ode

import (
	"errors"
	"fmt"
)

var (
	// ErrShortGrid indicates a grid with fewer than two points, so no step
	// size can be derived.
	ErrShortGrid = errors.New("ode: time grid needs at least 2 points")

	// ErrUnknownMethod indicates a method name with no registered stepper.
	ErrUnknownMethod = errors.New("ode: unknown method")

	// ErrNonUniformGrid indicates a grid interval that differs from the first.
	ErrNonUniformGrid = errors.New("ode: time grid is not uniform")
)

// GridError reports the first interval of a grid that deviates from the
// step size derived from t[1]-t[0].
type GridError struct {
	Index int
	Want  float64
	Got   float64
}

func (e *GridError) Error() string {
	return fmt.Sprintf("%s: interval %d is %g, want %g", ErrNonUniformGrid, e.Index, e.Got, e.Want)
}

func (e *GridError) Unwrap() error {
	return ErrNonUniformGrid
}
