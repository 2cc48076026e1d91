package ode

import "math"

// Linspace returns n evenly spaced points over [start, stop], both ends
// included. n <= 0 gives an empty grid and n == 1 gives {start}.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	t := make([]float64, n)
	t[0] = start
	if n == 1 {
		return t
	}
	delta := (stop - start) / float64(n-1)
	for i := 1; i < n; i++ {
		t[i] = start + float64(i)*delta
	}
	t[n-1] = stop
	return t
}

// Step returns the step size t[1]-t[0].
func Step(t []float64) (float64, error) {
	if len(t) < 2 {
		return 0, ErrShortGrid
	}
	return t[1] - t[0], nil
}

// CheckUniform verifies every interval of t matches t[1]-t[0] within a
// relative tolerance tol. The steppers never call it.
func CheckUniform(t []float64, tol float64) error {
	h, err := Step(t)
	if err != nil {
		return err
	}
	limit := tol * math.Abs(h)
	for i := 1; i < len(t)-1; i++ {
		got := t[i+1] - t[i]
		if math.Abs(got-h) > limit {
			return &GridError{Index: i, Want: h, Got: got}
		}
	}
	return nil
}
