package analysis

import (
	"math"

	"github.com/san-kum/odestep/internal/ode"
)

// SensitivityExponent estimates the mean exponential rate at which a
// trajectory started at x0+perturbation separates from the one at x0.
// Negative values mean nearby solutions converge.
//
// Both trajectories are advanced with the same stepper on grid t; the
// perturbed one is pulled back to distance perturbation after every step.
func SensitivityExponent(m ode.Method, f ode.Func, t []float64, x0, perturbation float64) (float64, error) {
	h, err := ode.Step(t)
	if err != nil {
		return 0, err
	}
	if perturbation == 0 {
		return 0, nil
	}

	d0 := math.Abs(perturbation)
	x, xp := x0, x0+perturbation
	sumLog := 0.0
	count := 0

	for i := 0; i < len(t)-1; i++ {
		x = m.Step(f, x, t[i], h)
		xp = m.Step(f, xp, t[i], h)

		sep := math.Abs(xp - x)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
			xp = x + (xp-x)*d0/sep
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * h), nil
}
