package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/odestep/internal/ode"
)

// ErrLengthMismatch indicates a trajectory and reference of different lengths.
var ErrLengthMismatch = errors.New("analysis: trajectory and reference lengths differ")

func EndpointError(x, ref ode.Trajectory) (float64, error) {
	if len(x) != len(ref) {
		return 0, ErrLengthMismatch
	}
	if len(x) == 0 {
		return 0, nil
	}
	return math.Abs(x.Final() - ref.Final()), nil
}

func MaxError(x, ref ode.Trajectory) (float64, error) {
	if len(x) != len(ref) {
		return 0, ErrLengthMismatch
	}
	maxErr := 0.0
	for i := range x {
		maxErr = math.Max(maxErr, math.Abs(x[i]-ref[i]))
	}
	return maxErr, nil
}

func RMSError(x, ref ode.Trajectory) (float64, error) {
	if len(x) != len(ref) {
		return 0, ErrLengthMismatch
	}
	if len(x) == 0 {
		return 0, nil
	}
	sum := 0.0
	for i := range x {
		d := x[i] - ref[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(x))), nil
}
