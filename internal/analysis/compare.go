package analysis

import (
	"math"

	"github.com/san-kum/odestep/internal/ode"
	"github.com/san-kum/odestep/internal/problems"
)

// Comparison is the outcome of one method on a shared grid.
type Comparison struct {
	Method      string
	Order       int
	Trajectory  ode.Trajectory
	Final       float64
	Error       float64 // NaN when the problem has no exact solution
	Evaluations int64
}

// Compare runs every method on p over grid from x0.
func Compare(methods []ode.Method, p *problems.Problem, grid []float64, x0 float64) ([]Comparison, error) {
	var ref ode.Trajectory
	if p.HasExact() {
		var err error
		if ref, err = p.ExactOn(grid, x0); err != nil {
			return nil, err
		}
	}

	out := make([]Comparison, 0, len(methods))
	for _, m := range methods {
		c := ode.NewCounter(p.F)
		x, err := m.Solve(c.Func(), grid, x0)
		if err != nil {
			return nil, err
		}

		cmp := Comparison{
			Method:      m.Name,
			Order:       m.Order,
			Trajectory:  x,
			Final:       x.Final(),
			Error:       math.NaN(),
			Evaluations: c.Calls(),
		}
		if ref != nil {
			if cmp.Error, err = EndpointError(x, ref); err != nil {
				return nil, err
			}
		}
		out = append(out, cmp)
	}
	return out, nil
}
