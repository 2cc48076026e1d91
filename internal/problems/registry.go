package problems

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/odestep/internal/ode"
)

// ExactFunc gives the analytic solution at t for x(t0) = x0.
type ExactFunc func(t, x0, t0 float64) float64

// Problem is a named initial value problem with a default grid.
type Problem struct {
	Name        string
	Description string
	F           ode.Func
	Exact       ExactFunc
	Start       float64
	Stop        float64
	Points      int
	X0          float64
}

// HasExact reports whether the problem carries an analytic solution.
func (p *Problem) HasExact() bool { return p.Exact != nil }

// Grid returns the default time grid of the problem.
func (p *Problem) Grid() []float64 {
	return ode.Linspace(p.Start, p.Stop, p.Points)
}

// ExactOn evaluates the analytic solution on grid t starting from x0 at t[0].
func (p *Problem) ExactOn(t []float64, x0 float64) (ode.Trajectory, error) {
	if p.Exact == nil {
		return nil, fmt.Errorf("problem %s has no exact solution", p.Name)
	}
	if len(t) == 0 {
		return ode.Trajectory{}, nil
	}
	out := make(ode.Trajectory, len(t))
	for i, ti := range t {
		out[i] = p.Exact(ti, x0, t[0])
	}
	return out, nil
}

type Registry struct {
	problems map[string]func() *Problem
}

func NewRegistry() *Registry {
	r := &Registry{problems: make(map[string]func() *Problem)}

	r.problems["decay"] = func() *Problem {
		return &Problem{
			Name:        "decay",
			Description: "exponential decay dx/dt = -x",
			F:           func(x, t float64) float64 { return -x },
			Exact:       func(t, x0, t0 float64) float64 { return x0 * math.Exp(-(t - t0)) },
			Start:       0, Stop: 1, Points: 11, X0: 1,
		}
	}
	r.problems["growth"] = func() *Problem {
		return &Problem{
			Name:        "growth",
			Description: "exponential growth dx/dt = x",
			F:           func(x, t float64) float64 { return x },
			Exact:       func(t, x0, t0 float64) float64 { return x0 * math.Exp(t-t0) },
			Start:       0, Stop: 1, Points: 11, X0: 1,
		}
	}
	r.problems["constant"] = func() *Problem {
		return &Problem{
			Name:        "constant",
			Description: "constant rate dx/dt = 1",
			F:           func(x, t float64) float64 { return 1 },
			Exact:       func(t, x0, t0 float64) float64 { return x0 + (t - t0) },
			Start:       0, Stop: 10, Points: 11, X0: 0,
		}
	}
	r.problems["zero"] = func() *Problem {
		return &Problem{
			Name:        "zero",
			Description: "stationary dx/dt = 0",
			F:           func(x, t float64) float64 { return 0 },
			Exact:       func(t, x0, t0 float64) float64 { return x0 },
			Start:       0, Stop: 10, Points: 11, X0: 1,
		}
	}
	r.problems["cubic_forced"] = func() *Problem {
		return &Problem{
			Name:        "cubic_forced",
			Description: "cubic damping with sinusoidal forcing dx/dt = -x^3 + sin(t)",
			F:           func(x, t float64) float64 { return -(x * x * x) + math.Sin(t) },
			Start:       0, Stop: 5, Points: 10, X0: 0,
		}
	}
	r.problems["logistic"] = func() *Problem {
		return &Problem{
			Name:        "logistic",
			Description: "logistic growth dx/dt = x(1-x)",
			F:           func(x, t float64) float64 { return x * (1 - x) },
			Exact: func(t, x0, t0 float64) float64 {
				if x0 == 0 {
					return 0
				}
				return 1 / (1 + (1-x0)/x0*math.Exp(-(t-t0)))
			},
			Start: 0, Stop: 10, Points: 51, X0: 0.1,
		}
	}
	r.problems["cosine"] = func() *Problem {
		return &Problem{
			Name:        "cosine",
			Description: "pure time forcing dx/dt = cos(t)",
			F:           func(x, t float64) float64 { return math.Cos(t) },
			Exact:       func(t, x0, t0 float64) float64 { return x0 + math.Sin(t) - math.Sin(t0) },
			Start:       0, Stop: 2 * math.Pi, Points: 33, X0: 0,
		}
	}

	return r
}

func (r *Registry) Get(name string) (*Problem, error) {
	fn, ok := r.problems[name]
	if !ok {
		return nil, fmt.Errorf("unknown problem: %s", name)
	}
	return fn(), nil
}

// List returns problem names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.problems))
	for name := range r.problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a problem constructor.
func (r *Registry) Register(name string, fn func() *Problem) {
	r.problems[name] = fn
}
