package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/odestep/internal/ode"
	"github.com/san-kum/odestep/internal/problems"
)

// ConvergencePoint is the endpoint error for one grid resolution.
type ConvergencePoint struct {
	Points int
	H      float64
	Error  float64
}

// Convergence solves p with m on [p.Start, p.Stop] for each point count and
// records the endpoint error against the exact solution.
func Convergence(m ode.Method, p *problems.Problem, points []int) ([]ConvergencePoint, error) {
	if !p.HasExact() {
		return nil, fmt.Errorf("convergence needs an exact solution, %s has none", p.Name)
	}

	out := make([]ConvergencePoint, 0, len(points))
	for _, n := range points {
		grid := ode.Linspace(p.Start, p.Stop, n)
		x, err := m.Solve(p.F, grid, p.X0)
		if err != nil {
			return nil, fmt.Errorf("%s with %d points: %w", m.Name, n, err)
		}
		ref, err := p.ExactOn(grid, p.X0)
		if err != nil {
			return nil, err
		}
		e, err := EndpointError(x, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, ConvergencePoint{Points: n, H: grid[1] - grid[0], Error: e})
	}
	return out, nil
}

// ObservedOrder estimates log(e1/e2)/log(h1/h2) for each consecutive pair.
// Pairs with a zero error yield NaN.
func ObservedOrder(pts []ConvergencePoint) []float64 {
	if len(pts) < 2 {
		return nil
	}
	orders := make([]float64, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		if a.Error == 0 || b.Error == 0 || a.H == b.H {
			orders[i-1] = math.NaN()
			continue
		}
		orders[i-1] = math.Log(a.Error/b.Error) / math.Log(a.H/b.H)
	}
	return orders
}

// Refinements returns n0, 2(n0-1)+1, ... so that h halves at each level.
func Refinements(n0, levels int) []int {
	if n0 < 2 || levels <= 0 {
		return nil
	}
	out := make([]int, levels)
	out[0] = n0
	for i := 1; i < levels; i++ {
		out[i] = 2*(out[i-1]-1) + 1
	}
	return out
}
