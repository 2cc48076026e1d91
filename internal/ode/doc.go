// Package ode provides fixed-step integrators for scalar first-order
// ordinary differential equations dx/dt = f(x, t).
//
// Three methods share one iteration pattern and differ only in the
// per-step update:
//
//   - [Euler]: explicit first order, one evaluation of f per step
//   - [RK2]: midpoint Runge-Kutta, two evaluations per step
//   - [RK4]: classical Runge-Kutta, four evaluations per step
//
// # Example
//
//	f := func(x, t float64) float64 { return -(x * x * x) + math.Sin(t) }
//	grid := ode.Linspace(0, 5, 10)
//	x, err := ode.RK4(f, grid, 0)
//
// # Grid
//
// The step size is read once from the first interval, h = t[1]-t[0], and
// reused for every step. Uniformity is not checked; call [CheckUniform]
// first when the grid comes from an untrusted source.
//
// # Thread Safety
//
// All functions are stateless. Calls may run concurrently as long as f is
// safe to call concurrently.
package ode
