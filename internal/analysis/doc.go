// Package analysis measures how well the fixed-step methods reproduce known
// solutions.
//
//   - [Convergence]: endpoint error over a sequence of grid refinements
//   - [ObservedOrder]: empirical order of accuracy from a convergence run
//   - [Compare]: several methods on the same grid
//   - [SensitivityExponent]: separation rate of nearby trajectories
//   - [GeneratePhasePortrait]: (x, dx/dt) pairs along a trajectory
//
// # Order Check
//
// Halving h should shrink the global error by about 2^p for a method of
// order p:
//
//	pts, _ := analysis.Convergence(m, p, []int{11, 21, 41})
//	orders := analysis.ObservedOrder(pts) // ≈ m.Order
package analysis
