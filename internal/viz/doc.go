// Package viz renders trajectories in the terminal.
//
//   - [Plot]: asciigraph line plot of one or more trajectories
//   - [Table]: lipgloss-styled column table for comparisons
//   - [Replay]: Bubble Tea model that reveals a trajectory step by step
//
// # Key Bindings
//
//	Space - Pause/Resume replay
//	R     - Restart from t[0]
//	+/-   - Faster/slower
//	Q     - Quit
package viz
