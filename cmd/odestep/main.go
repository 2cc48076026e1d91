package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/automation"
	"github.com/san-kum/odestep/internal/logging"
)

var (
	dataDir    string
	logLevel   string
	method     string
	start      float64
	stop       float64
	points     int
	x0         float64
	configFile string
	preset     string
	save       bool
	levels     int
	plotAll    bool
	outFile    string
	svgWidth   int
	svgHeight  int

	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	perturbation float64
	trials       int
	bound        float64
	seed         int64
	samplePoints int
	separation   float64

	logger = logging.Discard()
)

// main registers the odestep commands and exits with status 1 when a command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "odestep",
		Short:        "fixed-step integrators for scalar ODEs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, cmd.ErrOrStderr())
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odestep", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	solveCmd := &cobra.Command{
		Use:   "solve [problem]",
		Short: "integrate a problem and print the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addGridFlags(solveCmd)
	solveCmd.Flags().StringVar(&method, "method", "rk4", "method (euler, rk2, rk4)")
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	solveCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	solveCmd.Flags().BoolVar(&plotAll, "plot", false, "plot the trajectory")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		Args:  cobra.NoArgs,
		RunE:  listMethods,
	}

	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "list built-in problems",
		Args:  cobra.NoArgs,
		RunE:  listProblems,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase line plot (x vs dx/dt) of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [problem] [method...]",
		Short: "compare methods on the same grid",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	addGridFlags(compareCmd)
	compareCmd.Flags().BoolVar(&plotAll, "plot", false, "overlay the trajectories")

	convergeCmd := &cobra.Command{
		Use:   "converge [problem] [method...]",
		Short: "measure observed order of accuracy",
		Args:  cobra.MinimumNArgs(1),
		RunE:  convergence,
	}
	convergeCmd.Flags().IntVar(&points, "points", 11, "points on the coarsest grid")
	convergeCmd.Flags().IntVar(&levels, "levels", 5, "number of refinements")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a stored run step by step",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of solves",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [problem]",
		Short: "solve a problem across a range of initial conditions",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&method, "method", "rk4", "method (euler, rk2, rk4)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", -1, "smallest x0")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "largest x0")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of x0 values")
	sweepCmd.Flags().IntVar(&samplePoints, "points", 0, "number of grid points (default: problem grid)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [problem]",
		Short: "solve from randomly perturbed initial conditions",
		Args:  cobra.ExactArgs(1),
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().StringVar(&method, "method", "rk4", "method (euler, rk2, rk4)")
	monteCarloCmd.Flags().Float64Var(&x0, "x0", 0, "base initial condition (default: problem x0)")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.1, "half-width of the x0 perturbation")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().IntVar(&samplePoints, "points", 0, "number of grid points (default: problem grid)")
	monteCarloCmd.Flags().Float64Var(&bound, "bound", automation.DefaultBound, "magnitude treated as unstable")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: time based)")

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity [problem] [method...]",
		Short: "mean separation rate of nearby trajectories",
		Args:  cobra.MinimumNArgs(1),
		RunE:  sensitivity,
	}
	sensitivityCmd.Flags().Float64Var(&separation, "perturbation", 1e-8, "initial separation")

	rootCmd.AddCommand(solveCmd, methodsCmd, problemsCmd, presetsCmd, listCmd, plotCmd, phaseCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, compareCmd, convergeCmd, replayCmd,
		batchCmd, sweepCmd, monteCarloCmd, sensitivityCmd)
	return rootCmd
}

// addGridFlags registers the grid flags; unset flags fall back to the
// problem defaults.
func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&start, "start", 0, "first grid point")
	cmd.Flags().Float64Var(&stop, "stop", 0, "last grid point")
	cmd.Flags().IntVar(&points, "points", 0, "number of grid points")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial condition x(start)")
}
