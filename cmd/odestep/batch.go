package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/automation"
	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/storage"
	"github.com/san-kum/odestep/internal/viz"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	logger.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	results, err := automation.RunScenario(cmd.Context(), scenario, problems.NewRegistry(), st)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scenario.Name != "" {
		fmt.Fprintln(out, viz.HeaderStyle.Render(scenario.Name))
	}
	rows := make([][]string, len(results))
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		rows[i] = []string{
			fmt.Sprint(i + 1),
			r.Config.Problem,
			r.Config.Method,
			fmt.Sprint(r.Config.Points),
			fmt.Sprintf("%.8f", r.Trajectory.Final()),
			formatError(r.Error),
			runID,
		}
	}
	fmt.Fprint(out, viz.Table([]string{"step", "problem", "method", "points", "final_x", "error", "run"}, rows))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep := &automation.ParameterSweep{
		Problem:  args[0],
		Method:   method,
		X0Min:    sweepMin,
		X0Max:    sweepMax,
		NumSteps: sweepSteps,
		Points:   samplePoints,
	}
	logger.Info("sweeping", "problem", sweep.Problem, "method", sweep.Method, "steps", sweep.NumSteps)
	results, err := automation.RunSweep(cmd.Context(), sweep, problems.NewRegistry())
	if err != nil {
		return err
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			fmt.Sprintf("%.6g", r.X0),
			fmt.Sprintf("%.8f", r.Final),
			fmt.Sprintf("%.6g", r.Min),
			fmt.Sprintf("%.6g", r.Max),
			formatError(r.Error),
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), viz.Table([]string{"x0", "final_x", "min", "max", "error"}, rows))
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg := &automation.MonteCarloConfig{
		Problem:      args[0],
		Method:       method,
		BaseX0:       x0,
		Perturbation: perturbation,
		NumTrials:    trials,
		Points:       samplePoints,
		Bound:        bound,
		Seed:         seed,
	}
	if !cmd.Flags().Changed("x0") {
		p, err := problems.NewRegistry().Get(args[0])
		if err != nil {
			return err
		}
		cfg.BaseX0 = p.X0
	}

	logger.Info("monte carlo", "problem", cfg.Problem, "trials", cfg.NumTrials, "seed", cfg.Seed)
	results, err := automation.RunMonteCarlo(cmd.Context(), cfg, problems.NewRegistry())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Metric("trials", fmt.Sprint(len(results))))
	fmt.Fprintln(out, viz.Metric("stable", fmt.Sprint(stable)))
	fmt.Fprintln(out, viz.Metric("unstable", fmt.Sprint(unstable)))
	return nil
}
