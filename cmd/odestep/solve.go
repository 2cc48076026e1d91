package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/ode"
	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/storage"
	"github.com/san-kum/odestep/internal/viz"
)

// resolveConfig layers problem defaults, preset, config file and flags, in
// that order of increasing precedence.
func resolveConfig(cmd *cobra.Command, p *problems.Problem) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Problem = p.Name
	cfg.Start = p.Start
	cfg.Stop = p.Stop
	cfg.Points = p.Points
	cfg.X0 = p.X0
	cfg.LogLevel = logLevel

	if preset != "" {
		pc := config.GetPreset(p.Name, preset)
		if pc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(p.Name))
		}
		cfg = pc
		logger.Debug("preset applied", "problem", p.Name, "preset", preset)
	}

	if configFile != "" {
		fc, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if fc.Problem != p.Name {
			logger.Warn("config problem ignored", "config", fc.Problem, "problem", p.Name)
		}
		cfg = fc
		logger.Debug("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Changed("stop") {
		cfg.Stop = stop
	}
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	cfg.Problem = p.Name

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, err := problems.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, p)
	if err != nil {
		return err
	}

	m, err := ode.Lookup(cfg.Method)
	if err != nil {
		return err
	}

	grid := cfg.Grid()
	logger.Info("solving", "problem", p.Name, "method", m.Name, "points", len(grid), "x0", cfg.X0)

	x, err := m.Solve(p.F, grid, cfg.X0)
	if err != nil {
		return err
	}

	var exact ode.Trajectory
	if p.HasExact() {
		if exact, err = p.ExactOn(grid, cfg.X0); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	header := []string{"i", "t", "x"}
	if exact != nil {
		header = append(header, "exact", "error")
	}
	rows := make([][]string, len(grid))
	for i := range grid {
		row := []string{fmt.Sprint(i), fmt.Sprintf("%.6f", grid[i]), fmt.Sprintf("%.8f", x[i])}
		if exact != nil {
			row = append(row, fmt.Sprintf("%.8f", exact[i]), fmt.Sprintf("%.2e", math.Abs(x[i]-exact[i])))
		}
		rows[i] = row
	}
	fmt.Fprint(out, viz.Table(header, rows))

	if plotAll {
		graph, err := viz.Plot(x, fmt.Sprintf("%s (%s)", p.Name, m.Name))
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Problem: p.Name,
		Method:  m.Name,
		Order:   m.Order,
		Start:   cfg.Start,
		Stop:    cfg.Stop,
		X0:      cfg.X0,
	}
	if exact != nil {
		e, err := analysis.EndpointError(x, exact)
		if err != nil {
			return err
		}
		if !math.IsNaN(e) && !math.IsInf(e, 0) {
			meta.EndpointError = &e
		}
	}
	runID, err := st.Save(meta, grid, x)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "dir", st.Dir())
	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	return nil
}
