package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/export"
	"github.com/san-kum/odestep/internal/ode"
	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/storage"
	"github.com/san-kum/odestep/internal/viz"
)

var errNoData = errors.New("no data in run")

func loadRun(runID string) (*storage.RunMetadata, []float64, ode.Trajectory, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	grid, x, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(x) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s", errNoData, runID)
	}
	return meta, grid, x, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, _, x, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "problem: %s\n", meta.Problem)
	fmt.Fprintf(out, "method: %s\n", meta.Method)
	fmt.Fprintf(out, "samples: %d\n\n", len(x))

	graph, err := viz.Plot(x, fmt.Sprintf("x by sample index, t in [%g, %g], h=%.4g", meta.Start, meta.Stop, meta.Step))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, graph)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, grid, x, err := loadRun(args[0])
	if err != nil {
		return err
	}
	p, err := problems.NewRegistry().Get(meta.Problem)
	if err != nil {
		return err
	}

	portrait, err := analysis.GeneratePhasePortrait(p.F, grid, x)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "phase line: %s\n", meta.ID)
	fmt.Fprint(out, "x-axis: x, y-axis: dx/dt\n\n")
	fmt.Fprint(out, analysis.PhasePortraitToASCII(portrait, 70, 20))

	if zs := analysis.Crossings(grid, x, 0); len(zs) > 0 {
		fmt.Fprintf(out, "\nupward zero crossings: %v\n", zs)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, grid, x, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	if err := storage.WriteCSV(w, grid, x); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, grid, x, err := loadRun(args[0])
	if err != nil {
		return err
	}

	if outFile == "" {
		return export.WriteSVG(cmd.OutOrStdout(), grid, x, svgWidth, svgHeight)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, grid, x, svgWidth, svgHeight); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("svg written", "path", outFile)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	meta, grid, x, err := loadRun(args[0])
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s · %s · h=%.4g", meta.Problem, meta.Method, meta.Step)
	p := tea.NewProgram(viz.NewReplay(title, grid, x),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}
