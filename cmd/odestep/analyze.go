package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/ode"
	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/viz"
)

// methodsFromArgs resolves method names, or every method when none are given.
func methodsFromArgs(names []string) ([]ode.Method, error) {
	if len(names) == 0 {
		return ode.Methods(), nil
	}
	out := make([]ode.Method, 0, len(names))
	for _, name := range names {
		m, err := ode.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func formatError(e float64) string {
	if math.IsNaN(e) {
		return "-"
	}
	return fmt.Sprintf("%.3e", e)
}

func compareMethods(cmd *cobra.Command, args []string) error {
	p, err := problems.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}
	methods, err := methodsFromArgs(args[1:])
	if err != nil {
		return err
	}

	first, last, n, xi := p.Start, p.Stop, p.Points, p.X0
	flags := cmd.Flags()
	if flags.Changed("start") {
		first = start
	}
	if flags.Changed("stop") {
		last = stop
	}
	if flags.Changed("points") {
		n = points
	}
	if flags.Changed("x0") {
		xi = x0
	}
	grid := ode.Linspace(first, last, n)

	logger.Info("comparing", "problem", p.Name, "methods", len(methods), "points", len(grid))
	results, err := analysis.Compare(methods, p, grid, xi)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing methods for %s on [%g, %g] with %d points\n\n", p.Name, first, last, len(grid))

	rows := make([][]string, len(results))
	series := make(map[string]ode.Trajectory, len(results))
	for i, r := range results {
		rows[i] = []string{
			r.Method,
			fmt.Sprint(r.Order),
			fmt.Sprintf("%.8f", r.Final),
			formatError(r.Error),
			fmt.Sprint(r.Evaluations),
		}
		series[r.Method] = r.Trajectory
	}
	fmt.Fprint(out, viz.Table([]string{"method", "order", "final_x", "error", "evals"}, rows))

	if plotAll {
		graph, names, err := viz.PlotMany(series, "x(t) by method")
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
		fmt.Fprintf(out, "series: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func convergence(cmd *cobra.Command, args []string) error {
	p, err := problems.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}
	methods, err := methodsFromArgs(args[1:])
	if err != nil {
		return err
	}

	counts := analysis.Refinements(points, levels)
	if counts == nil {
		return fmt.Errorf("need --points >= 2 and --levels >= 1: %w", ode.ErrShortGrid)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "convergence for %s on [%g, %g]\n\n", p.Name, p.Start, p.Stop)

	for _, m := range methods {
		pts, err := analysis.Convergence(m, p, counts)
		if err != nil {
			return err
		}
		orders := analysis.ObservedOrder(pts)

		rows := make([][]string, len(pts))
		for i, pt := range pts {
			order := "-"
			if i > 0 && !math.IsNaN(orders[i-1]) {
				order = fmt.Sprintf("%.3f", orders[i-1])
			}
			rows[i] = []string{fmt.Sprint(pt.Points), fmt.Sprintf("%.6g", pt.H), formatError(pt.Error), order}
		}
		fmt.Fprintf(out, "%s (expected order %d)\n", m.Name, m.Order)
		fmt.Fprint(out, viz.Table([]string{"points", "h", "error", "order"}, rows))
		fmt.Fprintln(out)
		logger.Debug("convergence done", "method", m.Name, "levels", len(pts))
	}
	return nil
}

func sensitivity(cmd *cobra.Command, args []string) error {
	p, err := problems.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}
	methods, err := methodsFromArgs(args[1:])
	if err != nil {
		return err
	}

	grid := p.Grid()
	rows := make([][]string, len(methods))
	for i, m := range methods {
		exp, err := analysis.SensitivityExponent(m, p.F, grid, p.X0, separation)
		if err != nil {
			return err
		}
		rows[i] = []string{m.Name, fmt.Sprintf("%.6f", exp)}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sensitivity for %s from x0=%g, perturbation %g\n\n", p.Name, p.X0, separation)
	fmt.Fprint(out, viz.Table([]string{"method", "exponent"}, rows))
	return nil
}
