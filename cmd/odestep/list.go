package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/ode"
	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/storage"
)

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORDER\tEVALS/STEP")
	for _, m := range ode.Methods() {
		fmt.Fprintf(w, "%s\t%d\t%d\n", m.Name, m.Order, m.Stages)
	}
	return w.Flush()
}

func listProblems(cmd *cobra.Command, args []string) error {
	registry := problems.NewRegistry()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEXACT\tGRID\tX0\tDESCRIPTION")
	for _, name := range registry.List() {
		p, err := registry.Get(name)
		if err != nil {
			return err
		}
		exact := "no"
		if p.HasExact() {
			exact = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t[%g, %g] x%d\t%g\t%s\n", p.Name, exact, p.Start, p.Stop, p.Points, p.X0, p.Description)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Fprintf(out, "no presets for problem: %s\n", args[0])
		return nil
	}
	fmt.Fprintf(out, "presets for %s:\n", args[0])
	for _, name := range presets {
		p := config.GetPreset(args[0], name)
		fmt.Fprintf(out, "  %-10s %s on [%g, %g] x%d, x0=%g\n", name, p.Method, p.Start, p.Stop, p.Points, p.X0)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tTIME\tPOINTS\tH\tFINAL\tERROR")
	for _, run := range runs {
		errStr := "-"
		if run.EndpointError != nil {
			errStr = fmt.Sprintf("%.2e", *run.EndpointError)
		}
		final := fmt.Sprintf("%.6f", run.Final)
		if run.Diverged {
			final = "diverged"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4g\t%s\t%s\n",
			run.ID,
			run.Problem,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Step,
			final,
			errStr,
		)
	}
	return w.Flush()
}
