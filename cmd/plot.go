package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/jeargle/blingslang"
)

type plotCmd struct {
	outputDir string
}

func (*plotCmd) Name() string     { return "plot" }
func (*plotCmd) Synopsis() string { return "write every plot definition's column selection as CSV" }
func (*plotCmd) Usage() string {
	return `bls plot [-o <dir>]

  Simulates the trajectories referenced by the plan's plot definitions and
  writes each plot's selected columns (accounts, named sums, total) as a CSV
  file ready for an external charting tool.
`
}

func (c *plotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", ".", "Directory to write the CSV files into.")
}

func (c *plotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := LoadPlan()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(plan.Plots) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: the plan defines no plots.")
		return subcommands.ExitSuccess
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory %q: %v\n", c.outputDir, err)
		return subcommands.ExitFailure
	}

	for _, plot := range plan.Plots {
		if err := ensureSimulated(plot.Trajectory); err != nil {
			fmt.Fprintf(os.Stderr, "Error simulating trajectory %q: %v\n", plot.Trajectory.Name, err)
			return subcommands.ExitFailure
		}
		filename := filepath.Join(c.outputDir, plot.File)
		if err := writePlot(filename, plot); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Wrote %s\n", filename)
	}
	return subcommands.ExitSuccess
}

func writePlot(filename string, plot *blingslang.Plot) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating %q: %w", filename, err)
	}
	defer f.Close()
	if err := plot.WriteCSV(f); err != nil {
		return fmt.Errorf("error writing %q: %w", filename, err)
	}
	return nil
}
