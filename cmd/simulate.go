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

type simulateCmd struct {
	trajectory string
	outputDir  string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "run trajectory simulations and export their tables" }
func (*simulateCmd) Usage() string {
	return `bls simulate [-t <trajectory>] [-o <dir>]

  Simulates trajectories day by day from their start date to their stop date
  and writes each resulting table as <name>.json in the output directory.
  By default every trajectory of the plan is simulated.

Usage Examples:
# Simulate everything into the current directory.
$ bls simulate

# Simulate one trajectory into ./out.
$ bls simulate -t retirement -o out
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trajectory, "t", "", "Trajectory to simulate. Simulates all by default.")
	f.StringVar(&c.outputDir, "o", ".", "Directory to write the JSON tables into.")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := LoadPlan()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	trajectories := plan.Trajectories
	if c.trajectory != "" {
		t, err := findTrajectory(plan, c.trajectory)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		trajectories = []*blingslang.Trajectory{t}
	}
	if len(trajectories) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: the plan defines no trajectories.")
		return subcommands.ExitSuccess
	}

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory %q: %v\n", c.outputDir, err)
		return subcommands.ExitFailure
	}

	for _, t := range trajectories {
		if err := ensureSimulated(t); err != nil {
			fmt.Fprintf(os.Stderr, "Error simulating trajectory %q: %v\n", t.Name, err)
			return subcommands.ExitFailure
		}
		filename := filepath.Join(c.outputDir, t.Name+".json")
		if err := writeTrajectory(filename, t); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Simulated %q: %d days, wrote %s\n", t.Name, t.Table().Len(), filename)
	}
	return subcommands.ExitSuccess
}

func writeTrajectory(filename string, t *blingslang.Trajectory) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating %q: %w", filename, err)
	}
	defer f.Close()
	if err := blingslang.EncodeTrajectory(f, t); err != nil {
		return fmt.Errorf("error writing %q: %w", filename, err)
	}
	return nil
}
