package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jeargle/blingslang"
	"github.com/jeargle/blingslang/renderer"
)

type reportCmd struct {
	trajectory string
	plain      bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display a trajectory's start/final/change summary" }
func (*reportCmd) Usage() string {
	return `bls report [-t <trajectory>] [-plain]

  Simulates a trajectory and displays each account's start value, final
  value, absolute change and return over the simulated range.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trajectory, "t", "", "Trajectory to report on. Defaults to the only one if the plan has exactly one.")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering for the terminal")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := LoadPlan()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	t, err := findTrajectory(plan, c.trajectory)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ensureSimulated(t); err != nil {
		fmt.Fprintf(os.Stderr, "Error simulating trajectory %q: %v\n", t.Name, err)
		return subcommands.ExitFailure
	}
	report, err := blingslang.NewTrajectoryReport(t, plan.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	render(os.Stdout, renderer.TrajectoryMarkdown(report), c.plain)
	return subcommands.ExitSuccess
}
