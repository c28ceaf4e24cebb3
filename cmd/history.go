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

type historyCmd struct {
	trajectory string
	every      int
	plain      bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display a trajectory's day-by-day value table" }
func (*historyCmd) Usage() string {
	return `bls history [-t <trajectory>] [-every <days>] [-plain]

  Simulates a trajectory and displays its value table, one row per sampled
  day with one column per account plus the group total. The stop date is
  always included.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trajectory, "t", "", "Trajectory to display. Defaults to the only one if the plan has exactly one.")
	f.IntVar(&c.every, "every", 30, "Sampling interval in days. 1 keeps every day.")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering for the terminal")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	report, err := blingslang.NewHistoryReport(t, plan.Currency, c.every)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	render(os.Stdout, renderer.HistoryMarkdown(report), c.plain)
	return subcommands.ExitSuccess
}
