package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
	"github.com/jeargle/blingslang"
)

type queryCmd struct {
	trajectory string
	path       string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression against a simulated trajectory" }
func (*queryCmd) Usage() string {
	return `bls query -p <jsonpath> [-t <trajectory>]

  Simulates a trajectory and evaluates a JSONPath expression against its
  JSON form (the same document 'simulate' writes).

Usage Examples:
# The group total on the last simulated day.
$ bls query -p '$.rows[-1:].total'

# One account's value on the first day.
$ bls query -p '$.rows[0].values.checking'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trajectory, "t", "", "Trajectory to query. Defaults to the only one if the plan has exactly one.")
	f.StringVar(&c.path, "p", "", "JSONPath expression to evaluate.")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.path == "" {
		fmt.Fprintln(os.Stderr, "Error: -p is required")
		return subcommands.ExitUsageError
	}
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
	result, err := queryTrajectory(t, c.path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(result)
	return subcommands.ExitSuccess
}

// queryTrajectory evaluates a JSONPath expression against the trajectory's
// JSON document.
func queryTrajectory(t *blingslang.Trajectory, path string) (any, error) {
	doc, err := blingslang.TrajectoryDocument(t)
	if err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer or a single answer, keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		jval = jlist[0]
	}
	return jval, nil
}
