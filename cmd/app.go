// Package cmd implements the CLI application to simulate a financial plan.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/jeargle/blingslang"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountsCmd{}, "plan")

	c.Register(&simulateCmd{}, "simulation")

	c.Register(&reportCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&plotCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("f", "bls.yaml", "Path to the plan configuration file (YAML)")

// LoadPlan loads and resolves the app configuration file.
func LoadPlan() (*blingslang.Plan, error) {
	return blingslang.Load(*configFile)
}

// findTrajectory returns the named trajectory, or the plan's only one when
// name is empty.
func findTrajectory(plan *blingslang.Plan, name string) (*blingslang.Trajectory, error) {
	if name == "" {
		switch len(plan.Trajectories) {
		case 0:
			return nil, fmt.Errorf("the plan defines no trajectories")
		case 1:
			return plan.Trajectories[0], nil
		default:
			return nil, fmt.Errorf("the plan defines %d trajectories, select one with -t", len(plan.Trajectories))
		}
	}
	t := plan.Trajectory(name)
	if t == nil {
		return nil, fmt.Errorf("could not find trajectory %q", name)
	}
	return t, nil
}

// ensureSimulated runs the trajectory unless it already ran in this process.
func ensureSimulated(t *blingslang.Trajectory) error {
	if t.Table() != nil {
		return nil
	}
	_, err := t.Simulate()
	return err
}

// render displays a markdown document, through glamour unless plain is set.
func render(w io.Writer, markdown string, plain bool) {
	if !plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
		if err == nil {
			if out, rerr := r.Render(markdown); rerr == nil {
				fmt.Fprint(w, out)
				return
			}
		}
		log.Println("warning, cannot render markdown for the terminal, falling back to plain output")
	}
	fmt.Fprintln(w, markdown)
}
