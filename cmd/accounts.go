package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/jeargle/blingslang/renderer"
)

type accountsCmd struct {
	plain bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the plan's accounts and groups" }
func (*accountsCmd) Usage() string {
	return `bls accounts [-plain]

  Displays every configured account (initial value, growth, update count,
  share-price derivation) and every account group.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering for the terminal")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	plan, err := LoadPlan()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	render(os.Stdout, renderer.AccountsMarkdown(plan), c.plain)
	return subcommands.ExitSuccess
}
