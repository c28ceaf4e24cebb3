package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jeargle/blingslang"
	md "github.com/nao1215/markdown"
)

// AccountsMarkdown renders the plan's account and group definitions.
func AccountsMarkdown(p *blingslang.Plan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Accounts")
	accounts := md.TableSet{
		Header: []string{"Name", "Initial Value", "Growth", "Updates", "Derived From"},
		Rows:   [][]string{},
	}
	for _, a := range p.Accounts {
		accounts.Rows = append(accounts.Rows, []string{
			a.Name,
			blingslang.M(a.Value, p.Currency).String(),
			fmt.Sprintf("%.2f%%", a.Growth*100),
			fmt.Sprintf("%d", len(a.Updates)),
			derivation(a),
		})
	}
	doc.Table(accounts)

	doc.H2("Groups")
	groups := md.TableSet{
		Header: []string{"Name", "Accounts", "Initial Value"},
		Rows:   [][]string{},
	}
	for _, g := range p.Groups {
		var names []string
		for _, a := range g.Accounts {
			names = append(names, a.Name)
		}
		groups.Rows = append(groups.Rows, []string{
			g.Name,
			strings.Join(names, ", "),
			blingslang.M(g.Value(), p.Currency).String(),
		})
	}
	doc.Table(groups)

	return doc.String()
}

func derivation(a *blingslang.Account) string {
	if !a.Derived() {
		return "-"
	}
	return fmt.Sprintf("%s (%g shares, strike %g)", a.Source.Name, a.NumShares, a.StrikePrice)
}
