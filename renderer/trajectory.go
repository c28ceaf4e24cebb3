package renderer

import (
	"bytes"
	"fmt"

	"github.com/jeargle/blingslang"
	md "github.com/nao1215/markdown"
)

// TrajectoryMarkdown renders a TrajectoryReport to a markdown string.
func TrajectoryMarkdown(r *blingslang.TrajectoryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Trajectory %s", r.Name))
	doc.PlainText(fmt.Sprintf("%s to %s (%d days, values in %s)",
		r.Range.From, r.Range.To, r.Range.Days(), r.Currency))

	table := md.TableSet{
		Header: []string{"Account", "Start", "Final", "Change", "Return"},
		Rows:   [][]string{},
	}
	for _, a := range r.Accounts {
		table.Rows = append(table.Rows, summaryRow(a))
	}
	table.Rows = append(table.Rows, summaryRow(r.Total))
	doc.Table(table)

	return doc.String()
}

func summaryRow(a blingslang.AccountSummary) []string {
	return []string{
		a.Name,
		a.Start.String(),
		a.Final.String(),
		a.Change.SignedString(),
		a.Return.SignedString(),
	}
}
