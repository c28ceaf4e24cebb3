package renderer

import (
	"bytes"
	"fmt"

	"github.com/jeargle/blingslang"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders a HistoryReport to a markdown string: one row per
// (sampled) day, one column per account plus the group total.
func HistoryMarkdown(r *blingslang.HistoryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", r.Name))

	header := append([]string{"Date"}, r.Accounts...)
	header = append(header, "Total")
	table := md.TableSet{
		Header: header,
		Rows:   [][]string{},
	}
	for _, entry := range r.Entries {
		row := []string{entry.On.String()}
		for _, v := range entry.Values {
			row = append(row, v.String())
		}
		row = append(row, entry.Total.String())
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)

	return doc.String()
}
