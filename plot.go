package blingslang

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Plot is a column selection over one trajectory's table: an optional
// explicit account subset plus optional named sums of account subsets,
// written as CSV for an external charting tool.
type Plot struct {
	File       string
	Trajectory *Trajectory
	Accounts   []string // empty means every account of the group
	Sums       map[string][]string
}

// Columns returns the selected account columns, in group order when no
// explicit subset is configured.
func (p *Plot) Columns() []string {
	if len(p.Accounts) > 0 {
		return append([]string(nil), p.Accounts...)
	}
	var names []string
	for _, a := range p.Trajectory.Group.Accounts {
		names = append(names, a.Name)
	}
	return names
}

// SumNames returns the named sum columns in a stable order.
func (p *Plot) SumNames() []string {
	names := make([]string, 0, len(p.Sums))
	for name := range p.Sums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteCSV writes the plot's columns, one row per simulated day: date, the
// selected accounts, the named sums, and the group total. The trajectory must
// have been simulated.
func (p *Plot) WriteCSV(w io.Writer) error {
	table := p.Trajectory.Table()
	if table == nil {
		return fmt.Errorf("plot %q: trajectory %q is not simulated", p.File, p.Trajectory.Name)
	}

	columns := p.Columns()
	sums := p.SumNames()

	cw := csv.NewWriter(w)
	header := append([]string{"date"}, columns...)
	header = append(header, sums...)
	header = append(header, "total")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("plot %q: %w", p.File, err)
	}

	for i := 0; i < table.Len(); i++ {
		on := table.Date(i)
		record := make([]string, 0, len(header))
		record = append(record, on.String())
		for _, name := range columns {
			v, ok := table.Value(name, on)
			if !ok {
				return fmt.Errorf("plot %q: no value for account %q on %s", p.File, name, on)
			}
			record = append(record, formatValue(v))
		}
		for _, sum := range sums {
			var total float64
			for _, name := range p.Sums[sum] {
				v, ok := table.Value(name, on)
				if !ok {
					return fmt.Errorf("plot %q: sum %q: no value for account %q on %s", p.File, sum, name, on)
				}
				total += v
			}
			record = append(record, formatValue(total))
		}
		record = append(record, formatValue(table.Total(i)))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("plot %q: %w", p.File, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
