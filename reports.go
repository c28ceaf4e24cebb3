package blingslang

import (
	"fmt"

	"github.com/jeargle/blingslang/date"
)

// AccountSummary holds one account's start value, final value, and change
// over a simulated range.
type AccountSummary struct {
	Name   string
	Start  Money
	Final  Money
	Change Money
	Return Percent // relative change, zero when the start value is zero
}

// TrajectoryReport provides an at-a-glance overview of a simulated
// trajectory: every account's evolution over the range plus the group total.
type TrajectoryReport struct {
	Name     string
	Range    date.Range
	Currency string
	Accounts []AccountSummary
	Total    AccountSummary
}

// NewTrajectoryReport calculates the start/final/change summary of a
// simulated trajectory, with values in the given display currency.
func NewTrajectoryReport(t *Trajectory, currency string) (*TrajectoryReport, error) {
	table := t.Table()
	if table == nil {
		return nil, fmt.Errorf("trajectory %q is not simulated", t.Name)
	}

	report := &TrajectoryReport{
		Name:     t.Name,
		Range:    t.Range(),
		Currency: currency,
	}
	for _, name := range table.Names() {
		col, ok := table.Column(name)
		if !ok {
			return nil, fmt.Errorf("trajectory %q: no column for account %q", t.Name, name)
		}
		report.Accounts = append(report.Accounts, summarize(name, col, report.Range, currency))
	}
	report.Total = summarize("total", table.TotalColumn(), report.Range, currency)
	return report, nil
}

func summarize(name string, col *date.History[float64], r date.Range, currency string) AccountSummary {
	start, _ := col.ValueAsOf(r.From)
	_, final := col.Latest()
	s := AccountSummary{
		Name:   name,
		Start:  M(start, currency),
		Final:  M(final, currency),
		Change: M(final-start, currency),
	}
	if start != 0 {
		s.Return = Percent((final - start) / start * 100)
	}
	return s
}

// HistoryEntry is one rendered day of a trajectory table.
type HistoryEntry struct {
	On     date.Date
	Values []Money // in account order
	Total  Money
}

// HistoryReport is a day-by-day view of a simulated trajectory, optionally
// sampled every N days. The stop date row is always included.
type HistoryReport struct {
	Name     string
	Currency string
	Accounts []string
	Entries  []HistoryEntry
}

// NewHistoryReport builds a history view of a simulated trajectory. A
// sampling interval below 1 keeps every day.
func NewHistoryReport(t *Trajectory, currency string, every int) (*HistoryReport, error) {
	table := t.Table()
	if table == nil {
		return nil, fmt.Errorf("trajectory %q is not simulated", t.Name)
	}
	if every < 1 {
		every = 1
	}

	report := &HistoryReport{
		Name:     t.Name,
		Currency: currency,
		Accounts: table.Names(),
	}
	last := table.Len() - 1
	for i := 0; i <= last; i += every {
		report.Entries = append(report.Entries, entryAt(table, i, currency))
	}
	if last >= 0 && (last%every) != 0 {
		report.Entries = append(report.Entries, entryAt(table, last, currency))
	}
	return report, nil
}

func entryAt(table *Table, i int, currency string) HistoryEntry {
	row := table.Row(i)
	entry := HistoryEntry{On: table.Date(i), Total: M(table.Total(i), currency)}
	for _, v := range row {
		entry.Values = append(entry.Values, M(v, currency))
	}
	return entry
}
