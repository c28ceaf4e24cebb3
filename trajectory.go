package blingslang

import (
	"fmt"
	"math"

	"github.com/jeargle/blingslang/date"
)

// Table is the day-indexed result of a simulation: one row per date from the
// trajectory's start to its stop, each row holding every account's value that
// day plus the row total. It is built exclusively by the simulation loop and
// read-only afterwards.
type Table struct {
	names  []string // column order, the group's declared order
	cols   map[string]int
	days   []date.Date
	rows   [][]float64
	totals []float64
}

func newTable(names []string) *Table {
	t := &Table{
		names: append([]string(nil), names...),
		cols:  make(map[string]int, len(names)),
	}
	for i, n := range names {
		t.cols[n] = i
	}
	return t
}

func (t *Table) append(on date.Date, row []float64, total float64) {
	t.days = append(t.days, on)
	t.rows = append(t.rows, row)
	t.totals = append(t.totals, total)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.days) }

// Names returns the column names in declared order.
func (t *Table) Names() []string { return append([]string(nil), t.names...) }

// Date returns the date of row i.
func (t *Table) Date(i int) date.Date { return t.days[i] }

// Row returns the per-account values of row i, in column order.
func (t *Table) Row(i int) []float64 { return append([]float64(nil), t.rows[i]...) }

// Total returns the group total of row i.
func (t *Table) Total(i int) float64 { return t.totals[i] }

// Value returns the named account's value on the given date.
func (t *Table) Value(name string, on date.Date) (float64, bool) {
	c, ok := t.cols[name]
	if !ok {
		return 0, false
	}
	i, ok := t.index(on)
	if !ok {
		return 0, false
	}
	return t.rows[i][c], true
}

// TotalOn returns the group total on the given date.
func (t *Table) TotalOn(on date.Date) (float64, bool) {
	i, ok := t.index(on)
	if !ok {
		return 0, false
	}
	return t.totals[i], true
}

// index locates the row for a date. Rows are contiguous days, so the offset
// from the first row is the index.
func (t *Table) index(on date.Date) (int, bool) {
	if len(t.days) == 0 {
		return 0, false
	}
	i := on.Sub(t.days[0])
	if i < 0 || i >= len(t.days) {
		return 0, false
	}
	return i, true
}

// Column returns the named account's value series over the whole table.
func (t *Table) Column(name string) (*date.History[float64], bool) {
	c, ok := t.cols[name]
	if !ok {
		return nil, false
	}
	h := new(date.History[float64])
	for i, on := range t.days {
		h.Append(on, t.rows[i][c])
	}
	return h, true
}

// TotalColumn returns the group total series over the whole table.
func (t *Table) TotalColumn() *date.History[float64] {
	h := new(date.History[float64])
	for i, on := range t.days {
		h.Append(on, t.totals[i])
	}
	return h
}

// Trajectory is the day-by-day simulated value history of an account group
// over a date range. It owns its group (an independent copy when built from
// configuration) because simulation consumes the group's update schedules.
type Trajectory struct {
	Name  string
	Group *AccountGroup
	Start date.Date
	Stop  date.Date

	table *Table
}

// NewTrajectory creates an unsimulated trajectory over [start, stop].
func NewTrajectory(name string, group *AccountGroup, start, stop date.Date) (*Trajectory, error) {
	if stop.Before(start) {
		return nil, fmt.Errorf("trajectory %q: stop date %s is before start date %s", name, stop, start)
	}
	return &Trajectory{Name: name, Group: group, Start: start, Stop: stop}, nil
}

// Range returns the simulated date range, boundaries included.
func (t *Trajectory) Range() date.Range { return date.NewRange(t.Start, t.Stop) }

// Table returns the simulation result, or nil if Simulate has not run.
func (t *Trajectory) Table() *Table { return t.table }

// Simulate runs the trajectory to completion and returns its table.
//
// The first row holds the start-date initial values; every subsequent row is
// derived from the previous row plus that day's growth, update and transfer
// effects. Simulation consumes the group's update schedules, so a completed
// trajectory cannot be simulated again.
func (t *Trajectory) Simulate() (*Table, error) {
	if t.table != nil {
		return nil, fmt.Errorf("trajectory %q: already simulated", t.Name)
	}

	order, err := t.Group.dependencyOrder()
	if err != nil {
		return nil, fmt.Errorf("trajectory %q: %w", t.Name, err)
	}

	// Place every update's first trigger relative to the start date.
	for _, a := range t.Group.Accounts {
		for _, u := range a.Updates {
			if err := u.schedule(t.Start); err != nil {
				return nil, fmt.Errorf("trajectory %q: account %q: %w", t.Name, a.Name, err)
			}
		}
	}

	names := make([]string, 0, len(t.Group.Accounts))
	for _, a := range t.Group.Accounts {
		names = append(names, a.Name)
	}
	table := newTable(names)

	// Row 0: the initial snapshot.
	values := make(map[string]float64, len(order))
	for _, a := range t.Group.Accounts {
		values[a.Name] = a.Value
	}
	table.append(t.Start, rowOf(names, values), sumOf(names, values))

	for on := t.Start.Add(1); !on.After(t.Stop); on = on.Add(1) {
		today := make(map[string]float64, len(order))
		pending := make(map[string]float64)

		for _, a := range order {
			v := baseValue(a, values[a.Name], today)
			for _, u := range a.Updates {
				if !u.due(on) {
					continue
				}
				v += u.Amount
				if u.Target != nil {
					// Conservation: the target is credited the opposite of
					// the owner's signed amount.
					pending[u.Target.Name] -= u.Amount
				}
				if err := u.reschedule(on); err != nil {
					return nil, fmt.Errorf("trajectory %q: account %q: %w", t.Name, a.Name, err)
				}
			}
			today[a.Name] = v
		}

		// Transfers land after their target's own valuation for the day.
		for name, credit := range pending {
			today[name] += credit
		}

		table.append(on, rowOf(names, today), sumOf(names, today))
		values = today
	}

	t.table = table
	return table, nil
}

// baseValue computes an account's value for the day before its updates apply:
// compounded growth, share-price derivation, or carry-over, in that priority.
func baseValue(a *Account, prev float64, today map[string]float64) float64 {
	switch {
	case a.Growth != 0:
		// Annual rate converted to a one-day compounding factor.
		return prev * math.Pow(1+a.Growth, 1.0/365.0)
	case a.Source != nil:
		return (today[a.Source.Name] - a.StrikePrice) * a.NumShares
	default:
		return prev
	}
}

func rowOf(names []string, values map[string]float64) []float64 {
	row := make([]float64, len(names))
	for i, n := range names {
		row[i] = values[n]
	}
	return row
}

func sumOf(names []string, values map[string]float64) float64 {
	var total float64
	for _, n := range names {
		total += values[n]
	}
	return total
}
