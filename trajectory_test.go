package blingslang

import (
	"math"
	"testing"

	"github.com/jeargle/blingslang/date"
)

// closeEnough compares floats with a relative tolerance, absorbing the error
// accumulated by day-by-day compounding.
func closeEnough(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= 1e-9*scale
}

func simulate(t *testing.T, g *AccountGroup, from, to date.Date) *Table {
	t.Helper()
	traj, err := NewTrajectory("test", g, from, to)
	if err != nil {
		t.Fatalf("NewTrajectory() error = %v", err)
	}
	table, err := traj.Simulate()
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	return table
}

func TestGrowthCompounding(t *testing.T) {
	a := &Account{Name: "savings", Value: 10000, Growth: 0.08}
	g := &AccountGroup{Name: "g", Accounts: []*Account{a}}
	stop := start.Add(365)
	table := simulate(t, g, start, stop)

	for _, days := range []int{0, 1, 30, 100, 365} {
		want := 10000 * math.Pow(1.08, float64(days)/365)
		got, ok := table.Value("savings", start.Add(days))
		if !ok {
			t.Fatalf("no value on day %d", days)
		}
		if !closeEnough(got, want) {
			t.Errorf("value on day %d = %v, want %v", days, got, want)
		}
	}
}

func TestDailyUpdate(t *testing.T) {
	a := &Account{
		Name:    "checking",
		Value:   1000,
		Updates: []*AccountUpdate{{Amount: 5, Recurrence: Daily}},
	}
	g := &AccountGroup{Name: "g", Accounts: []*Account{a}}
	table := simulate(t, g, start, start.Add(60))

	for i := 1; i < table.Len(); i++ {
		prev, today := table.Row(i-1)[0], table.Row(i)[0]
		if today-prev != 5 {
			t.Fatalf("day %s: change = %v, want 5", table.Date(i), today-prev)
		}
	}
}

func TestWeeklyFiresOnWeekday(t *testing.T) {
	const friday = 5
	a := &Account{
		Name:    "checking",
		Value:   1000,
		Updates: []*AccountUpdate{{Amount: 100, Recurrence: Weekly, Day: friday}},
	}
	g := &AccountGroup{Name: "g", Accounts: []*Account{a}}
	stop := start.Add(70)
	table := simulate(t, g, start, stop)

	var firings int
	for i := 1; i < table.Len(); i++ {
		change := table.Row(i)[0] - table.Row(i-1)[0]
		switch {
		case change == 100:
			if table.Date(i).ISOWeekday() != friday {
				t.Errorf("fired on %s, not a Friday", table.Date(i))
			}
			firings++
		case change != 0:
			t.Errorf("unexpected change %v on %s", change, table.Date(i))
		}
	}

	// Count Fridays independently over (start, stop].
	var fridays int
	for on := start.Add(1); !on.After(stop); on = on.Add(1) {
		if on.ISOWeekday() == friday {
			fridays++
		}
	}
	if firings != fridays {
		t.Errorf("fired %d times, want %d (one per Friday)", firings, fridays)
	}
}

func TestOnceFiresExactlyOnce(t *testing.T) {
	on := date.MustParse("2026-03-15")
	a := &Account{
		Name:    "checking",
		Value:   1000,
		Updates: []*AccountUpdate{{Amount: 250, Recurrence: Once, On: on}},
	}
	g := &AccountGroup{Name: "g", Accounts: []*Account{a}}
	stop := start.Add(365)
	table := simulate(t, g, start, stop)

	var firings int
	for i := 1; i < table.Len(); i++ {
		if change := table.Row(i)[0] - table.Row(i-1)[0]; change != 0 {
			if table.Date(i) != on {
				t.Errorf("fired on %s, want %s", table.Date(i), on)
			}
			firings++
		}
	}
	if firings != 1 {
		t.Errorf("fired %d times, want 1", firings)
	}
}

func TestOnceOutsideRangeNeverFires(t *testing.T) {
	for _, on := range []date.Date{start.Add(-10), start.Add(400)} {
		a := &Account{
			Name:    "checking",
			Value:   1000,
			Updates: []*AccountUpdate{{Amount: 250, Recurrence: Once, On: on}},
		}
		g := &AccountGroup{Name: "g", Accounts: []*Account{a}}
		stop := start.Add(365)
		table := simulate(t, g, start, stop)

		if table.Len() != 366 {
			t.Errorf("row count = %d, want 366", table.Len())
		}
		if v, _ := table.Value("checking", stop); v != 1000 {
			t.Errorf("once at %s: final value = %v, want 1000 (never fires)", on, v)
		}
	}
}

func TestTransferConservesTotal(t *testing.T) {
	checking := &Account{Name: "checking", Value: 10000}
	savings := &Account{Name: "savings", Value: 5000}
	checking.Updates = []*AccountUpdate{{
		Amount:     -500,
		Recurrence: Monthly,
		Day:        15,
		Target:     savings,
	}}
	g := &AccountGroup{Name: "g", Accounts: []*Account{checking, savings}}
	stop := start.Add(90)
	table := simulate(t, g, start, stop)

	for i := 0; i < table.Len(); i++ {
		if table.Total(i) != 15000 {
			t.Fatalf("total on %s = %v, want 15000 (transfers conserve total value)", table.Date(i), table.Total(i))
		}
	}

	firing := date.MustParse("2026-01-15")
	before, _ := table.Value("checking", firing.Add(-1))
	after, _ := table.Value("checking", firing)
	if after-before != -500 {
		t.Errorf("source change on %s = %v, want -500", firing, after-before)
	}
	before, _ = table.Value("savings", firing.Add(-1))
	after, _ = table.Value("savings", firing)
	if after-before != 500 {
		t.Errorf("target change on %s = %v, want +500", firing, after-before)
	}
}

func TestSharePriceAccountTracksSource(t *testing.T) {
	src := &Account{Name: "acme", Value: 100, Growth: 0.05}
	opt := &Account{Name: "acme-options", Source: src, NumShares: 10, StrikePrice: 20}
	// Declared dependent-first on purpose: ordering, not declaration, decides.
	g := &AccountGroup{Name: "g", Accounts: []*Account{opt, src}}
	stop := start.Add(365)
	table := simulate(t, g, start, stop)

	for on := start.Add(1); !on.After(stop); on = on.Add(1) {
		srcValue, _ := table.Value("acme", on)
		optValue, _ := table.Value("acme-options", on)
		if optValue != (srcValue-20)*10 {
			t.Fatalf("on %s: option value %v desynchronized from source %v", on, optValue, srcValue)
		}
	}
}

func TestRowCountAndInitialRow(t *testing.T) {
	a := &Account{Name: "checking", Value: 1234.5}
	g := &AccountGroup{Name: "g", Accounts: []*Account{a}}
	stop := start.Add(17)
	table := simulate(t, g, start, stop)

	if want := stop.Sub(start) + 1; table.Len() != want {
		t.Errorf("row count = %d, want %d", table.Len(), want)
	}
	if table.Date(0) != start {
		t.Errorf("first row date = %s, want %s", table.Date(0), start)
	}
	if v := table.Row(0)[0]; v != 1234.5 {
		t.Errorf("first row value = %v, want the initial value", v)
	}
}

func TestSimulateTwiceFails(t *testing.T) {
	g := &AccountGroup{Name: "g", Accounts: []*Account{{Name: "a", Value: 1}}}
	traj, err := NewTrajectory("t", g, start, start.Add(5))
	if err != nil {
		t.Fatalf("NewTrajectory() error = %v", err)
	}
	if _, err := traj.Simulate(); err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	if _, err := traj.Simulate(); err == nil {
		t.Fatalf("second Simulate() expected an error")
	}
}

func TestStopBeforeStartFails(t *testing.T) {
	g := &AccountGroup{Name: "g", Accounts: []*Account{{Name: "a", Value: 1}}}
	if _, err := NewTrajectory("t", g, start, start.Add(-1)); err == nil {
		t.Fatalf("NewTrajectory() expected an error for stop before start")
	}
}

func TestDependencyValidation(t *testing.T) {
	src := &Account{Name: "src", Value: 100, Growth: 0.05}
	mid := &Account{Name: "mid", Source: src, NumShares: 1}
	deep := &Account{Name: "deep", Source: mid, NumShares: 1}

	t.Run("chained source", func(t *testing.T) {
		g := &AccountGroup{Name: "g", Accounts: []*Account{src, mid, deep}}
		traj, _ := NewTrajectory("t", g, start, start.Add(5))
		if _, err := traj.Simulate(); err == nil {
			t.Fatalf("Simulate() expected an error for a two-level dependency chain")
		}
	})

	t.Run("source outside group", func(t *testing.T) {
		g := &AccountGroup{Name: "g", Accounts: []*Account{mid}}
		traj, _ := NewTrajectory("t", g, start, start.Add(5))
		if _, err := traj.Simulate(); err == nil {
			t.Fatalf("Simulate() expected an error for a source outside the group")
		}
	})

	t.Run("transfer target outside group", func(t *testing.T) {
		elsewhere := &Account{Name: "elsewhere", Value: 0}
		a := &Account{Name: "a", Value: 100, Updates: []*AccountUpdate{{
			Amount: -10, Recurrence: Daily, Target: elsewhere,
		}}}
		g := &AccountGroup{Name: "g", Accounts: []*Account{a}}
		traj, _ := NewTrajectory("t", g, start, start.Add(5))
		if _, err := traj.Simulate(); err == nil {
			t.Fatalf("Simulate() expected an error for a transfer target outside the group")
		}
	})

	t.Run("transfer target is derived", func(t *testing.T) {
		// A credit landing on a share-price account would break its
		// (source - strike) * shares value for the firing day and evaporate
		// on the next recomputation.
		stock := &Account{Name: "stock", Value: 100, Growth: 0.05}
		options := &Account{Name: "options", Source: stock, NumShares: 10, StrikePrice: 5}
		feeder := &Account{Name: "feeder", Value: 1000, Updates: []*AccountUpdate{{
			Amount: -200, Recurrence: Daily, Target: options,
		}}}
		g := &AccountGroup{Name: "g", Accounts: []*Account{stock, options, feeder}}
		traj, _ := NewTrajectory("t", g, start, start.Add(5))
		if _, err := traj.Simulate(); err == nil {
			t.Fatalf("Simulate() expected an error for a transfer into a share-price account")
		}
	})
}

// TestEndToEndScenario is the reference scenario: a checking account fed
// every Friday and drained on day 3 of each month, next to a growth account,
// cross-checked against independently computed counts.
func TestEndToEndScenario(t *testing.T) {
	a := &Account{
		Name:  "a",
		Value: 10000,
		Updates: []*AccountUpdate{
			{Amount: 1200, Recurrence: Weekly, Day: 5},
			{Amount: -2600, Recurrence: Monthly, Day: 3},
		},
	}
	b := &Account{Name: "b", Value: 50000, Growth: 0.08}
	g := &AccountGroup{Name: "g", Accounts: []*Account{a, b}}
	stop := start.Add(365)
	table := simulate(t, g, start, stop)

	// Independent counts over (start, stop].
	var fridays, thirds int
	for on := start.Add(1); !on.After(stop); on = on.Add(1) {
		if on.ISOWeekday() == 5 {
			fridays++
		}
		if on.Day() == 3 {
			thirds++
		}
	}

	wantA := 10000 + float64(fridays)*1200 - float64(thirds)*2600
	gotA, _ := table.Value("a", stop)
	if gotA != wantA {
		t.Errorf("a final = %v, want %v (%d Fridays, %d month-thirds)", gotA, wantA, fridays, thirds)
	}

	wantB := 50000 * math.Pow(1.08, 1)
	gotB, _ := table.Value("b", stop)
	if !closeEnough(gotB, wantB) {
		t.Errorf("b final = %v, want %v", gotB, wantB)
	}

	if total, _ := table.TotalOn(stop); !closeEnough(total, wantA+wantB) {
		t.Errorf("total final = %v, want %v", total, wantA+wantB)
	}

	// Totals are consistent with the day-by-day rows.
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		if sum := row[0] + row[1]; !closeEnough(sum, table.Total(i)) {
			t.Fatalf("on %s: total %v != row sum %v", table.Date(i), table.Total(i), sum)
		}
	}
}
