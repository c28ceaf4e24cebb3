package cmd

import (
	"strings"
	"testing"

	"github.com/jeargle/blingslang"
)

const planYAML = `
accounts:
  - name: checking
    value: 1000.0
    updates:
      - value_change: 10.0
        recurrence: daily
groups:
  - name: g
    accounts: [checking]
trajectories:
  - name: base
    group: g
    start_date: 2026-01-01
    stop_date: 2026-01-11
`

func testPlan(t *testing.T) *blingslang.Plan {
	t.Helper()
	plan, err := blingslang.Parse(strings.NewReader(planYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return plan
}

func TestFindTrajectory(t *testing.T) {
	plan := testPlan(t)

	traj, err := findTrajectory(plan, "")
	if err != nil || traj.Name != "base" {
		t.Errorf("findTrajectory(\"\") = %v, %v; want the only trajectory", traj, err)
	}
	if traj, err = findTrajectory(plan, "base"); err != nil || traj.Name != "base" {
		t.Errorf("findTrajectory(\"base\") = %v, %v", traj, err)
	}
	if _, err = findTrajectory(plan, "ghost"); err == nil {
		t.Errorf("findTrajectory(\"ghost\") expected an error")
	}
}

func TestQueryTrajectory(t *testing.T) {
	plan := testPlan(t)
	traj := plan.Trajectory("base")
	if err := ensureSimulated(traj); err != nil {
		t.Fatalf("ensureSimulated() error = %v", err)
	}
	// Idempotent once simulated.
	if err := ensureSimulated(traj); err != nil {
		t.Fatalf("ensureSimulated() twice error = %v", err)
	}

	testCases := []struct {
		path string
		want any
	}{
		{path: "$.name", want: "base"},
		{path: "$.rows[0].total", want: 1000.0},
		{path: "$.rows[-1:].total", want: 1100.0},
		{path: "$.rows[0].values.checking", want: 1000.0},
	}
	for _, tc := range testCases {
		got, err := queryTrajectory(traj, tc.path)
		if err != nil {
			t.Errorf("queryTrajectory(%q) error = %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("queryTrajectory(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}

	if _, err := queryTrajectory(traj, "$.rows["); err == nil {
		t.Errorf("queryTrajectory with a malformed path expected an error")
	}
}
