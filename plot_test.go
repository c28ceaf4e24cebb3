package blingslang

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestPlotWriteCSV(t *testing.T) {
	plan := mustParsePlan(t, planYAML)
	plot := plan.Plots[0]
	if _, err := plot.Trajectory.Simulate(); err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := plot.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}

	wantHeader := "date,checking,savings,stock,total"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}
	if want := plot.Trajectory.Table().Len() + 1; len(records) != want {
		t.Errorf("got %d records, want %d (header plus one per day)", len(records), want)
	}

	// First data row is the initial snapshot.
	first := records[1]
	if first[0] != "2026-01-01" || first[1] != "10000.00" || first[2] != "50000.00" {
		t.Errorf("first row = %v", first)
	}
	// stock = acme + acme-options; the options row 0 is the configured
	// initial value (zero), so the sum is acme's initial value.
	if first[3] != "100.00" {
		t.Errorf("stock sum = %q, want 100.00", first[3])
	}
}

func TestPlotDefaultColumns(t *testing.T) {
	plan := mustParsePlan(t, planYAML)
	plot := &Plot{File: "all.csv", Trajectory: plan.Trajectory("base")}
	want := []string{"checking", "savings", "acme", "acme-options"}
	got := plot.Columns()
	if len(got) != len(want) {
		t.Fatalf("Columns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Columns() = %v, want %v", got, want)
		}
	}
}

func TestPlotRequiresSimulation(t *testing.T) {
	plan := mustParsePlan(t, planYAML)
	plot := plan.Plots[0]
	var buf bytes.Buffer
	if err := plot.WriteCSV(&buf); err == nil {
		t.Fatalf("WriteCSV() expected an error on an unsimulated trajectory")
	}
}
