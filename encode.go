package blingslang

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jeargle/blingslang/date"
)

// This file contains code to export a simulated trajectory as a single JSON
// document, human-readable and friendly to downstream tools (jq, JSONPath,
// spreadsheets with a JSON importer).

// jrow is the JSON form of one table row.
type jrow struct {
	On     date.Date          `json:"on"`
	Values map[string]float64 `json:"values"`
	Total  float64            `json:"total"`
}

// jtrajectory is the JSON form of a simulated trajectory.
type jtrajectory struct {
	Name     string    `json:"name"`
	Group    string    `json:"group"`
	From     date.Date `json:"from"`
	To       date.Date `json:"to"`
	Accounts []string  `json:"accounts"`
	Rows     []jrow    `json:"rows"`
}

// EncodeTrajectory writes the JSON form of a simulated trajectory.
func EncodeTrajectory(w io.Writer, t *Trajectory) error {
	doc, err := trajectoryDocument(t)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// TrajectoryDocument returns the generic JSON object tree of a simulated
// trajectory, the form JSONPath expressions evaluate against.
func TrajectoryDocument(t *Trajectory) (any, error) {
	doc, err := trajectoryDocument(t)
	if err != nil {
		return nil, err
	}
	// Round-trip through the json package to get the generic tree.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var obj any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func trajectoryDocument(t *Trajectory) (*jtrajectory, error) {
	table := t.Table()
	if table == nil {
		return nil, fmt.Errorf("trajectory %q is not simulated", t.Name)
	}
	doc := &jtrajectory{
		Name:     t.Name,
		Group:    t.Group.Name,
		From:     t.Start,
		To:       t.Stop,
		Accounts: table.Names(),
		Rows:     make([]jrow, 0, table.Len()),
	}
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		values := make(map[string]float64, len(row))
		for c, name := range doc.Accounts {
			values[name] = row[c]
		}
		doc.Rows = append(doc.Rows, jrow{On: table.Date(i), Values: values, Total: table.Total(i)})
	}
	return doc, nil
}
