// Package keypoints defines the in-memory model for motion-tracking
// keypoint tables: one row per video frame, one column per
// (scorer, bodypart, coordinate) label triple.
package keypoints

import (
	"errors"
	"fmt"
)

// Coordinate labels emitted by the pose-estimation pipeline.
const (
	CoordX          = "x"
	CoordY          = "y"
	CoordLikelihood = "likelihood"
)

// ErrBadFormat indicates a table whose column labels do not follow the
// scorer/bodypart/coord scheme (missing coordinates, mixed scorers, or
// ragged frame counts).
var ErrBadFormat = errors.New("keypoints: malformed table")

// Column is the three-level label of a single table column.
type Column struct {
	Scorer   string
	Bodypart string
	Coord    string
}

// Table holds keypoint estimates for a video. Values is indexed
// [column][frame]; all columns carry the same number of frames, and frame
// order is the time axis. Transforms never reorder or drop frames.
type Table struct {
	Columns []Column
	Values  [][]float64
}

// NewTable allocates a zeroed table with the canonical x, y, likelihood
// column triple for each bodypart, all under one scorer.
func NewTable(scorer string, bodyparts []string, frames int) *Table {
	coords := []string{CoordX, CoordY, CoordLikelihood}
	t := &Table{
		Columns: make([]Column, 0, len(bodyparts)*len(coords)),
		Values:  make([][]float64, 0, len(bodyparts)*len(coords)),
	}
	for _, bp := range bodyparts {
		for _, coord := range coords {
			t.Columns = append(t.Columns, Column{Scorer: scorer, Bodypart: bp, Coord: coord})
			t.Values = append(t.Values, make([]float64, frames))
		}
	}
	return t
}

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// NumRows returns the number of frames in the table.
func (t *Table) NumRows() int {
	if len(t.Values) == 0 {
		return 0
	}
	return len(t.Values[0])
}

// Clone returns a deep copy. Callers that transform a table work on a
// clone so the original is never mutated.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: make([]Column, len(t.Columns)),
		Values:  make([][]float64, len(t.Values)),
	}
	copy(out.Columns, t.Columns)
	for i, col := range t.Values {
		out.Values[i] = make([]float64, len(col))
		copy(out.Values[i], col)
	}
	return out
}

// Bodyparts returns the distinct bodypart labels in first-encounter order.
func (t *Table) Bodyparts() []string {
	seen := make(map[string]bool, len(t.Columns))
	var parts []string
	for _, c := range t.Columns {
		if !seen[c.Bodypart] {
			seen[c.Bodypart] = true
			parts = append(parts, c.Bodypart)
		}
	}
	return parts
}

// Scorer returns the single scorer label shared by every column. A table
// with no columns or with columns under more than one scorer is malformed:
// rather than silently taking the first label, mixed scorers fail loudly.
func (t *Table) Scorer() (string, error) {
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%w: table has no columns", ErrBadFormat)
	}
	scorer := t.Columns[0].Scorer
	for _, c := range t.Columns[1:] {
		if c.Scorer != scorer {
			return "", fmt.Errorf("%w: mixed scorer labels %q and %q", ErrBadFormat, scorer, c.Scorer)
		}
	}
	return scorer, nil
}

// ColumnIndex returns the index of the column for the given bodypart and
// coordinate, or -1 if no such column exists.
func (t *Table) ColumnIndex(bodypart, coord string) int {
	for i, c := range t.Columns {
		if c.Bodypart == bodypart && c.Coord == coord {
			return i
		}
	}
	return -1
}

// Select returns a new table containing the columns where mask is true,
// with the full frame set. The mask must have one entry per column.
func (t *Table) Select(mask []bool) *Table {
	out := &Table{}
	for i, c := range t.Columns {
		if i >= len(mask) || !mask[i] {
			continue
		}
		vals := make([]float64, len(t.Values[i]))
		copy(vals, t.Values[i])
		out.Columns = append(out.Columns, c)
		out.Values = append(out.Values, vals)
	}
	return out
}

// Validate checks the structural invariants: uniform frame counts, a single
// scorer label, and exactly the {x, y, likelihood} coordinate triple per
// bodypart.
func (t *Table) Validate() error {
	if _, err := t.Scorer(); err != nil {
		return err
	}
	rows := t.NumRows()
	for i, col := range t.Values {
		if len(col) != rows {
			return fmt.Errorf("%w: column %d has %d frames, want %d", ErrBadFormat, i, len(col), rows)
		}
	}
	coords := make(map[string]map[string]int)
	for _, c := range t.Columns {
		if coords[c.Bodypart] == nil {
			coords[c.Bodypart] = make(map[string]int)
		}
		coords[c.Bodypart][c.Coord]++
	}
	for bp, seen := range coords {
		for _, coord := range []string{CoordX, CoordY, CoordLikelihood} {
			if seen[coord] != 1 {
				return fmt.Errorf("%w: bodypart %q has %d %q columns, want 1", ErrBadFormat, bp, seen[coord], coord)
			}
		}
		if len(seen) != 3 {
			return fmt.Errorf("%w: bodypart %q has unexpected coordinate labels", ErrBadFormat, bp)
		}
	}
	return nil
}
