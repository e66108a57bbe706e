package keypoints

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTableShape(t *testing.T) {
	tab := NewTable("modelA", []string{"nose", "tail"}, 10)

	if got, want := tab.NumColumns(), 6; got != want {
		t.Fatalf("NumColumns = %d, want %d", got, want)
	}
	if got, want := tab.NumRows(), 10; got != want {
		t.Fatalf("NumRows = %d, want %d", got, want)
	}
	if err := tab.Validate(); err != nil {
		t.Fatalf("Validate on fresh table: %v", err)
	}
}

func TestBodypartsOrderAndDedup(t *testing.T) {
	tab := NewTable("modelA", []string{"tail", "nose", "ear"}, 2)

	got := tab.Bodyparts()
	want := []string{"tail", "nose", "ear"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Bodyparts mismatch (-want +got):\n%s", diff)
	}
}

func TestScorerSingleLabel(t *testing.T) {
	tab := NewTable("modelA", []string{"nose"}, 2)

	scorer, err := tab.Scorer()
	if err != nil {
		t.Fatalf("Scorer: %v", err)
	}
	if scorer != "modelA" {
		t.Fatalf("Scorer = %q, want %q", scorer, "modelA")
	}
}

func TestScorerMixedLabelsFails(t *testing.T) {
	tab := NewTable("modelA", []string{"nose"}, 2)
	tab.Columns[2].Scorer = "modelB"

	if _, err := tab.Scorer(); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("Scorer on mixed labels = %v, want ErrBadFormat", err)
	}
}

func TestScorerEmptyTableFails(t *testing.T) {
	var tab Table
	if _, err := tab.Scorer(); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("Scorer on empty table = %v, want ErrBadFormat", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tab := NewTable("modelA", []string{"nose"}, 3)
	tab.Values[0][0] = 42

	clone := tab.Clone()
	clone.Values[0][0] = -1
	clone.Columns[0].Bodypart = "changed"

	if tab.Values[0][0] != 42 {
		t.Fatalf("mutating clone changed original value: %v", tab.Values[0][0])
	}
	if tab.Columns[0].Bodypart != "nose" {
		t.Fatalf("mutating clone changed original column: %v", tab.Columns[0])
	}
}

func TestSelectKeepsMaskedColumnsAndAllRows(t *testing.T) {
	tab := NewTable("modelA", []string{"nose", "tail"}, 4)
	for i := range tab.Values {
		for f := range tab.Values[i] {
			tab.Values[i][f] = float64(i*10 + f)
		}
	}

	mask := []bool{true, true, true, false, false, false}
	sel := tab.Select(mask)

	if got, want := sel.NumColumns(), 3; got != want {
		t.Fatalf("selected NumColumns = %d, want %d", got, want)
	}
	if got, want := sel.NumRows(), 4; got != want {
		t.Fatalf("selected NumRows = %d, want %d", got, want)
	}
	for _, c := range sel.Columns {
		if c.Bodypart != "nose" {
			t.Fatalf("unexpected bodypart %q in selection", c.Bodypart)
		}
	}
	if diff := cmp.Diff(tab.Values[1], sel.Values[1]); diff != "" {
		t.Fatalf("selected values mismatch (-want +got):\n%s", diff)
	}

	// Selection copies, it does not alias.
	sel.Values[0][0] = -99
	if tab.Values[0][0] == -99 {
		t.Fatal("Select aliased the source values")
	}
}

func TestColumnIndex(t *testing.T) {
	tab := NewTable("modelA", []string{"nose", "tail"}, 1)

	if got := tab.ColumnIndex("tail", CoordY); got != 4 {
		t.Fatalf("ColumnIndex(tail, y) = %d, want 4", got)
	}
	if got := tab.ColumnIndex("wing", CoordX); got != -1 {
		t.Fatalf("ColumnIndex(wing, x) = %d, want -1", got)
	}
}

func TestValidateRaggedColumns(t *testing.T) {
	tab := NewTable("modelA", []string{"nose"}, 3)
	tab.Values[1] = tab.Values[1][:2]

	if err := tab.Validate(); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("Validate on ragged columns = %v, want ErrBadFormat", err)
	}
}

func TestValidateMissingCoordinate(t *testing.T) {
	tab := NewTable("modelA", []string{"nose"}, 3)
	tab.Columns = tab.Columns[:2]
	tab.Values = tab.Values[:2]

	if err := tab.Validate(); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("Validate with missing likelihood column = %v, want ErrBadFormat", err)
	}
}

func TestValidateDuplicateCoordinate(t *testing.T) {
	tab := NewTable("modelA", []string{"nose"}, 3)
	tab.Columns[1].Coord = CoordX // two x columns, no y

	if err := tab.Validate(); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("Validate with duplicate coordinate = %v, want ErrBadFormat", err)
	}
}
