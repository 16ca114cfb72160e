// Package dataset holds the tabular data model for the exercise-quality
// pipeline: typed columns, a distinguishable missing marker, CSV ingestion
// and download of the source files.
package dataset

import "errors"

// ErrInvalidArgument is returned for malformed inputs: empty tables,
// ragged rows, out-of-range column indexes.
var ErrInvalidArgument = errors.New("dataset: invalid argument")

// Kind is the inferred value domain of a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// Column identifies one column by name and inferred kind.
type Column struct {
	Name string
	Kind Kind
}

// Cell is a single value. Missing marks the explicit missing marker.
// For Numeric columns Num is set; for Categorical columns Text is set,
// and the empty string is a valid (blank) value distinct from missing.
type Cell struct {
	Missing bool
	Num     float64
	Text    string
}

// Dataset is an ordered set of columns and row-major cells. All rows share
// the column set and order. The final column is the label column by
// convention; transformations remove columns, never rows, and never reorder.
type Dataset struct {
	Columns []Column
	Rows    [][]Cell
}

// NumRows returns the row count.
func (ds *Dataset) NumRows() int { return len(ds.Rows) }

// NumCols returns the column count.
func (ds *Dataset) NumCols() int { return len(ds.Columns) }

// LabelColumn returns the reserved label column, the final one.
func (ds *Dataset) LabelColumn() (Column, error) {
	if len(ds.Columns) == 0 {
		return Column{}, ErrInvalidArgument
	}
	return ds.Columns[len(ds.Columns)-1], nil
}

// Select materializes a new Dataset containing only the columns at the given
// indexes, in the order given. Rows are shared-by-value copies; the receiver
// is not mutated.
func (ds *Dataset) Select(idx []int) (*Dataset, error) {
	for _, j := range idx {
		if j < 0 || j >= len(ds.Columns) {
			return nil, ErrInvalidArgument
		}
	}
	out := &Dataset{
		Columns: make([]Column, len(idx)),
		Rows:    make([][]Cell, len(ds.Rows)),
	}
	for k, j := range idx {
		out.Columns[k] = ds.Columns[j]
	}
	for i, row := range ds.Rows {
		cells := make([]Cell, len(idx))
		for k, j := range idx {
			cells[k] = row[j]
		}
		out.Rows[i] = cells
	}
	return out, nil
}

// ColumnIndex returns the index of the named column, or -1.
func (ds *Dataset) ColumnIndex(name string) int {
	for j, c := range ds.Columns {
		if c.Name == name {
			return j
		}
	}
	return -1
}
