// Package dataprep prepares the raw sensor table for training: column
// pruning and label encoding.
package dataprep

import (
	"errors"
	"fmt"

	"github.com/jeffgrady/practicalmachinelearning/pkg/dataset"
)

// ErrInvalidArgument is returned for out-of-range prune parameters and
// malformed tables.
var ErrInvalidArgument = errors.New("dataprep: invalid argument")

// Prune removes the first leadingDrop columns unconditionally, then every
// remaining column whose missing-marker count or blank-string count exceeds
// threshold*rows. The two counts are evaluated independently, never summed;
// a numeric column has no blank values, so only the missing path can remove
// it. The final column is the label column and is always retained.
//
// threshold is an exclusive bound in (0,1): a column sitting exactly on the
// threshold is kept, strictly above is dropped. The input is not mutated;
// column and row order are preserved.
func Prune(ds *dataset.Dataset, leadingDrop int, threshold float64) (*dataset.Dataset, error) {
	if ds == nil || ds.NumRows() == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", ErrInvalidArgument)
	}
	if leadingDrop < 0 || leadingDrop >= ds.NumCols() {
		return nil, fmt.Errorf("%w: leading drop count %d out of range for %d columns",
			ErrInvalidArgument, leadingDrop, ds.NumCols())
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("%w: missing-fraction threshold %v outside (0,1)",
			ErrInvalidArgument, threshold)
	}

	rows := float64(ds.NumRows())
	labelIdx := ds.NumCols() - 1

	var keep []int
	for j := leadingDrop; j < ds.NumCols(); j++ {
		if j == labelIdx {
			keep = append(keep, j)
			continue
		}
		missing, blank := columnCounts(ds, j)
		if float64(missing) > threshold*rows || float64(blank) > threshold*rows {
			continue
		}
		keep = append(keep, j)
	}
	return ds.Select(keep)
}

// columnCounts tallies explicit missing markers and blank categorical values
// for one column.
func columnCounts(ds *dataset.Dataset, col int) (missing, blank int) {
	categorical := ds.Columns[col].Kind == dataset.Categorical
	for _, row := range ds.Rows {
		c := row[col]
		if c.Missing {
			missing++
		} else if categorical && c.Text == "" {
			blank++
		}
	}
	return missing, blank
}
