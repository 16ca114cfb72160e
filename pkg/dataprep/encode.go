package dataprep

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jeffgrady/practicalmachinelearning/pkg/dataset"
)

// LabelEncode maps category strings to integer codes. Codes are assigned in
// sorted order so the encoding is stable across runs regardless of row order.
func LabelEncode(values []string) ([]int, map[string]int) {
	uniq := map[string]bool{}
	for _, v := range values {
		uniq[v] = true
	}
	keys := make([]string, 0, len(uniq))
	for v := range uniq {
		keys = append(keys, v)
	}
	sort.Strings(keys)

	mapping := make(map[string]int, len(keys))
	for i, v := range keys {
		mapping[v] = i
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = mapping[v]
	}
	return out, mapping
}

// DecodeLabels inverts a LabelEncode mapping back to category strings.
func DecodeLabels(codes []int, mapping map[string]int) ([]string, error) {
	inverse := make(map[int]string, len(mapping))
	for s, c := range mapping {
		inverse[c] = s
	}
	out := make([]string, len(codes))
	for i, c := range codes {
		s, ok := inverse[c]
		if !ok {
			return nil, fmt.Errorf("%w: label code %d has no mapping", ErrInvalidArgument, c)
		}
		out[i] = s
	}
	return out, nil
}

// Encoder turns datasets into numeric feature matrices using column kinds,
// category codes and imputation means fixed at construction time from the
// training data. Held-out rows are therefore encoded exactly as the training
// rows were, no matter what the held-out file's own type inference says.
type Encoder struct {
	features []dataset.Column
	means    map[string]float64
	mappings map[string]map[string]int
}

// NewEncoder derives an encoder from a pruned training dataset. The final
// column must be the categorical label column; every other column becomes a
// feature. Numeric features record the training column mean for filling
// residual missing values; categorical features record their category codes.
func NewEncoder(ds *dataset.Dataset) (*Encoder, error) {
	if err := checkTrainingShape(ds); err != nil {
		return nil, err
	}
	e := &Encoder{
		features: append([]dataset.Column(nil), ds.Columns[:ds.NumCols()-1]...),
		means:    map[string]float64{},
		mappings: map[string]map[string]int{},
	}
	for j, col := range e.features {
		if col.Kind == dataset.Categorical {
			raw := make([]string, ds.NumRows())
			for i, row := range ds.Rows {
				raw[i] = categoryKey(row[j], dataset.Categorical)
			}
			_, mapping := LabelEncode(raw)
			e.mappings[col.Name] = mapping
			continue
		}
		sum, present := 0.0, 0
		for _, row := range ds.Rows {
			if !row[j].Missing {
				sum += row[j].Num
				present++
			}
		}
		if present > 0 {
			e.means[col.Name] = sum / float64(present)
		}
	}
	return e, nil
}

// Features encodes ds's feature columns in training order. Columns are
// matched by name and interpreted with the training kinds, so a held-out
// file whose own inference disagrees with training (say, an all-missing
// numeric column read back as categorical) still encodes correctly. A
// categorical value never seen in training is an error, not a silent code.
func (e *Encoder) Features(ds *dataset.Dataset) ([][]float64, error) {
	if ds == nil || ds.NumRows() == 0 {
		return nil, fmt.Errorf("%w: dataset has no rows", ErrInvalidArgument)
	}
	X := make([][]float64, ds.NumRows())
	for i := range X {
		X[i] = make([]float64, len(e.features))
	}
	for k, col := range e.features {
		j := ds.ColumnIndex(col.Name)
		if j < 0 {
			return nil, fmt.Errorf("%w: dataset missing column %q", ErrInvalidArgument, col.Name)
		}
		parsedAs := ds.Columns[j].Kind

		if col.Kind == dataset.Categorical {
			mapping := e.mappings[col.Name]
			for i, row := range ds.Rows {
				key := categoryKey(row[j], parsedAs)
				code, ok := mapping[key]
				if !ok {
					return nil, fmt.Errorf("%w: column %q value %q not seen in training",
						ErrInvalidArgument, col.Name, key)
				}
				X[i][k] = float64(code)
			}
			continue
		}

		mean := e.means[col.Name]
		for i, row := range ds.Rows {
			v, ok := numericValue(row[j], parsedAs)
			if !ok {
				v = mean
			}
			X[i][k] = v
		}
	}
	return X, nil
}

// categoryKey normalizes a cell to the string key used in category
// mappings. Missing cells share the empty-string key with blank values;
// cells loaded under a numeric inference are keyed by their formatted value.
func categoryKey(c dataset.Cell, parsedAs dataset.Kind) string {
	if c.Missing {
		return ""
	}
	if parsedAs == dataset.Numeric {
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	}
	return c.Text
}

// numericValue extracts a float from a cell, reparsing the text when the
// cell was loaded under a categorical inference. ok is false for values to
// fill with the training mean.
func numericValue(c dataset.Cell, parsedAs dataset.Kind) (float64, bool) {
	if c.Missing {
		return 0, false
	}
	if parsedAs == dataset.Categorical {
		f, err := strconv.ParseFloat(c.Text, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return c.Num, true
}

// Matrix extracts a feature matrix and the label vector from a pruned
// training dataset: the final column must be the categorical label column,
// numeric feature columns pass through with residual missing values filled
// by the column mean, and categorical feature columns are label-encoded.
// To encode held-out rows with the same codes, build a NewEncoder from the
// training dataset and use its Features method instead.
func Matrix(ds *dataset.Dataset) (X [][]float64, labels []string, err error) {
	enc, err := NewEncoder(ds)
	if err != nil {
		return nil, nil, err
	}
	X, err = enc.Features(ds)
	if err != nil {
		return nil, nil, err
	}

	labelIdx := ds.NumCols() - 1
	labels = make([]string, ds.NumRows())
	for i, row := range ds.Rows {
		labels[i] = row[labelIdx].Text
	}
	return X, labels, nil
}

func checkTrainingShape(ds *dataset.Dataset) error {
	if ds == nil || ds.NumCols() < 2 || ds.NumRows() == 0 {
		return fmt.Errorf("%w: need at least one feature column, one label column and one row",
			ErrInvalidArgument)
	}
	if last := ds.Columns[ds.NumCols()-1]; last.Kind != dataset.Categorical {
		return fmt.Errorf("%w: label column %q is not categorical", ErrInvalidArgument, last.Name)
	}
	return nil
}
