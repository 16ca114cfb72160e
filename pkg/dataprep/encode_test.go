package dataprep

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffgrady/practicalmachinelearning/pkg/dataset"
)

func TestLabelEncodeStableOrdering(t *testing.T) {
	codes, mapping := LabelEncode([]string{"E", "A", "C", "A", "E"})
	assert.Equal(t, map[string]int{"A": 0, "C": 1, "E": 2}, mapping)
	assert.Equal(t, []int{2, 0, 1, 0, 2}, codes)

	// Same alphabet in a different row order maps identically.
	_, mapping2 := LabelEncode([]string{"A", "C", "E"})
	assert.Equal(t, mapping, mapping2)
}

func TestDecodeLabelsRoundTrip(t *testing.T) {
	labels := []string{"B", "A", "D", "B"}
	codes, mapping := LabelEncode(labels)
	out, err := DecodeLabels(codes, mapping)
	require.NoError(t, err)
	assert.Equal(t, labels, out)
}

func TestDecodeLabelsUnknownCode(t *testing.T) {
	_, err := DecodeLabels([]int{7}, map[string]int{"A": 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMatrixExtractsFeaturesAndLabels(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "roll", Kind: dataset.Numeric},
			{Name: "window", Kind: dataset.Categorical},
			{Name: "classe", Kind: dataset.Categorical},
		},
		Rows: [][]dataset.Cell{
			{{Num: 1.5}, {Text: "no"}, {Text: "A"}},
			{{Num: 2.5}, {Text: "yes"}, {Text: "B"}},
		},
	}
	X, labels, err := Matrix(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, labels)
	// "no" sorts before "yes", so codes are 0 and 1.
	assert.Equal(t, [][]float64{{1.5, 0}, {2.5, 1}}, X)
}

func TestMatrixFillsResidualMissingWithColumnMean(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "roll", Kind: dataset.Numeric},
			{Name: "classe", Kind: dataset.Categorical},
		},
		Rows: [][]dataset.Cell{
			{{Num: 1}, {Text: "A"}},
			{{Missing: true}, {Text: "B"}},
			{{Num: 3}, {Text: "C"}},
		},
	}
	X, _, err := Matrix(ds)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1}, {2}, {3}}, X)
}

func TestMatrixRejectsDegenerateTables(t *testing.T) {
	_, _, err := Matrix(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	labelOnly := &dataset.Dataset{
		Columns: []dataset.Column{{Name: "classe", Kind: dataset.Categorical}},
		Rows:    [][]dataset.Cell{{{Text: "A"}}},
	}
	_, _, err = Matrix(labelOnly)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMatrixRejectsNumericLabelColumn(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "roll", Kind: dataset.Numeric},
			{Name: "classe", Kind: dataset.Numeric},
		},
		Rows: [][]dataset.Cell{{{Num: 1}, {Num: 2}}},
	}
	_, _, err := Matrix(ds)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// encoderFixture is a pruned training table with one surviving categorical
// feature whose full alphabet is {"no", "yes"}.
func encoderFixture(t *testing.T) *Encoder {
	t.Helper()
	train := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "roll", Kind: dataset.Numeric},
			{Name: "window", Kind: dataset.Categorical},
			{Name: "classe", Kind: dataset.Categorical},
		},
		Rows: [][]dataset.Cell{
			{{Num: 1}, {Text: "no"}, {Text: "A"}},
			{{Num: 3}, {Text: "yes"}, {Text: "B"}},
		},
	}
	enc, err := NewEncoder(train)
	require.NoError(t, err)
	return enc
}

func TestEncoderAppliesTrainingCategoryCodes(t *testing.T) {
	enc := encoderFixture(t)

	// A held-out file where only "yes" appears. Encoding from the held-out
	// values alone would assign it code 0; training assigned it 1.
	holdout := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "window", Kind: dataset.Categorical},
			{Name: "roll", Kind: dataset.Numeric},
		},
		Rows: [][]dataset.Cell{
			{{Text: "yes"}, {Num: 2}},
			{{Text: "yes"}, {Num: 4}},
		},
	}
	X, err := enc.Features(holdout)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 1}, {4, 1}}, X)
}

func TestEncoderRejectsUnknownCategory(t *testing.T) {
	enc := encoderFixture(t)

	holdout := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "roll", Kind: dataset.Numeric},
			{Name: "window", Kind: dataset.Categorical},
		},
		Rows: [][]dataset.Cell{{{Num: 2}, {Text: "maybe"}}},
	}
	_, err := enc.Features(holdout)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "window")
}

func TestEncoderRejectsMissingColumn(t *testing.T) {
	enc := encoderFixture(t)

	holdout := &dataset.Dataset{
		Columns: []dataset.Column{{Name: "roll", Kind: dataset.Numeric}},
		Rows:    [][]dataset.Cell{{{Num: 2}}},
	}
	_, err := enc.Features(holdout)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "window")
}

func TestEncoderUsesTrainingKinds(t *testing.T) {
	enc := encoderFixture(t)

	// An all-missing numeric column reads back as categorical under type
	// inference; the training kind must win and the training mean (2) fill in.
	holdout, err := dataset.ReadCSV(strings.NewReader(
		"roll,window,problem_id\nNA,yes,1\nNA,no,2\n"))
	require.NoError(t, err)
	require.Equal(t, dataset.Categorical, holdout.Columns[0].Kind)

	X, err := enc.Features(holdout)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 1}, {2, 0}}, X)
}
