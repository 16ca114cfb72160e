// Package report aggregates cross-validation accuracies into a text summary
// and an accuracy chart.
package report

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
)

// ModelResult holds one classifier's per-fold accuracies.
type ModelResult struct {
	Name           string
	FoldAccuracies []float64
}

// Mean returns the average fold accuracy.
func (m ModelResult) Mean() float64 {
	if len(m.FoldAccuracies) == 0 {
		return 0
	}
	s := 0.0
	for _, a := range m.FoldAccuracies {
		s += a
	}
	return s / float64(len(m.FoldAccuracies))
}

// Range returns the lowest and highest fold accuracy.
func (m ModelResult) Range() (min, max float64) {
	if len(m.FoldAccuracies) == 0 {
		return 0, 0
	}
	min, max = m.FoldAccuracies[0], m.FoldAccuracies[0]
	for _, a := range m.FoldAccuracies[1:] {
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	return min, max
}

// Summary is the cross-validation report across all trained classifiers.
type Summary struct {
	Results []ModelResult
}

// WriteTable renders the summary as an aligned text table.
func (s Summary) WriteTable(w io.Writer) error {
	if len(s.Results) == 0 {
		return errors.New("report: no results to summarize")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tMEAN ACC\tMIN\tMAX\tFOLDS")
	for _, r := range s.Results {
		min, max := r.Range()
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%d\n",
			r.Name, r.Mean(), min, max, len(r.FoldAccuracies))
	}
	return tw.Flush()
}
