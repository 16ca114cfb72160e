package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveChart renders mean fold accuracy per model as a bar chart. The output
// format follows the filename extension (.png, .svg, .pdf).
func (s Summary) SaveChart(filename string) error {
	if len(s.Results) == 0 {
		return errors.New("report: no results to chart")
	}

	p := plot.New()
	p.Title.Text = "Cross-Validation Accuracy"
	p.Y.Label.Text = "Mean Accuracy"
	p.Y.Min, p.Y.Max = 0, 1

	values := make(plotter.Values, len(s.Results))
	names := make([]string, len(s.Results))
	for i, r := range s.Results {
		values[i] = r.Mean()
		names[i] = r.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("report: build bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("report: save chart: %w", err)
	}
	return nil
}
