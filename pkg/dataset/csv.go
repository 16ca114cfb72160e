package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Explicit missing markers used by the source files. The empty string is a
// missing marker only in numeric columns; in categorical columns it is a
// blank value and counted separately by the pruner.
var missingMarkers = map[string]bool{
	"NA":      true,
	"NaN":     true,
	"#DIV/0!": true,
}

// ReadCSV parses a comma-separated table with a header row into a Dataset.
// Parsing itself is encoding/csv; this function only infers per-column kinds
// and normalizes missing markers. A column is Numeric when every value that
// is not a marker and not empty parses as a float.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataset: read rows: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrInvalidArgument)
	}

	cols := len(header)
	kinds := make([]Kind, cols)
	for j := range cols {
		kinds[j] = inferKind(records, j)
	}

	ds := &Dataset{
		Columns: make([]Column, cols),
		Rows:    make([][]Cell, len(records)),
	}
	for j, name := range header {
		ds.Columns[j] = Column{Name: name, Kind: kinds[j]}
	}
	for i, rec := range records {
		row := make([]Cell, cols)
		for j, raw := range rec {
			row[j] = parseCell(raw, kinds[j])
		}
		ds.Rows[i] = row
	}
	return ds, nil
}

// Load reads a CSV file from disk.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

func inferKind(records [][]string, col int) Kind {
	seen := false
	for _, rec := range records {
		v := rec[col]
		if v == "" || missingMarkers[v] {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return Categorical
		}
		seen = true
	}
	if seen {
		return Numeric
	}
	// All values missing or blank: no numeric evidence, treat as categorical
	// so blanks stay countable.
	return Categorical
}

func parseCell(raw string, kind Kind) Cell {
	if missingMarkers[raw] {
		return Cell{Missing: true}
	}
	if kind == Numeric {
		if raw == "" {
			return Cell{Missing: true}
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Cell{Missing: true}
		}
		return Cell{Num: f}
	}
	return Cell{Text: raw}
}
