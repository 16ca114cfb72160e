package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffgrady/practicalmachinelearning/pkg/config"
	"github.com/jeffgrady/practicalmachinelearning/pkg/dataprep"
	"github.com/jeffgrady/practicalmachinelearning/pkg/dataset"
)

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCachePaths(t *testing.T) {
	cfg := config.Default()
	cfg.Data.CacheDir = "/tmp/pml"
	assert.Equal(t, filepath.Join("/tmp/pml", "pml-training.csv"), trainingPath(cfg))
	assert.Equal(t, filepath.Join("/tmp/pml", "pml-testing.csv"), holdoutPath(cfg))
}

func TestLoadHoldoutProjectsPrunedSchema(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Data.CacheDir = dir

	// The held-out file carries extra columns and a different column order
	// relative to the pruned training schema.
	holdout := "num_window,roll_belt,yaw_belt,problem_id\n" +
		"10,1.5,88,1\n" +
		"11,2.5,87,2\n"
	require.NoError(t, os.WriteFile(holdoutPath(cfg), []byte(holdout), 0o644))

	pruned := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "roll_belt", Kind: dataset.Numeric},
			{Name: "yaw_belt", Kind: dataset.Numeric},
			{Name: "classe", Kind: dataset.Categorical},
		},
		Rows: [][]dataset.Cell{
			{{Num: 0}, {Num: 0}, {Text: "A"}},
		},
	}
	enc, err := dataprep.NewEncoder(pruned)
	require.NoError(t, err)

	X, err := loadHoldout(cfg, enc)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1.5, 88}, {2.5, 87}}, X)
}

func TestLoadHoldoutUsesTrainingCategoryCodes(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Data.CacheDir = dir

	// Only "yes" appears in the held-out file; its code must still be the
	// training one, not a fresh encoding of the held-out alphabet.
	holdout := "new_window,roll_belt,problem_id\nyes,1.5,1\n"
	require.NoError(t, os.WriteFile(holdoutPath(cfg), []byte(holdout), 0o644))

	pruned := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "new_window", Kind: dataset.Categorical},
			{Name: "roll_belt", Kind: dataset.Numeric},
			{Name: "classe", Kind: dataset.Categorical},
		},
		Rows: [][]dataset.Cell{
			{{Text: "no"}, {Num: 0}, {Text: "A"}},
			{{Text: "yes"}, {Num: 1}, {Text: "B"}},
		},
	}
	enc, err := dataprep.NewEncoder(pruned)
	require.NoError(t, err)

	X, err := loadHoldout(cfg, enc)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1.5}}, X)
}

func TestLoadHoldoutMissingColumn(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Data.CacheDir = dir

	require.NoError(t, os.WriteFile(holdoutPath(cfg), []byte("roll_belt,problem_id\n1,1\n"), 0o644))

	pruned := &dataset.Dataset{
		Columns: []dataset.Column{
			{Name: "yaw_belt", Kind: dataset.Numeric},
			{Name: "classe", Kind: dataset.Categorical},
		},
		Rows: [][]dataset.Cell{{{Num: 0}, {Text: "A"}}},
	}
	enc, err := dataprep.NewEncoder(pruned)
	require.NoError(t, err)

	_, err = loadHoldout(cfg, enc)
	assert.ErrorContains(t, err, "yaw_belt")
}
