package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 7, cfg.Prune.LeadingColumns)
	assert.Equal(t, 0.95, cfg.Prune.MissingThreshold)
	assert.Equal(t, 5, cfg.Train.Folds)
	assert.NotEmpty(t, cfg.Data.TrainingURL)
	assert.NotEmpty(t, cfg.Data.HoldoutURL)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pml.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
prune:
  leading_columns: 3
  missing_threshold: 0.5
train:
  folds: 10
  seed: 42
report:
  chart_path: out/acc.png
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Prune.LeadingColumns)
	assert.Equal(t, 0.5, cfg.Prune.MissingThreshold)
	assert.Equal(t, 10, cfg.Train.Folds)
	assert.Equal(t, int64(42), cfg.Train.Seed)
	assert.Equal(t, "out/acc.png", cfg.Report.ChartPath)
	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Data.TrainingURL, cfg.Data.TrainingURL)
}

func TestLoadDoesNotValidateThreshold(t *testing.T) {
	// Out-of-range thresholds pass through untouched; the pruner rejects
	// them instead of config silently clamping.
	path := filepath.Join(t.TempDir(), "pml.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prune:\n  missing_threshold: 1.5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Prune.MissingThreshold)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prune: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
