// Package config loads the pipeline configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete pipeline configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Prune  PruneConfig  `yaml:"prune"`
	Train  TrainConfig  `yaml:"train"`
	Report ReportConfig `yaml:"report"`
}

// DataConfig locates the source CSVs and the local cache.
type DataConfig struct {
	// TrainingURL is the labelled sensor dataset.
	TrainingURL string `yaml:"training_url"`
	// HoldoutURL is the unlabelled rows graded by the final vote.
	HoldoutURL string `yaml:"holdout_url"`
	CacheDir   string `yaml:"cache_dir"`
}

// PruneConfig parameterizes the column pruner. Values are passed to the
// pruner as-is; range validation is the pruner's own contract, so a bad
// threshold fails there rather than being clamped here.
type PruneConfig struct {
	// LeadingColumns counts the identifier/timestamp/window columns at the
	// start of each row that carry no measurement data.
	LeadingColumns int `yaml:"leading_columns"`
	// MissingThreshold is the sparse-column cutoff in (0,1), exclusive.
	MissingThreshold float64 `yaml:"missing_threshold"`
}

// TrainConfig parameterizes training and cross-validation.
type TrainConfig struct {
	Folds   int   `yaml:"folds"`
	Workers int   `yaml:"workers"`
	Seed    int64 `yaml:"seed"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	// ChartPath, when set, receives an accuracy bar chart.
	ChartPath string `yaml:"chart_path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Data: DataConfig{
			TrainingURL: "https://d396qusza40orc.cloudfront.net/predmachlearn/pml-training.csv",
			HoldoutURL:  "https://d396qusza40orc.cloudfront.net/predmachlearn/pml-testing.csv",
			CacheDir:    "data",
		},
		Prune: PruneConfig{
			LeadingColumns:   7,
			MissingThreshold: 0.95,
		},
		Train: TrainConfig{
			Folds:   5,
			Workers: 3,
			Seed:    1,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
