// Package main provides the pml binary: it downloads the weight-lifting
// sensor datasets, prunes sparse columns, trains three classifiers under
// cross-validation and grades the held-out rows by majority vote.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeffgrady/practicalmachinelearning/pkg/config"
	"github.com/jeffgrady/practicalmachinelearning/pkg/dataset"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "pml",
		Short:         "Exercise-quality grading pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config (defaults apply when empty)")

	root.AddCommand(newFetchCmd(&configPath))
	root.AddCommand(newRunCmd(&configPath))
	return root
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newFetchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the training and held-out CSVs into the cache dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return fetchAll(cmd.Context(), cfg)
		},
	}
}

func fetchAll(ctx context.Context, cfg config.Config) error {
	fc := dataset.DefaultFetchConfig()
	if err := dataset.Fetch(ctx, cfg.Data.TrainingURL, trainingPath(cfg), fc); err != nil {
		return err
	}
	return dataset.Fetch(ctx, cfg.Data.HoldoutURL, holdoutPath(cfg), fc)
}

func trainingPath(cfg config.Config) string {
	return filepath.Join(cfg.Data.CacheDir, "pml-training.csv")
}

func holdoutPath(cfg config.Config) string {
	return filepath.Join(cfg.Data.CacheDir, "pml-testing.csv")
}
