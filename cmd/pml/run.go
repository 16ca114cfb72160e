package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jeffgrady/practicalmachinelearning/pkg/config"
	"github.com/jeffgrady/practicalmachinelearning/pkg/dataprep"
	"github.com/jeffgrady/practicalmachinelearning/pkg/dataset"
	"github.com/jeffgrady/practicalmachinelearning/pkg/ensemble"
	"github.com/jeffgrady/practicalmachinelearning/pkg/model"
	"github.com/jeffgrady/practicalmachinelearning/pkg/parallel"
	"github.com/jeffgrady/practicalmachinelearning/pkg/report"
	"github.com/jeffgrady/practicalmachinelearning/pkg/validate"
)

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: prune, train, cross-validate, vote",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

// candidate pairs a named classifier factory with its trained instance and
// fold accuracies.
type candidate struct {
	name    string
	factory model.Factory
	clf     model.Classifier
	folds   []float64
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	if err := fetchAll(ctx, cfg); err != nil {
		return err
	}

	raw, err := dataset.Load(trainingPath(cfg))
	if err != nil {
		return err
	}
	slog.Info("loaded training data", "rows", raw.NumRows(), "columns", raw.NumCols())

	pruned, err := dataprep.Prune(raw, cfg.Prune.LeadingColumns, cfg.Prune.MissingThreshold)
	if err != nil {
		return err
	}
	slog.Info("pruned sparse columns",
		"kept", pruned.NumCols(), "dropped", raw.NumCols()-pruned.NumCols())

	X, labels, err := dataprep.Matrix(pruned)
	if err != nil {
		return err
	}
	y, mapping := dataprep.LabelEncode(labels)

	enc, err := dataprep.NewEncoder(pruned)
	if err != nil {
		return err
	}
	holdoutX, err := loadHoldout(cfg, enc)
	if err != nil {
		return err
	}

	seed := cfg.Train.Seed
	candidates := []*candidate{
		{name: "random-forest", factory: func() model.Classifier {
			return model.NewRandomForest(
				model.WithNEstimators(50),
				model.WithForestMaxDepth(12),
				model.WithForestMaxFeatures(8),
				model.WithForestRandomState(seed),
			)
		}},
		{name: "boosting", factory: func() model.Classifier {
			return model.NewBoosting(
				model.WithNRounds(40),
				model.WithBoostMaxDepth(3),
				model.WithBoostRandomState(seed),
			)
		}},
		{name: "lda", factory: func() model.Classifier {
			return model.NewLDA()
		}},
	}

	// Train and cross-validate the three candidates concurrently. The pool
	// is scoped to this call; workers are drained before we continue.
	_, err = parallel.Map(ctx, candidates, cfg.Train.Workers,
		func(ctx context.Context, _ int, c *candidate) (struct{}, error) {
			folds, err := validate.CrossValidate(c.factory, X, y, cfg.Train.Folds, seed)
			if err != nil {
				return struct{}{}, fmt.Errorf("%s: %w", c.name, err)
			}
			c.folds = folds

			clf := c.factory()
			if err := clf.Fit(X, y); err != nil {
				return struct{}{}, fmt.Errorf("%s: %w", c.name, err)
			}
			c.clf = clf
			slog.Info("trained classifier", "model", c.name)
			return struct{}{}, nil
		})
	if err != nil {
		return err
	}

	var preds [][]string
	for _, c := range candidates {
		codes, err := c.clf.Predict(holdoutX)
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		p, err := dataprep.DecodeLabels(codes, mapping)
		if err != nil {
			return err
		}
		preds = append(preds, p)
	}

	final, err := ensemble.Combine(preds[0], preds[1], preds[2])
	if err != nil {
		return err
	}

	summary := report.Summary{}
	for _, c := range candidates {
		summary.Results = append(summary.Results, report.ModelResult{
			Name:           c.name,
			FoldAccuracies: c.folds,
		})
	}
	if err := summary.WriteTable(out); err != nil {
		return err
	}
	if cfg.Report.ChartPath != "" {
		if err := summary.SaveChart(cfg.Report.ChartPath); err != nil {
			return err
		}
		slog.Info("wrote accuracy chart", "path", cfg.Report.ChartPath)
	}

	fmt.Fprintln(out)
	for i, grade := range final {
		fmt.Fprintf(out, "row %d: %s\n", i+1, grade)
	}
	return nil
}

// loadHoldout reads the held-out CSV and encodes it with the encoder built
// from the pruned training data, so the held-out rows get the training
// column kinds and category codes. The held-out file carries a problem-id
// column in place of the label, so columns are matched by name, never by
// position.
func loadHoldout(cfg config.Config, enc *dataprep.Encoder) ([][]float64, error) {
	ho, err := dataset.Load(holdoutPath(cfg))
	if err != nil {
		return nil, err
	}
	return enc.Features(ho)
}
