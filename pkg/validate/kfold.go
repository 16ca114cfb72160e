// Package validate estimates out-of-sample accuracy with k-fold
// cross-validation. It trains throwaway classifier instances via a factory;
// the pipeline core only consumes the accuracy figures it reports.
package validate

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jeffgrady/practicalmachinelearning/pkg/model"
)

// KFold returns k index folds over n rows, assigned round-robin from a
// seeded shuffle so runs are reproducible.
func KFold(n, k int, seed int64) ([][]int, error) {
	if k < 2 || k > n {
		return nil, fmt.Errorf("validate: fold count %d out of range for %d rows", k, n)
	}
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	folds := make([][]int, k)
	for i, idx := range indices {
		folds[i%k] = append(folds[i%k], idx)
	}
	return folds, nil
}

// CrossValidate trains one fresh classifier per fold on the complement of the
// fold and scores it on the fold, returning per-fold accuracies in fold order.
func CrossValidate(factory model.Factory, X [][]float64, y []int, k int, seed int64) ([]float64, error) {
	if factory == nil {
		return nil, errors.New("validate: nil classifier factory")
	}
	if len(X) != len(y) {
		return nil, errors.New("validate: X and y length mismatch")
	}
	folds, err := KFold(len(X), k, seed)
	if err != nil {
		return nil, err
	}

	accs := make([]float64, k)
	for f, holdout := range folds {
		inFold := make([]bool, len(X))
		for _, i := range holdout {
			inFold[i] = true
		}

		var trainX, testX [][]float64
		var trainY, testY []int
		for i := range X {
			if inFold[i] {
				testX = append(testX, X[i])
				testY = append(testY, y[i])
			} else {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}

		clf := factory()
		if err := clf.Fit(trainX, trainY); err != nil {
			return nil, fmt.Errorf("validate: fold %d fit: %w", f, err)
		}
		preds, err := clf.Predict(testX)
		if err != nil {
			return nil, fmt.Errorf("validate: fold %d predict: %w", f, err)
		}
		accs[f] = model.Accuracy(testY, preds)
	}
	return accs, nil
}
