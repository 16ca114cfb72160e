package model

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// RandomForest bags decision trees over bootstrap samples and predicts by
// majority vote across trees.
type RandomForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	Bootstrap       bool
	RandomState     int64

	trees []*DecisionTreeClassifier
}

// ForestOption is functional config for RandomForest.
type ForestOption func(*RandomForest)

func WithNEstimators(n int) ForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithForestMaxDepth(d int) ForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) ForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithBootstrap(b bool) ForestOption { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestRandomState(seed int64) ForestOption {
	return func(rf *RandomForest) { rf.RandomState = seed }
}

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...ForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MaxFeatures:     0,
		Bootstrap:       true,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the forest, one goroutine per tree. Each tree gets its own
// seeded rand source and its own bootstrap sample.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("randomforest: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("randomforest: X and y length mismatch")
	}

	rf.trees = make([]*DecisionTreeClassifier, rf.NEstimators)
	var wg sync.WaitGroup
	errCh := make(chan error, rf.NEstimators)

	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			treeRand := rand.New(rand.NewSource(rf.RandomState + int64(idx)))
			sampleX := make([][]float64, n)
			sampleY := make([]int, n)
			for j := 0; j < n; j++ {
				src := j
				if rf.Bootstrap {
					src = treeRand.Intn(n)
				}
				sampleX[j] = X[src]
				sampleY[j] = y[src]
			}

			tree := NewDecisionTreeClassifier(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMaxFeatures(rf.MaxFeatures),
				WithRandomState(rf.RandomState+int64(idx)),
			)
			if err := tree.Fit(sampleX, sampleY); err != nil {
				errCh <- err
				return
			}
			rf.trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			// Leave no half-built forest behind; Predict must report
			// an untrained forest rather than hit a nil tree.
			rf.trees = nil
			return err
		}
	}
	return nil
}

// Predict returns the majority vote of all trees for each row.
func (rf *RandomForest) Predict(X [][]float64) ([]int, error) {
	if len(rf.trees) == 0 {
		return nil, errors.New("randomforest: predict before fit")
	}

	allPreds := make([][]int, len(rf.trees))
	var wg sync.WaitGroup
	errCh := make(chan error, len(rf.trees))
	for t, tree := range rf.trees {
		wg.Add(1)
		go func(t int, tree *DecisionTreeClassifier) {
			defer wg.Done()
			preds, err := tree.Predict(X)
			if err != nil {
				errCh <- err
				return
			}
			allPreds[t] = preds
		}(t, tree)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	out := make([]int, len(X))
	for i := range X {
		counts := map[int]int{}
		for t := range rf.trees {
			counts[allPreds[t][i]]++
		}
		out[i] = majorityClass(counts)
	}
	return out, nil
}
