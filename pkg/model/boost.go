package model

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

// Boosting is a SAMME-style multiclass booster over shallow trees. Sample
// weights are applied through weighted resampling rather than weight-aware
// tree training.
type Boosting struct {
	NRounds     int
	MaxDepth    int
	RandomState int64

	trees  []*DecisionTreeClassifier
	alphas []float64
}

// BoostOption is functional config for Boosting.
type BoostOption func(*Boosting)

func WithNRounds(m int) BoostOption       { return func(b *Boosting) { b.NRounds = m } }
func WithBoostMaxDepth(d int) BoostOption { return func(b *Boosting) { b.MaxDepth = d } }
func WithBoostRandomState(seed int64) BoostOption {
	return func(b *Boosting) { b.RandomState = seed }
}

// NewBoosting initializes the booster with sensible defaults.
func NewBoosting(opts ...BoostOption) *Boosting {
	b := &Boosting{
		NRounds:     50,
		MaxDepth:    3,
		RandomState: time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Fit runs the boosting rounds: train a shallow tree on a weighted resample,
// measure its weighted error, derive its vote weight and upweight the rows it
// got wrong. Rounds whose error reaches the random-guess bound are discarded
// and reset the weights.
func (b *Boosting) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("boost: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("boost: X and y length mismatch")
	}

	classes := map[int]bool{}
	for _, lab := range y {
		classes[lab] = true
	}
	k := len(classes)
	if k < 2 {
		return errors.New("boost: need at least two classes")
	}
	// SAMME vote-weight offset and the error bound below which a round
	// still beats random guessing among k classes.
	guessBound := 1 - 1/float64(k)

	rnd := rand.New(rand.NewSource(b.RandomState))
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}

	b.trees = nil
	b.alphas = nil
	for round := 0; round < b.NRounds; round++ {
		sampleX, sampleY := weightedResample(X, y, w, rnd)
		tree := NewDecisionTreeClassifier(
			WithMaxDepth(b.MaxDepth),
			WithRandomState(b.RandomState+int64(round)),
		)
		if err := tree.Fit(sampleX, sampleY); err != nil {
			return err
		}
		preds, err := tree.Predict(X)
		if err != nil {
			return err
		}

		errSum := 0.0
		for i := range y {
			if preds[i] != y[i] {
				errSum += w[i]
			}
		}
		if errSum >= guessBound {
			// Unhelpful round: drop it and restart from uniform weights.
			for i := range w {
				w[i] = 1 / float64(n)
			}
			continue
		}
		if errSum < 1e-10 {
			errSum = 1e-10
		}

		alpha := math.Log((1-errSum)/errSum) + math.Log(float64(k-1))
		b.trees = append(b.trees, tree)
		b.alphas = append(b.alphas, alpha)

		total := 0.0
		for i := range w {
			if preds[i] != y[i] {
				w[i] *= math.Exp(alpha)
			}
			total += w[i]
		}
		for i := range w {
			w[i] /= total
		}
	}
	if len(b.trees) == 0 {
		return errors.New("boost: no round beat random guessing")
	}
	return nil
}

// Predict returns the alpha-weighted vote across rounds for each row.
func (b *Boosting) Predict(X [][]float64) ([]int, error) {
	if len(b.trees) == 0 {
		return nil, errors.New("boost: predict before fit")
	}

	allPreds := make([][]int, len(b.trees))
	for t, tree := range b.trees {
		preds, err := tree.Predict(X)
		if err != nil {
			return nil, err
		}
		allPreds[t] = preds
	}

	out := make([]int, len(X))
	for i := range X {
		votes := map[int]float64{}
		for t := range b.trees {
			votes[allPreds[t][i]] += b.alphas[t]
		}
		bestClass, bestVote := 0, math.Inf(-1)
		for cls, v := range votes {
			if v > bestVote || (v == bestVote && cls < bestClass) {
				bestClass, bestVote = cls, v
			}
		}
		out[i] = bestClass
	}
	return out, nil
}

func weightedResample(X [][]float64, y []int, w []float64, rnd *rand.Rand) ([][]float64, []int) {
	n := len(X)
	cum := make([]float64, n)
	sum := 0.0
	for i, wi := range w {
		sum += wi
		cum[i] = sum
	}
	outX := make([][]float64, n)
	outY := make([]int, n)
	for i := 0; i < n; i++ {
		r := rnd.Float64() * sum
		lo, hi := 0, n-1
		for lo < hi {
			mid := (lo + hi) / 2
			if cum[mid] < r {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		outX[i] = X[lo]
		outY[i] = y[lo]
	}
	return outX, outY
}
