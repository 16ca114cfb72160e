package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"time"
)

// DecisionTreeClassifier is a CART-style classifier splitting on Gini
// impurity with numeric thresholds.
type DecisionTreeClassifier struct {
	MaxDepth        int // 0 => no limit
	MinSamplesSplit int
	MaxFeatures     int // 0 => all features; >0 => features sampled per split
	RandomState     int64

	root *dtNode
}

type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold goes left
	left      *dtNode
	right     *dtNode
	pred      int // class code at a leaf
}

// TreeOption is functional config for DecisionTreeClassifier.
type TreeOption func(*DecisionTreeClassifier)

func WithMaxDepth(d int) TreeOption { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMaxFeatures(k int) TreeOption { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithRandomState(seed int64) TreeOption {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns a tree with sensible defaults.
func NewDecisionTreeClassifier(opts ...TreeOption) *DecisionTreeClassifier {
	t := &DecisionTreeClassifier{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MaxFeatures:     0,
		RandomState:     time.Now().UnixNano(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit trains the tree on X (n x p) and integer class codes y.
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("dtree: empty X")
	}
	if len(y) != len(X) {
		return errors.New("dtree: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("dtree: inconsistent number of features in X rows")
		}
	}

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.root = t.build(X, y, idx, 0, p, rnd)
	return nil
}

// Predict returns one class code per row of X.
func (t *DecisionTreeClassifier) Predict(X [][]float64) ([]int, error) {
	if t.root == nil {
		return nil, errors.New("dtree: predict before fit")
	}
	out := make([]int, len(X))
	for i, x := range X {
		node := t.root
		for !node.isLeaf {
			if x[node.feature] <= node.threshold {
				node = node.left
			} else {
				node = node.right
			}
		}
		out[i] = node.pred
	}
	return out, nil
}

func (t *DecisionTreeClassifier) build(X [][]float64, y, idx []int, depth, p int, rnd *rand.Rand) *dtNode {
	counts := map[int]int{}
	for _, i := range idx {
		counts[y[i]]++
	}
	if len(counts) == 1 ||
		len(idx) < t.MinSamplesSplit ||
		(t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return &dtNode{isLeaf: true, pred: majorityClass(counts)}
	}

	feature, threshold, ok := t.bestSplit(X, y, idx, p, rnd)
	if !ok {
		return &dtNode{isLeaf: true, pred: majorityClass(counts)}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &dtNode{isLeaf: true, pred: majorityClass(counts)}
	}

	return &dtNode{
		feature:   feature,
		threshold: threshold,
		left:      t.build(X, y, left, depth+1, p, rnd),
		right:     t.build(X, y, right, depth+1, p, rnd),
	}
}

// bestSplit scans candidate features for the threshold with the lowest
// weighted Gini impurity. Thresholds are midpoints between consecutive
// distinct sorted values.
func (t *DecisionTreeClassifier) bestSplit(X [][]float64, y, idx []int, p int, rnd *rand.Rand) (feature int, threshold float64, ok bool) {
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		features = features[:t.MaxFeatures]
	}

	best := math.Inf(1)
	for _, f := range features {
		vals := make([]float64, len(idx))
		for k, i := range idx {
			vals[k] = X[i][f]
		}
		for _, thr := range candidateThresholds(vals) {
			g := weightedGini(X, y, idx, f, thr)
			if g < best {
				best, feature, threshold, ok = g, f, thr, true
			}
		}
	}
	return feature, threshold, ok
}

func candidateThresholds(vals []float64) []float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	var out []float64
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			out = append(out, (sorted[i]+sorted[i-1])/2)
		}
	}
	return out
}

func weightedGini(X [][]float64, y, idx []int, f int, thr float64) float64 {
	leftCounts := map[int]int{}
	rightCounts := map[int]int{}
	nl, nr := 0, 0
	for _, i := range idx {
		if X[i][f] <= thr {
			leftCounts[y[i]]++
			nl++
		} else {
			rightCounts[y[i]]++
			nr++
		}
	}
	n := float64(nl + nr)
	return float64(nl)/n*gini(leftCounts, nl) + float64(nr)/n*gini(rightCounts, nr)
}

func gini(counts map[int]int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}

func majorityClass(counts map[int]int) int {
	bestClass, bestCount := 0, -1
	for cls, cnt := range counts {
		if cnt > bestCount || (cnt == bestCount && cls < bestClass) {
			bestClass, bestCount = cls, cnt
		}
	}
	return bestClass
}
