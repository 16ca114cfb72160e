// Package model provides the classifier implementations the pipeline trains:
// a CART decision tree, a bagged random forest, a boosted ensemble and a
// linear discriminant. The rest of the pipeline only sees the Classifier
// interface; it has no knowledge of model internals.
package model

// Classifier is a supervised multiclass classifier over a numeric feature
// matrix. y holds integer class codes. Predict returns one code per row of X,
// in row order.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) ([]int, error)
}

// Factory builds a fresh, untrained classifier. Cross-validation uses it to
// train one instance per fold.
type Factory func() Classifier
