package model

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// LDA is a Gaussian linear discriminant classifier: per-class means, one
// pooled covariance, and a linear decision function per class.
type LDA struct {
	classes []int
	priors  []float64
	// linear discriminant per class: score_k(x) = coef_k . x + intercept_k
	coefs      [][]float64
	intercepts []float64
}

// NewLDA returns an untrained discriminant classifier.
func NewLDA() *LDA { return &LDA{} }

// Fit estimates class means and the pooled within-class covariance, then
// precomputes the linear discriminant for each class. A small ridge is added
// to the covariance diagonal if it is not positive definite.
func (l *LDA) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("lda: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("lda: X and y length mismatch")
	}
	p := len(X[0])
	for i := range X {
		if len(X[i]) != p {
			return errors.New("lda: inconsistent number of features in X rows")
		}
	}

	byClass := map[int][]int{}
	for i, lab := range y {
		byClass[lab] = append(byClass[lab], i)
	}
	if len(byClass) < 2 {
		return errors.New("lda: need at least two classes")
	}
	l.classes = make([]int, 0, len(byClass))
	for cls := range byClass {
		l.classes = append(l.classes, cls)
	}
	sort.Ints(l.classes)

	means := make([][]float64, len(l.classes))
	l.priors = make([]float64, len(l.classes))
	for k, cls := range l.classes {
		rows := byClass[cls]
		m := make([]float64, p)
		for _, i := range rows {
			for j := 0; j < p; j++ {
				m[j] += X[i][j]
			}
		}
		for j := range m {
			m[j] /= float64(len(rows))
		}
		means[k] = m
		l.priors[k] = float64(len(rows)) / float64(n)
	}

	// Pooled within-class covariance.
	cov := mat.NewSymDense(p, nil)
	for k, cls := range l.classes {
		for _, i := range byClass[cls] {
			for a := 0; a < p; a++ {
				da := X[i][a] - means[k][a]
				for bcol := a; bcol < p; bcol++ {
					cov.SetSym(a, bcol, cov.At(a, bcol)+da*(X[i][bcol]-means[k][bcol]))
				}
			}
		}
	}
	denom := float64(n - len(l.classes))
	if denom < 1 {
		denom = 1
	}
	for a := 0; a < p; a++ {
		for bcol := a; bcol < p; bcol++ {
			cov.SetSym(a, bcol, cov.At(a, bcol)/denom)
		}
	}

	var chol mat.Cholesky
	ridge := 1e-6
	for attempt := 0; ; attempt++ {
		if chol.Factorize(cov) {
			break
		}
		if attempt >= 8 {
			return errors.New("lda: covariance matrix is singular")
		}
		for a := 0; a < p; a++ {
			cov.SetSym(a, a, cov.At(a, a)+ridge)
		}
		ridge *= 10
	}

	l.coefs = make([][]float64, len(l.classes))
	l.intercepts = make([]float64, len(l.classes))
	for k := range l.classes {
		mu := mat.NewVecDense(p, append([]float64(nil), means[k]...))
		var coef mat.VecDense
		if err := chol.SolveVecTo(&coef, mu); err != nil {
			return errors.New("lda: solving discriminant failed")
		}
		l.coefs[k] = make([]float64, p)
		for j := 0; j < p; j++ {
			l.coefs[k][j] = coef.AtVec(j)
		}
		l.intercepts[k] = -0.5*mat.Dot(&coef, mu) + math.Log(l.priors[k])
	}
	return nil
}

// Predict assigns each row to the class with the highest discriminant score.
func (l *LDA) Predict(X [][]float64) ([]int, error) {
	if len(l.classes) == 0 {
		return nil, errors.New("lda: predict before fit")
	}
	out := make([]int, len(X))
	for i, x := range X {
		bestK, bestScore := 0, math.Inf(-1)
		for k := range l.classes {
			s := l.intercepts[k]
			for j, c := range l.coefs[k] {
				s += c * x[j]
			}
			if s > bestScore {
				bestK, bestScore = k, s
			}
		}
		out[i] = l.classes[bestK]
	}
	return out, nil
}
