package model

// Accuracy is the fraction of predictions matching the ground truth.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// PrecisionRecallF1 computes per-class precision, recall and F1 for the
// given class code.
func PrecisionRecallF1(yTrue, yPred []int, class int) (prec, rec, f1 float64) {
	tp, fp, fn := 0, 0, 0
	for i := range yTrue {
		switch {
		case yPred[i] == class && yTrue[i] == class:
			tp++
		case yPred[i] == class && yTrue[i] != class:
			fp++
		case yPred[i] != class && yTrue[i] == class:
			fn++
		}
	}
	if tp+fp > 0 {
		prec = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		rec = float64(tp) / float64(tp+fn)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return prec, rec, f1
}
