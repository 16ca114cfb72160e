// Package ensemble combines the label predictions of the three trained
// classifiers into one consensus sequence.
package ensemble

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when the prediction sequences disagree in
// length.
var ErrInvalidArgument = errors.New("ensemble: invalid argument")

// Combine produces one consensus label per row from three equal-length
// prediction sequences. Precedence per row: if a agrees with b or with c,
// a's label wins; else if b agrees with c, b's label wins; else all three
// disagree and a's label is the tie-break default. The first sequence being
// the fallback is a deliberate, fixed policy, not an artifact of evaluation
// order.
//
// The function is total and deterministic: every row yields exactly one
// label, including the all-disagree case. Inputs are never mutated.
func Combine(a, b, c []string) ([]string, error) {
	if len(b) != len(a) || len(c) != len(a) {
		return nil, fmt.Errorf("%w: prediction lengths differ (%d, %d, %d)",
			ErrInvalidArgument, len(a), len(b), len(c))
	}
	out := make([]string, len(a))
	for i := range a {
		switch {
		case a[i] == b[i] || a[i] == c[i]:
			out[i] = a[i]
		case b[i] == c[i]:
			out[i] = b[i]
		default:
			out[i] = a[i]
		}
	}
	return out, nil
}
