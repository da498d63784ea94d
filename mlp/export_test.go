// SPDX-License-Identifier: MIT
package mlp

// Test bridge: exposes unexported helpers to mlp_test without widening the API.

import "github.com/katalvlaran/lvml/matrix"

// InitWeightsForTest wraps initWeights.
func InitWeightsForTest(rows, cols int, kind WeightInit, src Source) (*matrix.Dense, error) {
	return initWeights(rows, cols, kind, src)
}

// AugmentForTest wraps augment.
func AugmentForTest(A *matrix.Dense) (*matrix.Dense, error) { return augment(A) }

// ShuffleForTest wraps shuffleInts over 0..n-1.
func ShuffleForTest(n int, src Source) []int {
	p := identity(n)
	shuffleInts(p, src)

	return p
}

// LRStepsForTest feeds losses through a fresh schedule built from cfg and
// returns the rate after every step.
func LRStepsForTest(cfg Config, losses []float64) []float64 {
	s := newLRSchedule(cfg)
	out := make([]float64, 0, len(losses))
	for i := 1; i < len(losses); i++ {
		s.step(losses[i-1], losses[i])
		out = append(out, s.rate)
	}

	return out
}

// GradientForTest returns the averaged, L2-penalized gradient of ws on (X, Y)
// and the batch loss, split over workers chunks exactly as Fit does.
func GradientForTest(ws []*matrix.Dense, X, Y *matrix.Dense, act Activation, lambda float64, workers int) ([]*matrix.Dense, float64, error) {
	fns, err := act.resolve()
	if err != nil {
		return nil, 0, err
	}
	cfg := DefaultConfig()
	cfg.Regularization = lambda
	cfg.Workers = workers
	t := &trainer{cfg: cfg, act: fns, x: X, y: Y, w: ws}

	return t.regularizedGradient(X, Y)
}
