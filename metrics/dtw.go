// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"math"
)

// DTWOptions configures Dynamic Time Warping.
//
// Fields:
//   - Window       — maximum deviation |i-j| allowed (Sakoe–Chiba band).
//     -1 means no windowing constraint; 0 forces a strict diagonal.
//   - SlopePenalty — added cost for insertion/deletion steps (locality bias).
type DTWOptions struct {
	Window       int
	SlopePenalty float64
}

// DefaultDTWOptions returns an unconstrained, unpenalized configuration.
func DefaultDTWOptions() DTWOptions {
	return DTWOptions{Window: -1, SlopePenalty: 0}
}

// DTWDistance computes the Dynamic Time Warping distance between a and b.
//
// Algorithm (two rolling rows of the (n+1)×(m+1) DP table):
//
//	D[0][0] = 0, D[i][0] = D[0][j] = +∞
//	D[i][j] = |a[i-1]-b[j-1]| + min(D[i-1][j]+penalty, D[i][j-1]+penalty, D[i-1][j-1])
//	cells with |i-j| > Window are +∞.
//
// A window narrower than |n-m| makes the end cell unreachable and the
// distance +Inf.
//
// Errors: ErrEmptySequence, ErrBadWindow.
// Complexity: Time O(n·m), Memory O(m).
func DTWDistance(a, b []float64, opts DTWOptions) (float64, error) {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return 0, metricsErrorf("DTW", ErrEmptySequence)
	}
	if opts.Window < -1 {
		return 0, metricsErrorf("DTW", fmt.Errorf("window=%d: %w", opts.Window, ErrBadWindow))
	}
	window := opts.Window
	if window < 0 {
		window = math.MaxInt
	}
	penalty := opts.SlopePenalty
	inf := math.Inf(1)

	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	var i, j int
	var cost, best float64
	for i = 1; i <= n; i++ {
		curr[0] = inf
		for j = 1; j <= m; j++ {
			if absInt(i-j) > window {
				curr[j] = inf
				continue
			}
			cost = math.Abs(a[i-1] - b[j-1])
			best = math.Min(math.Min(prev[j]+penalty, curr[j-1]+penalty), prev[j-1])
			curr[j] = cost + best
		}
		prev, curr = curr, prev
	}

	return prev[m], nil
}

// DTW returns a Func computing DTWDistance with opts. Empty rows have
// distance 0 to each other; an invalid window panics when the Func is built.
func DTW(opts DTWOptions) Func {
	if opts.Window < -1 {
		panic("metrics: DTW: window must be >= -1")
	}

	return func(a, b []float64) float64 {
		if len(a) == 0 && len(b) == 0 {
			return 0
		}
		d, err := DTWDistance(a, b, opts)
		if err != nil {
			return math.Inf(1)
		}

		return d
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
