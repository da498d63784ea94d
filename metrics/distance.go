// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Func returns the distance between two vectors of equal length.
// Callers (Pairwise, Cross) guarantee the lengths match.
type Func func(a, b []float64) float64

var (
	// Manhattan is the L1 distance Σ|aᵢ−bᵢ|.
	Manhattan Func = func(a, b []float64) float64 { return floats.Distance(a, b, 1) }

	// Euclidean is the L2 distance √Σ(aᵢ−bᵢ)².
	Euclidean Func = func(a, b []float64) float64 { return floats.Distance(a, b, 2) }

	// Chebyshev is the L∞ distance max|aᵢ−bᵢ|.
	Chebyshev Func = func(a, b []float64) float64 { return floats.Distance(a, b, math.Inf(1)) }

	// SquaredEuclidean is Σ(aᵢ−bᵢ)², the Euclidean distance without the root.
	SquaredEuclidean Func = func(a, b []float64) float64 { return powSum(a, b, 2) }
)

// Minkowski returns the L_p distance (Σ|aᵢ−bᵢ|^p)^(1/p).
// p = +Inf yields Chebyshev.
// Errors: ErrInvalidOrder for p < 1 or NaN.
func Minkowski(p float64) (Func, error) {
	if err := validateOrder(p); err != nil {
		return nil, metricsErrorf("Minkowski", err)
	}

	return func(a, b []float64) float64 { return floats.Distance(a, b, p) }, nil
}

// MinkowskiNoRoot returns Σ|aᵢ−bᵢ|^p without the final 1/p root.
// It is monotone in the Minkowski distance, so rankings are preserved.
// p = +Inf has no rootless form and yields Chebyshev.
// Errors: ErrInvalidOrder for p < 1 or NaN.
func MinkowskiNoRoot(p float64) (Func, error) {
	if err := validateOrder(p); err != nil {
		return nil, metricsErrorf("MinkowskiNoRoot", err)
	}
	if math.IsInf(p, 1) {
		return Chebyshev, nil
	}

	return func(a, b []float64) float64 { return powSum(a, b, p) }, nil
}

func validateOrder(p float64) error {
	if math.IsNaN(p) || p < 1 {
		return fmt.Errorf("p=%g: %w", p, ErrInvalidOrder)
	}

	return nil
}

// powSum computes Σ|aᵢ−bᵢ|^p with exact fast paths for p = 1 and p = 2.
func powSum(a, b []float64, p float64) float64 {
	var s, d float64
	switch p {
	case 1:
		for i := range a {
			s += math.Abs(a[i] - b[i])
		}
	case 2:
		for i := range a {
			d = a[i] - b[i]
			s += d * d
		}
	default:
		for i := range a {
			s += math.Pow(math.Abs(a[i]-b[i]), p)
		}
	}

	return s
}
