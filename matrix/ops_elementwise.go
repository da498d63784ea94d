// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column broadcast kernels (subtract / scale per column) shared by the
//     statistics helpers and by feature standardization in mlp.
//   - Tolerance comparison (AllClose) and exact equality (Equal).
//
// Determinism & Performance:
//   - Fixed i→j loops over the row-major flat buffer.
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.
//
// AI-Hints:
//   - Keep broadcast vectors (means, 1/std) precomputed and reuse them across calls.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	opSubCols   = "SubCols"
	opScaleCols = "ScaleCols"
	opAllClose  = "AllClose"
	opEqual     = "Equal"
)

// broadcastCols computes out[i,j] = f(X[i,j], v[j]).
func broadcastCols(X Matrix, v []float64, opTag string, f func(x, b float64) float64) (*Dense, error) {
	d, err := densify(X)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if err = ValidateVecLen(v, d.c); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out, err := NewDense(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out.data[base+j] = f(d.data[base+j], v[j])
		}
	}

	return out, nil
}

// SubCols computes out[i,j] = X[i,j] - v[j].
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(v) != Cols).
// Complexity: O(r*c).
func SubCols(X Matrix, v []float64) (*Dense, error) {
	return broadcastCols(X, v, opSubCols, func(x, b float64) float64 { return x - b })
}

// ScaleCols computes out[i,j] = X[i,j] * v[j].
// Use 1/std for z-scoring and 1 (or 0) for degenerate columns.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(v) != Cols).
// Complexity: O(r*c).
func ScaleCols(X Matrix, v []float64) (*Dense, error) {
	return broadcastCols(X, v, opScaleCols, func(x, b float64) float64 { return x * b })
}

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds element-wise.
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances → ErrNaNInf.
//
// Complexity: O(r*c), early exit on the first violation.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	da, db, err := densifyPair(a, b, opAllClose)
	if err != nil {
		return false, err
	}
	for k, bv := range db.data {
		if math.Abs(da.data[k]-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}

// Equal reports exact element-wise equality of two same-shape matrices.
// Differing shapes return (false, nil); nil operands → ErrNilMatrix.
func Equal(a, b Matrix) (bool, error) {
	da, err := densify(a)
	if err != nil {
		return false, matrixErrorf(opEqual, err)
	}
	db, err := densify(b)
	if err != nil {
		return false, matrixErrorf(opEqual, err)
	}
	if da.r != db.r || da.c != db.c {
		return false, nil
	}

	return floats.Equal(da.data, db.data), nil
}
