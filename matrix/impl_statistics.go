// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics used by feature preprocessing: centering, sample
//     standard deviation, covariance and Pearson correlation.
//   - Compositions over canonical kernels (Mul/Transpose/Scale) and the column
//     broadcast kernels in ops_elementwise.go.
//
// Exposed API:
//   - CenterColumns(X) -> (Xc, means)          // subtract per-column mean
//   - ColStdDevs(X)    -> stds                  // sample std (n-1), gonum/stat
//   - Covariance(X)    -> (Cov, means)          // (Xcᵀ Xc)/(r-1)
//   - Correlation(X)   -> (Corr, means, stds)   // z-scored; std=0 → zeroed column
//   - RowSums(X), ColSums(X)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Zero-size matrices (0×N or N×0) are treated as no-ops for centering.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	opCenterColumns = "CenterColumns"
	opColStdDevs    = "ColStdDevs"
	opCovariance    = "Covariance"
	opCorrelation   = "Correlation"
	opRowSums       = "RowSums"
	opColSums       = "ColSums"
)

// CenterColumns subtracts the per-column mean from every element.
// Implementation:
//   - Stage 1: Validate X and handle zero-size as a strict no-op (copy, zero means).
//   - Stage 2: Column means in one deterministic pass.
//   - Stage 3: SubCols produces the centered copy.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: column means (len=c); reuse them to un-center later.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) {
	d, err := densify(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	if d.r == 0 || d.c == 0 {
		return d.Copy(), make([]float64, d.c), nil
	}
	means, err := ColMeans(d)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	Xc, err := SubCols(d, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// ColStdDevs returns the per-column sample standard deviation (n-1 denominator).
// Columns of a single-row matrix report 0 (no spread can be observed).
// Errors: ErrNilMatrix; ErrEmptyMatrix when X has no rows.
// Complexity: O(r*c).
func ColStdDevs(X Matrix) ([]float64, error) {
	d, err := densify(X)
	if err != nil {
		return nil, matrixErrorf(opColStdDevs, err)
	}
	if d.r == 0 {
		return nil, matrixErrorf(opColStdDevs, ErrEmptyMatrix)
	}
	out := make([]float64, d.c)
	if d.r < 2 {
		return out, nil
	}
	col := make([]float64, d.r)
	for j := 0; j < d.c; j++ {
		for i := 0; i < d.r; i++ {
			col[i] = d.data[i*d.c+j]
		}
		_, out[j] = stat.MeanStdDev(col, nil)
	}

	return out, nil
}

// Covariance computes the sample covariance of columns: Cov = (Xcᵀ Xc)/(r-1).
// Behavior highlights:
//   - Symmetric output; diagonal equals per-column sample variances.
//   - c == 0 yields a valid 0×0 matrix.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r<2 with c>0).
//
// Complexity:
//   - Time O(r*c^2), Space O(c^2).
func Covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r, c := X.Rows(), X.Cols()
	if c == 0 {
		z, err := NewDense(0, 0)
		if err != nil {
			return nil, nil, matrixErrorf(opCovariance, err)
		}

		return z, make([]float64, 0), nil
	}
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Xct, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	G, err := Mul(Xct, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Cov, err := Scale(G, 1.0/float64(r-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	return Cov, means, nil
}

// Correlation computes Pearson correlation of columns via z-scoring:
// Corr = (Zᵀ Z)/(r-1), Z = (X − mean) * diag(1/std).
// Degenerate columns (std == 0) become zero rows/columns of Corr.
//
// Returns:
//   - *Dense: correlation (c×c); diagonal is 1 for non-degenerate columns.
//   - []float64: column means; []float64: column sample stds.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r<2 with c>0).
//
// Complexity:
//   - Time O(r*c^2), Space O(c^2).
//
// AI-Hints:
//   - Scale-invariant: Corr(α*X) == Corr(X) for α>0 on non-degenerate columns.
func Correlation(X Matrix) (*Dense, []float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	r, c := X.Rows(), X.Cols()
	if c == 0 {
		z, err := NewDense(0, 0)
		if err != nil {
			return nil, nil, nil, matrixErrorf(opCorrelation, err)
		}

		return z, make([]float64, 0), make([]float64, 0), nil
	}
	if r < 2 {
		return nil, nil, nil, matrixErrorf(opCorrelation, ErrDimensionMismatch)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	stds, err := ColStdDevs(X)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	invStd := make([]float64, c)
	for j, s := range stds {
		if s > 0 && !math.IsInf(s, 0) {
			invStd[j] = 1.0 / s
		}
	}

	Z, err := ScaleCols(Xc, invStd)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	Zt, err := Transpose(Z)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	G, err := Mul(Zt, Z)
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}
	Corr, err := Scale(G, 1.0/float64(r-1))
	if err != nil {
		return nil, nil, nil, matrixErrorf(opCorrelation, err)
	}

	return Corr, means, stds, nil
}

// RowSums returns Σ_j X[i,j] for every row.
// Errors: ErrNilMatrix.
func RowSums(X Matrix) ([]float64, error) {
	d, err := densify(X)
	if err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	out := make([]float64, d.r)
	for i := range out {
		out[i] = floats.Sum(d.data[i*d.c : (i+1)*d.c])
	}

	return out, nil
}

// ColSums returns Σ_i X[i,j] for every column (zeros for a 0-row matrix).
// Errors: ErrNilMatrix.
func ColSums(X Matrix) ([]float64, error) {
	d, err := densify(X)
	if err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	out := make([]float64, d.c)
	for i := 0; i < d.r; i++ {
		floats.Add(out, d.data[i*d.c:(i+1)*d.c])
	}

	return out, nil
}
