// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"

	"github.com/katalvlaran/lvml/matrix"
)

// Pairwise returns the n×n matrix D with D[i,j] = f(row i, row j) for the rows of a.
// Implementation:
//   - Stage 1: Materialize rows once.
//   - Stage 2: Evaluate the upper triangle (including the diagonal) and mirror it.
//
// Behavior highlights:
//   - Symmetric by construction; f is assumed symmetric.
//   - An n×0 input yields an all-zero n×n matrix for the Minkowski family.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrNilFunc; matrix.ErrNaNInf when f produces non-finite values.
//
// Complexity:
//   - Time O(n²·c) distance work, Space O(n²).
func Pairwise(a matrix.Matrix, f Func) (*matrix.Dense, error) {
	if f == nil {
		return nil, metricsErrorf("Pairwise", ErrNilFunc)
	}
	rows, err := rowsOf(a)
	if err != nil {
		return nil, metricsErrorf("Pairwise", err)
	}
	n := len(rows)
	flat := make([]float64, n*n)
	var i, j int
	var d float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			d = f(rows[i], rows[j])
			flat[i*n+j] = d
			flat[j*n+i] = d
		}
	}
	out, err := matrix.NewDenseFrom(n, n, flat)
	if err != nil {
		return nil, metricsErrorf("Pairwise", err)
	}

	return out, nil
}

// Cross returns the n×m matrix D with D[i,j] = f(row i of a, row j of b).
// Errors: matrix.ErrNilMatrix, ErrNilFunc, matrix.ErrDimensionMismatch
// (a.Cols != b.Cols), matrix.ErrNaNInf.
// Complexity: O(n·m·c).
func Cross(a, b matrix.Matrix, f Func) (*matrix.Dense, error) {
	if f == nil {
		return nil, metricsErrorf("Cross", ErrNilFunc)
	}
	ra, err := rowsOf(a)
	if err != nil {
		return nil, metricsErrorf("Cross", err)
	}
	rb, err := rowsOf(b)
	if err != nil {
		return nil, metricsErrorf("Cross", err)
	}
	if a.Cols() != b.Cols() {
		return nil, metricsErrorf("Cross",
			fmt.Errorf("cols %d vs %d: %w", a.Cols(), b.Cols(), matrix.ErrDimensionMismatch))
	}
	n, m := len(ra), len(rb)
	flat := make([]float64, n*m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			flat[i*m+j] = f(ra[i], rb[j])
		}
	}
	out, err := matrix.NewDenseFrom(n, m, flat)
	if err != nil {
		return nil, metricsErrorf("Cross", err)
	}

	return out, nil
}

// rowsOf copies every row of m into its own slice.
func rowsOf(m matrix.Matrix) ([][]float64, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, err
	}
	d, err := matrix.SliceRows(m, 0, m.Rows())
	if err != nil {
		return nil, err
	}
	out := make([][]float64, d.Rows())
	for i := range out {
		if out[i], err = d.Row(i); err != nil {
			return nil, err
		}
	}

	return out, nil
}
