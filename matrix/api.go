// SPDX-License-Identifier: MIT
// Package matrix — constructor facades and gonum interop.
//
// Purpose:
//   - Thin, intention-revealing constructors (identity, zeros) over NewDense.
//   - Copy-based bridges to gonum/mat for callers that need factorizations
//     this package does not implement.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Interop always copies; neither side aliases the other's buffer.

package matrix

import "gonum.org/v1/gonum/mat"

const (
	opToGonum   = "ToGonum"
	opFromGonum = "FromGonum"
)

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }

// NewIdentity returns I_n (ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// ZerosLike returns a new zero matrix with the same shape as m.
// Errors: ErrNilMatrix.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return NewDense(m.Rows(), m.Cols())
}

// ToGonum copies m into a *mat.Dense.
// gonum rejects zero-sized matrices, so an empty m returns (nil, ErrEmptyMatrix).
// Errors: ErrNilMatrix, ErrEmptyMatrix.
// Complexity: O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	d, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opToGonum, err)
	}
	if d.IsEmpty() {
		return nil, matrixErrorf(opToGonum, ErrEmptyMatrix)
	}

	return mat.NewDense(d.r, d.c, d.Values()), nil
}

// FromGonum copies any gonum matrix into a new *Dense (default numeric policy).
// Errors: ErrNilMatrix; ErrNaNInf when the source holds non-finite values.
// Complexity: O(r*c).
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	}
	r, c := g.Dims()
	flat := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			flat = append(flat, g.At(i, j))
		}
	}
	out, err := NewDenseFrom(r, c, flat)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}

	return out, nil
}
