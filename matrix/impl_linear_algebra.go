// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise arithmetic, matrix multiplication, transpose and
// scalar transforms. All functions perform strict fail-fast validation and
// return clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used across the module (mlp, metrics).
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Every kernel returns a freshly allocated *Dense; operands are never mutated.
//   - Flat loops over *Dense buffers delegate to gonum/floats (bounds already validated).
//   - Non-Dense operands are materialized once through densify (At-based copy).

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ZeroSum is the initial sum value for dot products and similar accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opHadamard  = "Hadamard"
	opDivElem   = "DivElem"
	opAddScalar = "AddScalar"
	opAddScaled = "AddScaled"
	opMap       = "Map"
	opMatVec    = "MatVec"
	opDensify   = "densify"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// densify returns m itself when it is a *Dense, otherwise a Dense copy built via At.
// MAIN DESCRIPTION:
//   - Single fallback path for kernels: any Matrix becomes a flat row-major buffer.
//
// Behavior highlights:
//   - *Dense input is returned as-is (NO copy); callers must not mutate it.
//   - Generic input is read in fixed i→j order.
//
// Complexity:
//   - Time O(1) for *Dense, O(r*c) otherwise.
func densify(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opDensify, err)
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := newDenseWithPolicy(r, c, false)
	if err != nil {
		return nil, matrixErrorf(opDensify, err)
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opDensify, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			out.data[i*c+j] = v
		}
	}
	out.validateNaNInf = DefaultValidateNaNInf

	return out, nil
}

// densifyPair validates a,b as same-shape operands and returns their Dense forms.
func densifyPair(a, b Matrix, opTag string) (*Dense, *Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, nil, matrixErrorf(opTag, err)
	}
	da, err := densify(a)
	if err != nil {
		return nil, nil, matrixErrorf(opTag, err)
	}
	db, err := densify(b)
	if err != nil {
		return nil, nil, matrixErrorf(opTag, err)
	}

	return da, db, nil
}

// elementwise allocates out and runs kernel(out.data, a.data, b.data).
// Shared by Add/Sub/Hadamard/DivElem: validation, allocation and fallback in one place.
func elementwise(a, b Matrix, opTag string, kernel func(dst, s, t []float64) []float64) (*Dense, error) {
	da, db, err := densifyPair(a, b, opTag)
	if err != nil {
		return nil, err
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	kernel(res.data, da.data, db.data)

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Implementation:
//   - Stage 1: Validate both operands are non-nil and have identical shapes.
//   - Stage 2: One flat floats.AddTo pass over the row-major buffers.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c). The fast path is bandwidth-bound.
func Add(a, b Matrix) (*Dense, error) { return elementwise(a, b, opAdd, floats.AddTo) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return elementwise(a, b, opSub, floats.SubTo) }

// Hadamard computes the element-wise product C = A ⊙ B.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Hadamard(a, b Matrix) (*Dense, error) { return elementwise(a, b, opHadamard, floats.MulTo) }

// DivElem computes the element-wise quotient C = A ⊘ B.
// Division by zero follows IEEE-754 (±Inf or NaN); the result is not policed.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func DivElem(a, b Matrix) (*Dense, error) { return elementwise(a, b, opDivElem, floats.DivTo) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: i→k→j loop: row i of C accumulates A[i,k] * row k of B via floats.AddScaled,
//     skipping zero A[i,k].
//
// Behavior highlights:
//   - Deterministic loop order; one allocation for C.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// AI-Hints:
//   - Keep A as *Dense to avoid the densify copy.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := densify(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := densify(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	aRows, aCols, bCols := da.r, da.c, db.c
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var (
		i, k int
		av   float64
		rowR []float64
	)
	for i = 0; i < aRows; i++ {
		rowR = res.data[i*bCols : (i+1)*bCols]
		for k = 0; k < aCols; k++ {
			av = da.data[i*aCols+k]
			if av == 0 {
				continue // skip zero for performance
			}
			floats.AddScaled(rowR, av, db.data[k*bCols:(k+1)*bCols])
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
//
// AI-Hints:
//   - Avoid transposing repeatedly in tight loops; hoist and reuse the result.
func Transpose(m Matrix) (*Dense, error) {
	dm, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := dm.r, dm.c
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	// data[i*cols + j] → res.data[j*rows + i]
	var i, j, baseSrc int
	for i = 0; i < rows; i++ {
		baseSrc = i * cols
		for j = 0; j < cols; j++ {
			res.data[j*rows+i] = dm.data[baseSrc+j]
		}
	}

	return res, nil
}

// Scale returns alpha*m.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	dm, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	floats.ScaleTo(res.data, alpha, dm.data)

	return res, nil
}

// AddScalar returns m + v (v added to every element).
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func AddScalar(m Matrix, v float64) (*Dense, error) {
	dm, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opAddScalar, err)
	}
	res := dm.Copy()
	floats.AddConst(v, res.data)

	return res, nil
}

// AddScaled returns a + alpha*b, the axpy step used by gradient descent updates.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func AddScaled(a Matrix, alpha float64, b Matrix) (*Dense, error) {
	da, db, err := densifyPair(a, b, opAddScaled)
	if err != nil {
		return nil, err
	}
	res, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opAddScaled, err)
	}
	floats.AddScaledTo(res.data, da.data, alpha, db.data)

	return res, nil
}

// Map returns a new matrix with f applied to every element (row-major order).
// Unlike (*Dense).Apply the input is untouched and the numeric policy is not
// enforced, so callers can detect divergence themselves.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Map(m Matrix, f func(v float64) float64) (*Dense, error) {
	dm, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opMap, err)
	}
	res, err := NewDense(dm.r, dm.c)
	if err != nil {
		return nil, matrixErrorf(opMap, err)
	}
	for k, v := range dm.data {
		res.data[k] = f(v)
	}

	return res, nil
}

// MatVec computes y = m·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
// Complexity: O(r*c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	dm, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err = ValidateVecLen(x, dm.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, dm.r)
	for i := 0; i < dm.r; i++ {
		y[i] = floats.Dot(dm.data[i*dm.c:(i+1)*dm.c], x)
	}

	return y, nil
}
