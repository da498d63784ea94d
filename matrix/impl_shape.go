// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Copy-based slicing and stacking: row/column windows, index selection,
//     horizontal/vertical concatenation.
//   - Every result owns its buffer (no views), so downstream in-place edits
//     never leak into the source.
//
// Determinism:
//   - Rows are copied in index order; columns keep their relative order.

package matrix

import "fmt"

const (
	opSliceRows  = "SliceRows"
	opSliceCols  = "SliceCols"
	opSelectRows = "SelectRows"
	opHStack     = "HStack"
	opVStack     = "VStack"
)

// SliceRows copies rows [r0, r1) into a new (r1-r0)×c matrix.
// Errors: ErrNilMatrix; ErrOutOfRange when 0 ≤ r0 ≤ r1 ≤ Rows() is violated.
// Complexity: O((r1-r0)*c).
func SliceRows(m Matrix, r0, r1 int) (*Dense, error) {
	dm, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opSliceRows, err)
	}
	if r0 < 0 || r1 < r0 || r1 > dm.r {
		return nil, matrixErrorf(opSliceRows, fmt.Errorf("[%d,%d) of %d rows: %w", r0, r1, dm.r, ErrOutOfRange))
	}
	res, err := NewDense(r1-r0, dm.c)
	if err != nil {
		return nil, matrixErrorf(opSliceRows, err)
	}
	copy(res.data, dm.data[r0*dm.c:r1*dm.c]) // rows are contiguous in row-major order

	return res, nil
}

// SliceCols copies columns [c0, c1) into a new r×(c1-c0) matrix.
// Errors: ErrNilMatrix; ErrOutOfRange when 0 ≤ c0 ≤ c1 ≤ Cols() is violated.
// Complexity: O(r*(c1-c0)).
func SliceCols(m Matrix, c0, c1 int) (*Dense, error) {
	dm, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opSliceCols, err)
	}
	if c0 < 0 || c1 < c0 || c1 > dm.c {
		return nil, matrixErrorf(opSliceCols, fmt.Errorf("[%d,%d) of %d cols: %w", c0, c1, dm.c, ErrOutOfRange))
	}
	w := c1 - c0
	res, err := NewDense(dm.r, w)
	if err != nil {
		return nil, matrixErrorf(opSliceCols, err)
	}
	for i := 0; i < dm.r; i++ {
		copy(res.data[i*w:(i+1)*w], dm.data[i*dm.c+c0:i*dm.c+c1])
	}

	return res, nil
}

// SelectRows materializes the rows listed in idx (duplicates allowed, order kept).
// MAIN DESCRIPTION:
//   - Gather rows by explicit index set; used to assemble shuffled mini-batches.
//
// Behavior highlights:
//   - Empty idx yields a legal 0×c matrix.
//   - Policy is preserved from the source (validateNaNInf).
//
// Errors:
//   - ErrNilMatrix; ErrOutOfRange (index outside [0, Rows())).
//
// Complexity:
//   - Time O(len(idx)*c), Space O(len(idx)*c).
func SelectRows(m Matrix, idx []int) (*Dense, error) {
	dm, err := densify(m)
	if err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}
	res, err := NewDense(len(idx), dm.c)
	if err != nil {
		return nil, matrixErrorf(opSelectRows, err)
	}
	res.validateNaNInf = dm.validateNaNInf
	c := dm.c
	for i, ri := range idx {
		if ri < 0 || ri >= dm.r {
			return nil, matrixErrorf(opSelectRows, fmt.Errorf("row index %d: %w", ri, ErrOutOfRange))
		}
		copy(res.data[i*c:(i+1)*c], dm.data[ri*c:(ri+1)*c])
	}

	return res, nil
}

// HStack concatenates a and b side by side: [a | b].
// Errors: ErrNilMatrix; ErrDimensionMismatch when row counts differ.
// Complexity: O(r*(ca+cb)).
func HStack(a, b Matrix) (*Dense, error) {
	da, err := densify(a)
	if err != nil {
		return nil, matrixErrorf(opHStack, err)
	}
	db, err := densify(b)
	if err != nil {
		return nil, matrixErrorf(opHStack, err)
	}
	if da.r != db.r {
		return nil, matrixErrorf(opHStack, ErrDimensionMismatch)
	}
	w := da.c + db.c
	res, err := NewDense(da.r, w)
	if err != nil {
		return nil, matrixErrorf(opHStack, err)
	}
	for i := 0; i < da.r; i++ {
		copy(res.data[i*w:i*w+da.c], da.data[i*da.c:(i+1)*da.c])
		copy(res.data[i*w+da.c:(i+1)*w], db.data[i*db.c:(i+1)*db.c])
	}

	return res, nil
}

// VStack stacks a on top of b.
// Errors: ErrNilMatrix; ErrDimensionMismatch when column counts differ.
// Complexity: O((ra+rb)*c).
func VStack(a, b Matrix) (*Dense, error) {
	da, err := densify(a)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	db, err := densify(b)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	if da.c != db.c {
		return nil, matrixErrorf(opVStack, ErrDimensionMismatch)
	}
	res, err := NewDense(da.r+db.r, da.c)
	if err != nil {
		return nil, matrixErrorf(opVStack, err)
	}
	copy(res.data, da.data)
	copy(res.data[len(da.data):], db.data)

	return res, nil
}
