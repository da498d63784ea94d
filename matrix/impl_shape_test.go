// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvml/matrix"
	"github.com/stretchr/testify/require"
)

func TestSliceRowsCols(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})

	R, err := matrix.SliceRows(X, 1, 3)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{4, 5, 6}, {7, 8, 9}}, R)

	C, err := matrix.SliceCols(hide{X}, 0, 2)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 2}, {4, 5}, {7, 8}}, C)

	E, err := matrix.SliceRows(X, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 0, E.Rows())

	_, err = matrix.SliceRows(X, 2, 4)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = matrix.SliceCols(X, 2, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestSelectRows(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 2, []float64{1, 2, 3, 4, 5, 6})
	S, err := matrix.SelectRows(X, []int{2, 0, 2})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{5, 6}, {1, 2}, {5, 6}}, S)

	// Result owns its buffer.
	MustSet(t, S, 0, 0, -1)
	require.Equal(t, 5.0, MustAt(t, X, 2, 0))

	_, err = matrix.SelectRows(X, []int{3})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestHStackVStack(t *testing.T) {
	t.Parallel()

	A := NewFilledDense(t, 2, 1, []float64{1, 1})
	B := NewFilledDense(t, 2, 2, []float64{2, 3, 4, 5})

	H, err := matrix.HStack(A, B)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 2, 3}, {1, 4, 5}}, H)

	V, err := matrix.VStack(B, hide{B})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{2, 3}, {4, 5}, {2, 3}, {4, 5}}, V)

	_, err = matrix.HStack(A, MustDense(t, 3, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.VStack(A, B)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
