// SPDX-License-Identifier: MIT
// Package mlp_test contains shared fixtures for the mlp tests.
package mlp_test

import (
	"testing"

	"github.com/katalvlaran/lvml/matrix"
	"github.com/stretchr/testify/require"
)

// separable returns 40 two-feature rows in two well separated clusters and
// their 0/1 label column.
func separable(t *testing.T) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	rows := make([][]float64, 0, 40)
	labels := make([][]float64, 0, 40)
	for k := 0; k < 20; k++ {
		dx, dy := 0.1*float64(k%5), 0.15*float64(k/5)
		rows = append(rows, []float64{-2 + dx, -2 + dy})
		labels = append(labels, []float64{0})
		rows = append(rows, []float64{2 - dx, 2 - dy})
		labels = append(labels, []float64{1})
	}

	return fromRows(t, rows), fromRows(t, labels)
}

func fromRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

// requireSameWeights asserts bitwise equality layer by layer.
func requireSameWeights(t *testing.T, a, b []*matrix.Dense) {
	t.Helper()
	require.Len(t, b, len(a))
	for l := range a {
		eq, err := matrix.Equal(a[l], b[l])
		require.NoError(t, err)
		require.Truef(t, eq, "layer %d differs:\n%v\nvs\n%v", l, a[l], b[l])
	}
}

// requireCloseWeights asserts AllClose layer by layer.
func requireCloseWeights(t *testing.T, a, b []*matrix.Dense, rtol, atol float64) {
	t.Helper()
	require.Len(t, b, len(a))
	for l := range a {
		ok, err := matrix.AllClose(a[l], b[l], rtol, atol)
		require.NoError(t, err)
		require.Truef(t, ok, "layer %d differs:\n%v\nvs\n%v", l, a[l], b[l])
	}
}
