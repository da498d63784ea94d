// SPDX-License-Identifier: MIT
package mlp_test

import (
	"testing"

	"github.com/katalvlaran/lvml/matrix"
	"github.com/katalvlaran/lvml/mlp"
	"github.com/stretchr/testify/require"
)

func TestScores_Binary(t *testing.T) {
	yTrue := []float64{1, 1, 1, 0, 0, 0, 1, 0}
	yPred := []float64{1, 0, 1, 0, 1, 0, 1, 0}
	// tp=3 fp=1 fn=1 tn=3

	acc, err := mlp.Accuracy(yTrue, yPred)
	require.NoError(t, err)
	require.Equal(t, 0.75, acc)

	p, err := mlp.Precision(yTrue, yPred)
	require.NoError(t, err)
	require.Equal(t, 0.75, p)

	r, err := mlp.Recall(yTrue, yPred)
	require.NoError(t, err)
	require.Equal(t, 0.75, r)

	f, err := mlp.F1(yTrue, yPred)
	require.NoError(t, err)
	require.InDelta(t, 0.75, f, 1e-15)

	cm, classes, err := mlp.ConfusionMatrix(yTrue, yPred)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1}, classes)
	// rows = predicted, cols = true
	require.Equal(t, []float64{3, 1, 1, 3}, cm.Values())
}

func TestScores_Errors(t *testing.T) {
	_, err := mlp.Accuracy([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = mlp.Accuracy(nil, nil)
	require.ErrorIs(t, err, mlp.ErrEmptyInput)
	_, err = mlp.Precision([]float64{0, 1, 2}, []float64{0, 1, 1})
	require.ErrorIs(t, err, mlp.ErrNotBinary)
	_, err = mlp.F1([]float64{0, 1, 2}, []float64{0, 1, 1})
	require.ErrorIs(t, err, mlp.ErrNotBinary)

	// No positive predictions: precision is defined as 0.
	p, err := mlp.Precision([]float64{0, 1}, []float64{0, 0})
	require.NoError(t, err)
	require.Zero(t, p)
}

func TestConfusionMatrix_Multiclass(t *testing.T) {
	cm, classes, err := mlp.ConfusionMatrix([]float64{2, 5, 9, 9}, []float64{2, 9, 9, 4})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 4, 5, 9}, classes)
	total, err := matrix.Sum(cm)
	require.NoError(t, err)
	require.Equal(t, 4.0, total)
	v, err := cm.At(3, 2) // predicted 9, true 5
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}
