// SPDX-License-Identifier: MIT
package mlp_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvml/mlp"
	"github.com/stretchr/testify/require"
)

// TestActivation_DerivativeFromOutput compares Deriv(Eval(x)) with a central
// finite difference of Eval at x.
func TestActivation_DerivativeFromOutput(t *testing.T) {
	const h = 1e-6
	xs := []float64{-3, -0.7, -0.1, 0.2, 0.9, 2.5}
	for _, a := range []mlp.Activation{mlp.Sigmoid, mlp.Tanh, mlp.ReLU, mlp.Linear} {
		t.Run(a.String(), func(t *testing.T) {
			for _, x := range xs {
				numeric := (a.Eval(x+h) - a.Eval(x-h)) / (2 * h)
				require.InDelta(t, numeric, a.Deriv(a.Eval(x)), 1e-6, "x=%g", x)
			}
		})
	}
}

func TestActivation_Values(t *testing.T) {
	require.Equal(t, 0.5, mlp.Sigmoid.Eval(0))
	require.InDelta(t, 1, mlp.Sigmoid.Eval(800), 0)
	require.InDelta(t, 0, mlp.Sigmoid.Eval(-800), 1e-300)
	require.False(t, math.IsNaN(mlp.Sigmoid.Eval(-1e308)))
	require.Equal(t, 0.0, mlp.ReLU.Eval(-2))
	require.Equal(t, 2.0, mlp.ReLU.Eval(2))
	require.Equal(t, 0.0, mlp.ReLU.Deriv(0))
	require.Equal(t, -4.0, mlp.Linear.Eval(-4))
	require.Equal(t, math.Tanh(0.3), mlp.Tanh.Eval(0.3))
}

func TestParseActivation(t *testing.T) {
	for _, a := range []mlp.Activation{mlp.Sigmoid, mlp.Tanh, mlp.ReLU, mlp.Linear} {
		got, err := mlp.ParseActivation(a.String())
		require.NoError(t, err)
		require.Equal(t, a, got)
	}
	got, err := mlp.ParseActivation(" ReLU ")
	require.NoError(t, err)
	require.Equal(t, mlp.ReLU, got)

	_, err = mlp.ParseActivation("softsign")
	require.ErrorIs(t, err, mlp.ErrInvalidConfig)
	require.Equal(t, "Activation(9)", mlp.Activation(9).String())
}
