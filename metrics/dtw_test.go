// SPDX-License-Identifier: MIT
package metrics_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvml/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDTW_EmptyInput verifies that DTWDistance rejects empty sequences.
func TestDTW_EmptyInput(t *testing.T) {
	opts := metrics.DefaultDTWOptions()

	_, err := metrics.DTWDistance([]float64{}, []float64{1, 2, 3}, opts)
	assert.ErrorIs(t, err, metrics.ErrEmptySequence, "empty first sequence should error")

	_, err = metrics.DTWDistance([]float64{1, 2, 3}, nil, opts)
	assert.ErrorIs(t, err, metrics.ErrEmptySequence, "empty second sequence should error")
}

// TestDTW_BadWindowOption ensures that Window < -1 is rejected.
func TestDTW_BadWindowOption(t *testing.T) {
	opts := metrics.DefaultDTWOptions()
	opts.Window = -2

	_, err := metrics.DTWDistance([]float64{1}, []float64{1}, opts)
	assert.ErrorIs(t, err, metrics.ErrBadWindow)
	assert.Panics(t, func() { metrics.DTW(opts) })
}

// TestDTW_BasicDistance verifies that identical sequences have zero distance.
func TestDTW_BasicDistance(t *testing.T) {
	a := []float64{0, 1, 2}
	dist, err := metrics.DTWDistance(a, a, metrics.DefaultDTWOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist)
}

// TestDTW_Subsequence checks that a repeated sample is absorbed by warping at
// zero cost, unless a slope penalty makes the stretch expensive.
func TestDTW_Subsequence(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{1, 2, 2, 3}

	dist, err := metrics.DTWDistance(a, b, metrics.DefaultDTWOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist)

	dist, err = metrics.DTWDistance(a, b, metrics.DTWOptions{Window: -1, SlopePenalty: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 0.5, dist)
}

// TestDTW_WindowConstraint verifies that a strict window = 0 with a length
// mismatch yields +Inf, and that on equal lengths it degrades to Manhattan.
func TestDTW_WindowConstraint(t *testing.T) {
	opts := metrics.DTWOptions{Window: 0}

	dist, err := metrics.DTWDistance([]float64{1, 2, 3}, []float64{1, 2, 3, 4}, opts)
	require.NoError(t, err)
	assert.True(t, math.IsInf(dist, 1))

	a := []float64{1, 5, 2}
	b := []float64{2, 3, 2}
	dist, err = metrics.DTWDistance(a, b, opts)
	require.NoError(t, err)
	assert.Equal(t, metrics.Manhattan(a, b), dist)
}

// TestDTW_ShiftedSeries shows warping beats the lock-step distance on a time shift.
func TestDTW_ShiftedSeries(t *testing.T) {
	a := []float64{0, 0, 1, 2, 1, 0, 0}
	b := []float64{0, 1, 2, 1, 0, 0, 0}

	f := metrics.DTW(metrics.DefaultDTWOptions())
	assert.Equal(t, 0.0, f(a, b))
	assert.Greater(t, metrics.Manhattan(a, b), 0.0)
	assert.Equal(t, 0.0, f(nil, nil))
}
