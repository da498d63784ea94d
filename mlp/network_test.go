// SPDX-License-Identifier: MIT
// Package mlp_test contains behavioural tests of Network.Fit and prediction.
package mlp_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/katalvlaran/lvml/matrix"
	"github.com/katalvlaran/lvml/mlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// convergeOpts trains a 2-3-2 sigmoid network with mini-batches of 4.
func convergeOpts() []mlp.Option {
	return []mlp.Option{
		mlp.WithHidden(3),
		mlp.WithBatchSize(4),
		mlp.WithLearningRate(0.1),
		mlp.WithMaxIters(500),
		mlp.WithActivation(mlp.Sigmoid),
		mlp.WithWeightInit(mlp.Uniform),
		mlp.WithStandardize(true),
		mlp.WithErrorThreshold(0.01),
	}
}

func TestFitLabels_ConvergesOnSeparableData(t *testing.T) {
	X, y := separable(t)
	for _, seed := range []int64{1, 2, 3} {
		net := mlp.New(mlp.NewSource(seed))
		hist, err := net.FitLabels(context.Background(), X, y, convergeOpts()...)
		require.NoError(t, err, "seed %d", seed)
		require.True(t, hist.Converged, "seed %d", seed)
		require.Equal(t, mlp.StopConverged, hist.Stopped)
		last, ok := hist.Last()
		require.True(t, ok)
		require.Less(t, last.Loss, 0.01)
		require.LessOrEqual(t, hist.Len(), 500)

		pred, err := net.PredictLabels(X)
		require.NoError(t, err)
		acc, err := mlp.Accuracy(y.Values(), pred)
		require.NoError(t, err)
		require.GreaterOrEqual(t, acc, 0.95)
		require.Equal(t, []float64{0, 1}, net.Classes())
		require.Equal(t, []int{2, 3, 2}, net.Topology())
	}
}

func TestFit_DeterministicWithSeed(t *testing.T) {
	X, y := separable(t)
	opts := append(convergeOpts(), mlp.WithMaxIters(40), mlp.WithErrorThreshold(0))

	a := mlp.New(mlp.NewSource(7))
	_, err := a.FitLabels(context.Background(), X, y, opts...)
	require.NoError(t, err)
	b := mlp.New(mlp.NewSource(7))
	_, err = b.FitLabels(context.Background(), X, y, opts...)
	require.NoError(t, err)

	requireSameWeights(t, a.Weights(), b.Weights())
	require.Equal(t, a.History().Losses(), b.History().Losses())

	c := mlp.New(mlp.NewSource(8))
	_, err = c.FitLabels(context.Background(), X, y, opts...)
	require.NoError(t, err)
	eq, err := matrix.Equal(a.Weights()[0], c.Weights()[0])
	require.NoError(t, err)
	require.False(t, eq, "different seeds should give different weights")
}

func TestFit_BatchLargerThanDatasetEqualsFullBatch(t *testing.T) {
	X, y := separable(t)
	base := []mlp.Option{mlp.WithHidden(2), mlp.WithMaxIters(30), mlp.WithErrorThreshold(0), mlp.WithLearningRate(0.5)}

	full := mlp.New(mlp.NewSource(3))
	hf, err := full.FitLabels(context.Background(), X, y, append(base, mlp.WithBatchSize(0))...)
	require.NoError(t, err)
	big := mlp.New(mlp.NewSource(3))
	hb, err := big.FitLabels(context.Background(), X, y, append(base, mlp.WithBatchSize(1000))...)
	require.NoError(t, err)

	require.Equal(t, hf.Losses(), hb.Losses())
	requireSameWeights(t, full.Weights(), big.Weights())
}

func TestPredict_BeforeFit(t *testing.T) {
	net := mlp.New(nil)
	X := fromRows(t, [][]float64{{1, 2}})

	_, err := net.Predict(X)
	require.ErrorIs(t, err, mlp.ErrNotFitted)
	_, err = net.PredictFormat(X, mlp.OutputSummary)
	require.ErrorIs(t, err, mlp.ErrNotFitted)
	_, err = net.PredictLabels(X)
	require.ErrorIs(t, err, mlp.ErrNotFitted)
	_, err = net.MarshalBinary()
	require.ErrorIs(t, err, mlp.ErrNotFitted)

	require.False(t, net.Fitted())
	require.Nil(t, net.Topology())
	require.Nil(t, net.History())
	require.Zero(t, net.Inputs())
}

func TestFit_InputValidation(t *testing.T) {
	ctx := context.Background()
	empty, err := matrix.NewDense(0, 2)
	require.NoError(t, err)
	emptyY, err := matrix.NewDense(0, 1)
	require.NoError(t, err)
	X := fromRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	Y2 := fromRows(t, [][]float64{{1}, {0}})
	Y3 := fromRows(t, [][]float64{{1}, {0}, {1}})

	cases := []struct {
		name string
		x, y matrix.Matrix
		want error
	}{
		{"empty rows", empty, emptyY, mlp.ErrEmptyInput},
		{"row mismatch", X, Y2, matrix.ErrDimensionMismatch},
		{"nil X", nil, Y3, matrix.ErrNilMatrix},
		{"nil Y", X, nil, matrix.ErrNilMatrix},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			net := mlp.New(mlp.NewSource(1))
			_, err := net.Fit(ctx, tc.x, tc.y)
			require.ErrorIs(t, err, tc.want)
			require.False(t, net.Fitted())
		})
	}

	_, err = mlp.New(nil).FitLabels(ctx, empty, emptyY)
	require.ErrorIs(t, err, mlp.ErrEmptyInput)
}

func TestFit_Topology(t *testing.T) {
	ctx := context.Background()
	X := fromRows(t, [][]float64{{1, 2}, {3, 4}})
	Y := fromRows(t, [][]float64{{1}, {0}})

	// 2 inputs need 3 rows (bias + 2); 4 rows is wrong.
	w0, err := matrix.NewFilled(4, 3, 0.1)
	require.NoError(t, err)
	w1, err := matrix.NewFilled(4, 1, 0.1)
	require.NoError(t, err)
	_, err = mlp.New(nil).Fit(ctx, X, Y, mlp.WithInitialWeights(w0, w1))
	require.ErrorIs(t, err, mlp.ErrTopology)

	// Layers chain, but the last one emits 2 outputs for a 1-column target.
	w0, err = matrix.NewFilled(3, 3, 0.1)
	require.NoError(t, err)
	w1, err = matrix.NewFilled(4, 2, 0.1)
	require.NoError(t, err)
	_, err = mlp.New(nil).Fit(ctx, X, Y, mlp.WithInitialWeights(w0, w1))
	require.ErrorIs(t, err, mlp.ErrTopology)

	// Consecutive layers do not chain (3 hidden units, next layer expects 2+1 rows).
	w1, err = matrix.NewFilled(3, 1, 0.1)
	require.NoError(t, err)
	_, err = mlp.New(nil).Fit(ctx, X, Y, mlp.WithInitialWeights(w0, w1))
	require.ErrorIs(t, err, mlp.ErrTopology)
}

func TestFit_InitialWeightsAreClonedAndUsed(t *testing.T) {
	X := fromRows(t, [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	Y := fromRows(t, [][]float64{{0}, {1}, {1}, {1}})
	w0 := fromRows(t, [][]float64{{0.1, -0.2}, {0.3, 0.4}, {-0.5, 0.6}})
	w1 := fromRows(t, [][]float64{{0.05}, {0.7}, {-0.8}})
	before0, before1 := w0.Copy(), w1.Copy()

	net := mlp.New(nil)
	_, err := net.Fit(context.Background(), X, Y,
		mlp.WithInitialWeights(w0, w1), mlp.WithMaxIters(5), mlp.WithErrorThreshold(0))
	require.NoError(t, err)

	requireSameWeights(t, []*matrix.Dense{before0, before1}, []*matrix.Dense{w0, w1})
	got := net.Weights()
	require.Len(t, got, 2)
	eq, err := matrix.Equal(got[0], w0)
	require.NoError(t, err)
	require.False(t, eq, "training should move the weights")
	require.Equal(t, []int{2, 2, 1}, net.Topology())
}

func TestFit_InvalidConfig(t *testing.T) {
	X, y := separable(t)
	w0, err := matrix.NewFilled(3, 1, 0)
	require.NoError(t, err)
	cases := map[string]mlp.Option{
		"negative lr":     mlp.WithLearningRate(-1),
		"nan lr":          mlp.WithLearningRate(math.NaN()),
		"zero hidden":     mlp.WithHidden(4, 0),
		"zero workers":    mlp.WithWorkers(0),
		"zero iters":      mlp.WithMaxIters(0),
		"negative batch":  mlp.WithBatchSize(-2),
		"negative lambda": mlp.WithRegularization(-0.1),
		"bad activation":  mlp.WithActivation(mlp.Activation(42)),
		"bad init":        mlp.WithWeightInit(mlp.WeightInit(9)),
		"bad shrink":      mlp.WithLRSchedule(1.5, 1.05, 10, 1e-8),
		"hidden+weights": func(c *mlp.Config) {
			c.Hidden = []int{2}
			c.InitialWeights = []*matrix.Dense{w0}
		},
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			net := mlp.New(nil)
			_, err := net.FitLabels(context.Background(), X, y, opt)
			require.ErrorIs(t, err, mlp.ErrInvalidConfig)
			require.False(t, net.Fitted())
		})
	}
}

func TestFit_DivergenceIsReported(t *testing.T) {
	X := fromRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}})
	Y := fromRows(t, [][]float64{{1}, {2}, {3}, {4}})

	net := mlp.New(mlp.NewSource(1))
	_, err := net.Fit(context.Background(), X, Y,
		mlp.WithActivation(mlp.Linear),
		mlp.WithStandardize(false),
		mlp.WithLearningRate(10),
		mlp.WithMaxIters(1000),
	)
	require.ErrorIs(t, err, mlp.ErrNumericalDivergence)
	require.False(t, net.Fitted())
}

func TestFit_FailureKeepsPreviousModel(t *testing.T) {
	X, y := separable(t)
	net := mlp.New(mlp.NewSource(5))
	_, err := net.FitLabels(context.Background(), X, y, mlp.WithHidden(2), mlp.WithMaxIters(10))
	require.NoError(t, err)
	before := net.Weights()

	_, err = net.FitLabels(context.Background(), X, y, mlp.WithLearningRate(0))
	require.ErrorIs(t, err, mlp.ErrInvalidConfig)
	requireSameWeights(t, before, net.Weights())
	require.Equal(t, 10, net.History().Len())
}

func TestFit_ContextCancellation(t *testing.T) {
	X, y := separable(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	net := mlp.New(nil)
	_, err := net.FitLabels(ctx, X, y)
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, net.Fitted())

	// Cancel from inside the third epoch; the fourth never starts.
	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	var seen int
	_, err = net.FitLabels(ctx, X, y, mlp.WithErrorThreshold(0), mlp.WithOnEpoch(func(s mlp.EpochStat) error {
		seen = s.Epoch
		if s.Epoch == 3 {
			cancel()
		}
		return nil
	}))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 3, seen)
}

func TestFit_OnEpochErrorAborts(t *testing.T) {
	X, y := separable(t)
	stop := errors.New("enough")
	_, err := mlp.New(nil).FitLabels(context.Background(), X, y,
		mlp.WithOnEpoch(func(s mlp.EpochStat) error {
			if s.Epoch == 2 {
				return stop
			}
			return nil
		}))
	require.ErrorIs(t, err, stop)
}

func TestFit_StopReasons(t *testing.T) {
	X, y := separable(t)

	h, err := mlp.New(nil).FitLabels(context.Background(), X, y,
		mlp.WithErrorThreshold(100), mlp.WithMaxIters(50))
	require.NoError(t, err)
	require.True(t, h.Converged)
	require.Equal(t, 1, h.Len())

	h, err = mlp.New(nil).FitLabels(context.Background(), X, y,
		mlp.WithErrorThreshold(0), mlp.WithMaxIters(12))
	require.NoError(t, err)
	require.False(t, h.Converged)
	require.Equal(t, mlp.StopMaxIters, h.Stopped)
	require.Equal(t, 12, h.Len())
	for i, e := range h.Epochs {
		require.Equal(t, i+1, e.Epoch)
		require.Equal(t, mlp.DefaultLearningRate, e.LearningRate)
	}
}

func TestFit_WorkersAgreeWithSingleWorker(t *testing.T) {
	X, y := separable(t)
	opts := []mlp.Option{mlp.WithHidden(4), mlp.WithMaxIters(25), mlp.WithErrorThreshold(0),
		mlp.WithLearningRate(0.3), mlp.WithBatchSize(10)}

	one := mlp.New(mlp.NewSource(11))
	_, err := one.FitLabels(context.Background(), X, y, append(opts, mlp.WithWorkers(1))...)
	require.NoError(t, err)
	four := mlp.New(mlp.NewSource(11))
	_, err = four.FitLabels(context.Background(), X, y, append(opts, mlp.WithWorkers(4))...)
	require.NoError(t, err)
	requireCloseWeights(t, one.Weights(), four.Weights(), 1e-9, 1e-12)

	// Same worker count twice: bit-identical.
	again := mlp.New(mlp.NewSource(11))
	_, err = again.FitLabels(context.Background(), X, y, append(opts, mlp.WithWorkers(4))...)
	require.NoError(t, err)
	requireSameWeights(t, four.Weights(), again.Weights())
}

func TestFit_AdaptiveLearningRate(t *testing.T) {
	X, y := separable(t)
	h, err := mlp.New(mlp.NewSource(2)).FitLabels(context.Background(), X, y,
		mlp.WithHidden(3), mlp.WithLearningRate(0.1), mlp.WithAdaptiveLR(true),
		mlp.WithMaxIters(60), mlp.WithErrorThreshold(0))
	require.NoError(t, err)

	rates := h.LearningRates()
	require.Equal(t, 0.1, rates[0])
	var grew bool
	for _, r := range rates {
		require.LessOrEqual(t, r, 0.1*mlp.DefaultLRMaxFactor)
		require.GreaterOrEqual(t, r, mlp.DefaultLRMin)
		grew = grew || r > 0.1
	}
	require.True(t, grew, "a decreasing loss should raise the rate")
}

func TestFit_RegularizationShrinksWeights(t *testing.T) {
	X, y := separable(t)
	opts := []mlp.Option{mlp.WithHidden(3), mlp.WithLearningRate(0.5), mlp.WithMaxIters(200), mlp.WithErrorThreshold(0)}

	plain := mlp.New(mlp.NewSource(4))
	_, err := plain.FitLabels(context.Background(), X, y, opts...)
	require.NoError(t, err)
	reg := mlp.New(mlp.NewSource(4))
	_, err = reg.FitLabels(context.Background(), X, y, append(opts, mlp.WithRegularization(2))...)
	require.NoError(t, err)

	norm := func(ws []*matrix.Dense) float64 {
		var s float64
		for _, w := range ws {
			v := w.Values()[w.Cols():] // skip bias row
			for _, x := range v {
				s += x * x
			}
		}
		return s
	}
	assert.Less(t, norm(reg.Weights()), norm(plain.Weights()))
}

func TestPredictFormat(t *testing.T) {
	X, y := separable(t)
	labels, err := matrix.Map(y, func(v float64) float64 { return 3 + 4*v }) // classes 3 and 7
	require.NoError(t, err)
	net := mlp.New(mlp.NewSource(9))
	_, err = net.FitLabels(context.Background(), X, labels, convergeOpts()...)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 7}, net.Classes())

	raw, err := net.PredictFormat(X, mlp.OutputActivation)
	require.NoError(t, err)
	require.Equal(t, 40, raw.Rows())
	require.Equal(t, 2, raw.Cols())

	soft, err := net.PredictFormat(X, mlp.OutputSoftmax)
	require.NoError(t, err)
	sums, err := matrix.RowSums(soft)
	require.NoError(t, err)
	for _, s := range sums {
		require.InDelta(t, 1, s, 1e-12)
	}

	hot, err := net.PredictFormat(X, mlp.OutputOneHot)
	require.NoError(t, err)
	rawIdx, err := matrix.ArgMaxRows(raw)
	require.NoError(t, err)
	hotIdx, err := matrix.ArgMaxRows(hot)
	require.NoError(t, err)
	require.Equal(t, rawIdx, hotIdx)
	sums, err = matrix.RowSums(hot)
	require.NoError(t, err)
	for _, s := range sums {
		require.Equal(t, 1.0, s)
	}

	sum, err := net.PredictFormat(X, mlp.OutputSummary)
	require.NoError(t, err)
	require.Equal(t, 1, sum.Cols())
	for i, v := range sum.Values() {
		require.Contains(t, []float64{3, 7}, v)
		require.Equal(t, []float64{3, 7}[rawIdx[i]], v)
	}

	_, err = net.PredictFormat(X, mlp.OutputFormat(99))
	require.ErrorIs(t, err, mlp.ErrInvalidConfig)

	_, err = net.Predict(fromRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestPredictFormat_SummaryWithoutLabels(t *testing.T) {
	X := fromRows(t, [][]float64{{0}, {1}, {2}, {3}})
	Y := fromRows(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, 0, 1}})
	net := mlp.New(mlp.NewSource(1))
	_, err := net.Fit(context.Background(), X, Y, mlp.WithMaxIters(3))
	require.NoError(t, err)
	require.Nil(t, net.Classes())

	S, err := net.PredictFormat(X, mlp.OutputSummary)
	require.NoError(t, err)
	for _, v := range S.Values() {
		require.Contains(t, []float64{0, 1, 2}, v)
	}
}

func TestFit_VerboseLogsEveryEpoch(t *testing.T) {
	X, y := separable(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	_, err := mlp.New(nil).FitLabels(context.Background(), X, y,
		mlp.WithVerbose(true), mlp.WithLogger(logger), mlp.WithMaxIters(4), mlp.WithErrorThreshold(0))
	require.NoError(t, err)

	out := buf.String()
	require.Equal(t, 4, strings.Count(out, "msg=epoch "))
	require.Contains(t, out, "trend=start")
	require.Contains(t, out, `msg="fit finished"`)
	require.Contains(t, out, "stopped=max-iters")
}
