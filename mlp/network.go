// SPDX-License-Identifier: MIT
// Package mlp - Network lifecycle: Fit, FitLabels, prediction and accessors.
package mlp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/lvml/matrix"
)

const (
	opFit           = "Fit"
	opFitLabels     = "FitLabels"
	opPredict       = "Predict"
	opPredictFormat = "PredictFormat"
)

// Network is a fully connected feed-forward network trained by mini-batch
// gradient descent.
//
// A Network owns its random Source. Fit must not run concurrently with any
// other method of the same Network; Predict and the accessors may run
// concurrently with each other once a fit has completed.
type Network struct {
	src     Source
	act     Activation
	weights []*matrix.Dense
	std     *Standardizer
	classes []float64
	history *History
}

// New returns an unfitted Network drawing randomness from src.
// A nil src is replaced by NewSource(0).
func New(src Source) *Network {
	if src == nil {
		src = NewSource(0)
	}

	return &Network{src: src}
}

// Fit trains the network on X (n×inputs) against targets Y (n×outputs).
// MAIN DESCRIPTION:
//   - Validate → standardize (optional) → initialize or clone weights →
//     up to MaxIters epochs of mini-batch gradient descent.
//   - On success the weights, the standardization statistics and the history
//     replace whatever the network held before. On any error the network is
//     left untouched.
//
// Errors:
//   - ErrInvalidConfig (bad option), ErrEmptyInput (no rows or columns),
//     matrix.ErrDimensionMismatch (row counts differ), matrix.ErrNaNInf,
//     ErrTopology (InitialWeights do not chain from X to Y),
//     ErrNumericalDivergence, ctx.Err() (wrapped), or the OnEpoch error.
//
// Complexity:
//   - Time O(MaxIters · n · Σ inₗ·outₗ), Space O(b · Σ outₗ + Σ inₗ·outₗ).
func (n *Network) Fit(ctx context.Context, X, Y matrix.Matrix, opts ...Option) (*History, error) {
	h, err := n.fit(ctx, X, Y, nil, opts)
	if err != nil {
		return nil, mlpErrorf(opFit, err)
	}

	return h, nil
}

// FitLabels one-hot encodes the n×1 label column over its sorted distinct
// values and calls Fit. The class labels are remembered so that
// PredictLabels and OutputSummary report labels instead of column indices.
func (n *Network) FitLabels(ctx context.Context, X, labels matrix.Matrix, opts ...Option) (*History, error) {
	Y, classes, err := OneHot(labels)
	if err != nil {
		return nil, mlpErrorf(opFitLabels, err)
	}
	h, err := n.fit(ctx, X, Y, classes, opts)
	if err != nil {
		return nil, mlpErrorf(opFitLabels, err)
	}

	return h, nil
}

// prepareData validates X and Y and returns private dense copies.
func prepareData(X, Y matrix.Matrix) (*matrix.Dense, *matrix.Dense, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, nil, err
	}
	if err := matrix.ValidateNotNil(Y); err != nil {
		return nil, nil, err
	}
	if X.Rows() == 0 || X.Cols() == 0 {
		return nil, nil, fmt.Errorf("X is %d×%d: %w", X.Rows(), X.Cols(), ErrEmptyInput)
	}
	if Y.Cols() == 0 {
		return nil, nil, fmt.Errorf("Y has no columns: %w", ErrEmptyInput)
	}
	if X.Rows() != Y.Rows() {
		return nil, nil, fmt.Errorf("X has %d rows, Y has %d: %w", X.Rows(), Y.Rows(), matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateFinite(X); err != nil {
		return nil, nil, fmt.Errorf("X: %w", err)
	}
	if err := matrix.ValidateFinite(Y); err != nil {
		return nil, nil, fmt.Errorf("Y: %w", err)
	}
	x, err := matrix.SliceRows(X, 0, X.Rows())
	if err != nil {
		return nil, nil, err
	}
	y, err := matrix.SliceRows(Y, 0, Y.Rows())
	if err != nil {
		return nil, nil, err
	}

	return x, y, nil
}

// initialLayers clones cfg.InitialWeights after checking that they chain from
// in inputs to out outputs, or draws fresh weights for [in, Hidden..., out].
func (n *Network) initialLayers(cfg Config, in, out int) ([]*matrix.Dense, error) {
	if len(cfg.InitialWeights) > 0 {
		ws := make([]*matrix.Dense, len(cfg.InitialWeights))
		width := in
		for l, w := range cfg.InitialWeights {
			if w.Rows() != width+1 {
				return nil, fmt.Errorf("layer %d has %d rows, want %d (inputs + bias): %w",
					l, w.Rows(), width+1, ErrTopology)
			}
			if w.Cols() == 0 {
				return nil, fmt.Errorf("layer %d has no units: %w", l, ErrTopology)
			}
			if err := matrix.ValidateFinite(w); err != nil {
				return nil, fmt.Errorf("layer %d: %w", l, err)
			}
			ws[l] = w.Copy()
			width = w.Cols()
		}
		if width != out {
			return nil, fmt.Errorf("last layer yields %d outputs, targets have %d: %w", width, out, ErrTopology)
		}

		return ws, nil
	}

	sizes := make([]int, 0, len(cfg.Hidden)+2)
	sizes = append(sizes, in)
	sizes = append(sizes, cfg.Hidden...)
	sizes = append(sizes, out)
	ws := make([]*matrix.Dense, len(sizes)-1)
	var err error
	for l := range ws {
		if ws[l], err = initWeights(sizes[l]+1, sizes[l+1], cfg.WeightInit, n.src); err != nil {
			return nil, err
		}
	}

	return ws, nil
}

func (n *Network) fit(ctx context.Context, X, Y matrix.Matrix, classes []float64, opts []Option) (*History, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	act, err := cfg.Activation.resolve()
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	x, y, err := prepareData(X, Y)
	if err != nil {
		return nil, err
	}
	var std *Standardizer
	if cfg.Standardize {
		if std, err = FitStandardizer(x); err != nil {
			return nil, err
		}
		if x, err = std.Transform(x); err != nil {
			return nil, err
		}
	}
	w, err := n.initialLayers(cfg, x.Cols(), y.Cols())
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	t := &trainer{cfg: cfg, act: act, x: x, y: y, w: w, src: n.src, log: logger}
	hist, err := t.run(ctx)
	if err != nil {
		return nil, err
	}

	n.act = cfg.Activation
	n.weights = t.w
	n.std = std
	n.classes = append([]float64(nil), classes...)
	n.history = hist

	return hist.clone(), nil
}

// Fitted reports whether a fit has completed successfully.
func (n *Network) Fitted() bool { return len(n.weights) > 0 }

// Inputs returns the expected feature width (0 before a fit).
func (n *Network) Inputs() int {
	if !n.Fitted() {
		return 0
	}

	return n.weights[0].Rows() - 1
}

// Outputs returns the output width (0 before a fit).
func (n *Network) Outputs() int {
	if !n.Fitted() {
		return 0
	}

	return n.weights[len(n.weights)-1].Cols()
}

// Topology returns the unit counts [inputs, hidden..., outputs].
func (n *Network) Topology() []int {
	if !n.Fitted() {
		return nil
	}
	out := []int{n.Inputs()}
	for _, w := range n.weights {
		out = append(out, w.Cols())
	}

	return out
}

// Weights returns copies of the layer matrices, bias in row 0.
func (n *Network) Weights() []*matrix.Dense {
	out := make([]*matrix.Dense, len(n.weights))
	for i, w := range n.weights {
		out[i] = w.Copy()
	}

	return out
}

// Activation returns the activation of the fitted network.
func (n *Network) Activation() Activation { return n.act }

// Classes returns the class labels remembered by FitLabels (nil otherwise).
func (n *Network) Classes() []float64 {
	if len(n.classes) == 0 {
		return nil
	}

	return append([]float64(nil), n.classes...)
}

// Standardizer returns the input statistics, or nil when standardization was off.
func (n *Network) Standardizer() *Standardizer { return n.std }

// History returns a copy of the last successful fit history (nil if none).
func (n *Network) History() *History { return n.history.clone() }

// Predict runs a forward pass and returns the raw output activations.
// Errors: ErrNotFitted, matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
func (n *Network) Predict(X matrix.Matrix) (*matrix.Dense, error) {
	if !n.Fitted() {
		return nil, mlpErrorf(opPredict, ErrNotFitted)
	}
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, mlpErrorf(opPredict, err)
	}
	if X.Cols() != n.Inputs() {
		return nil, mlpErrorf(opPredict, fmt.Errorf("X has %d columns, network expects %d: %w",
			X.Cols(), n.Inputs(), matrix.ErrDimensionMismatch))
	}
	var (
		in  *matrix.Dense
		err error
	)
	if n.std != nil {
		in, err = n.std.Transform(X)
	} else {
		in, err = matrix.SliceRows(X, 0, X.Rows())
	}
	if err != nil {
		return nil, mlpErrorf(opPredict, err)
	}
	act, err := n.act.resolve()
	if err != nil {
		return nil, mlpErrorf(opPredict, err)
	}
	acts, _, err := forward(n.weights, in, act.eval)
	if err != nil {
		return nil, mlpErrorf(opPredict, err)
	}

	return acts[len(acts)-1], nil
}

// PredictFormat runs Predict and post-processes the output.
// Errors: those of Predict, ErrInvalidConfig for an unknown format.
func (n *Network) PredictFormat(X matrix.Matrix, f OutputFormat) (*matrix.Dense, error) {
	Z, err := n.Predict(X)
	if err != nil {
		return nil, mlpErrorf(opPredictFormat, err)
	}
	var out *matrix.Dense
	switch f {
	case OutputActivation:
		return Z, nil
	case OutputSoftmax:
		out, err = softmaxRows(Z)
	case OutputOneHot:
		out, err = oneHotRows(Z)
	case OutputSummary:
		out, err = summaryRows(Z, n.classes)
	default:
		err = fmt.Errorf("%w: unknown output format %d", ErrInvalidConfig, int(f))
	}
	if err != nil {
		return nil, mlpErrorf(opPredictFormat, err)
	}

	return out, nil
}

// PredictLabels returns the winning class label of every row of X.
func (n *Network) PredictLabels(X matrix.Matrix) ([]float64, error) {
	S, err := n.PredictFormat(X, OutputSummary)
	if err != nil {
		return nil, err
	}

	return S.Values(), nil
}
