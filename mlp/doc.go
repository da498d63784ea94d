// Package mlp trains fully connected feed-forward networks (multi-layer
// perceptrons) with mini-batch gradient descent and back-propagation.
//
// Overview:
//
//   - A Network maps n×inputs feature matrices to n×outputs predictions
//     through one weight matrix per layer transition. Every weight matrix has
//     shape (in+1)×out: the bias lives in row 0 and each layer input is
//     augmented with a leading constant-1 column before the product.
//   - Fit consumes a numeric target matrix; FitLabels one-hot encodes a label
//     column over its sorted distinct values and remembers the labels.
//   - Activations: Sigmoid, Tanh, ReLU, Linear (the same function on every layer).
//   - Initialization: Uniform U[-1,1], Scaled U[-1,1]/√fanIn, Normal N(0,1),
//     or caller-supplied matrices via WithInitialWeights.
//
// Training loop:
//
//   - Inputs are optionally standardized per column; the statistics travel
//     with the network and are re-applied by Predict.
//   - Each epoch walks the (optionally shuffled) rows in batches of
//     BatchSize (0 or > n means one full batch), computing the loss
//     Σ(Z−T)²/(2b) + λ/(2b)·ΣW² (bias rows excluded) and updating W -= lr·G.
//   - Training stops when the epoch loss falls below ErrorThreshold or after
//     MaxIters epochs. With AdaptiveLR the rate shrinks after a worse epoch and
//     grows slowly after a better one, clamped to [LRMin, LRMaxFactor·lr].
//   - A NaN/Inf loss or weight stops the fit with ErrNumericalDivergence.
//
// Determinism and concurrency:
//
//   - All randomness flows from the Source passed to New; equal seeds and
//     equal configuration produce bit-identical weights.
//   - Workers > 1 evaluates contiguous row chunks of each batch in parallel
//     and sums them in chunk order, so results depend only on the worker count.
//   - Fit polls its context once per epoch.
//
// Usage:
//
//	net := mlp.New(mlp.NewSource(42))
//	hist, err := net.FitLabels(ctx, X, labels,
//		mlp.WithHidden(8),
//		mlp.WithLearningRate(0.1),
//		mlp.WithBatchSize(16),
//		mlp.WithMaxIters(500),
//	)
//	pred, err := net.PredictLabels(Xtest)
//
// Error handling (sentinel errors):
//
//   - ErrNotFitted, ErrTopology, ErrEmptyInput, ErrNumericalDivergence,
//     ErrInvalidConfig, ErrCorruptModel, ErrNotBinary.
//   - Shape problems between X and Y wrap matrix.ErrDimensionMismatch.
package mlp
