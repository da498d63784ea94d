// Package lvml is a small machine-learning toolkit built around a dense
// matrix core and a fully connected feed-forward network.
//
// 🚀 What is inside?
//
//		• matrix/   — row-major Dense matrices, arithmetic and reductions,
//		              column statistics, LU/QR/Jacobi factorizations, CSV I/O
//		• metrics/  — Euclidean, Manhattan, Chebyshev, Minkowski and DTW
//		              distances plus pairwise distance matrices
//		• mlp/      — multilayer perceptron: mini-batch gradient descent,
//		              L2 penalty, adaptive learning rate, feature scaling,
//		              label encoding, classification scores, binary model files
//		• lossplot/ — renders a training History as PNG/SVG/PDF via gonum/plot
//		• cmd/mlptrain — trains a classifier from a CSV file
//
// Quick example:
//
//	net := mlp.New(mlp.NewSource(1))
//	hist, err := net.FitLabels(ctx, X, y, mlp.WithHidden(8), mlp.WithMaxIters(500))
//	pred, err := net.PredictLabels(Xtest)
//
// Everything under the root is plain Go with no cgo; training is
// deterministic for a fixed seed and worker count.
//
//	go get github.com/katalvlaran/lvml
package lvml
