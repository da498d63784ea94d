// Package matrix provides a dense, row-major float64 matrix and the kernels
// that the lvml learners are built on.
//
// The package offers:
//
//   - Dense: a flat row-major buffer with bounds-checked At/Set and an
//     optional finite-only numeric policy (on by default).
//   - Arithmetic kernels (Add, Sub, Mul, Hadamard, Transpose, Scale, Map, ...)
//     that always return a fresh *Dense and never mutate their operands.
//   - Slicing and stacking (SliceRows, SelectRows, HStack, ...) used to build
//     mini-batches and bias-augmented inputs.
//   - Column reductions, optionally grouped by a label column (MeanBy, ...),
//     and column statistics (ColStdDevs, Covariance, Correlation).
//   - Factorizations: LU with partial pivoting (Det, Inverse), Householder QR
//     and the Jacobi eigen-decomposition of symmetric matrices.
//   - CSV ingestion/export with explicit header handling, and gonum/mat interop.
//
// Errors are package sentinels (ErrDimensionMismatch, ErrOutOfRange, ErrIO,
// ErrParse, ...) wrapped with an operation tag; match them with errors.Is.
//
// Complexity:
//
//	Rows, Cols, At and Set run in O(1). Element-wise kernels are O(r*c);
//	Mul is O(r*n*c); LU, Inverse and QR are O(n³).
package matrix
