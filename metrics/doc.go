// Package metrics computes distances between the rows of matrices.
//
// What is provided:
//
//   - Func: a distance between two equal-length vectors.
//   - The Minkowski family (Manhattan p=1, Euclidean p=2, Chebyshev p=∞), plus
//     "no-root" variants that skip the final p-th root (e.g. SquaredEuclidean),
//     which preserve ordering and are cheaper for nearest-neighbour searches.
//   - DTW: Dynamic Time Warping between rows treated as sequences, with an
//     optional Sakoe–Chiba window and slope penalty.
//   - Pairwise(A, f): n×n symmetric distance matrix of A's rows.
//   - Cross(A, B, f): n×m distances between the rows of A and the rows of B.
//
// Usage:
//
//	d, err := metrics.Pairwise(X, metrics.Euclidean)
//	eucl3, err := metrics.Minkowski(3)
//	c, err := metrics.Cross(X, centroids, eucl3)
//
// Complexity:
//
//	Pairwise is O(n²·c) (upper triangle evaluated once); Cross is O(n·m·c).
//	DTW is O(c²) per pair, O(c·w) with a window of w.
package metrics
