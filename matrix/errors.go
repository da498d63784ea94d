// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with an
// operation tag) and tests MUST check them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with fmt.Errorf("<Op>: %w", ErrX)
// through matrixErrorf; callers still use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index -> NaN/Inf -> dimension mismatch -> ingestion (IO/parse).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub with different shapes, Mul where a.Cols != b.Rows, or a flat
	// data slice whose length differs from rows*cols.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (Set, Apply, ingestion).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrEmptyMatrix signals a reduction that is undefined on zero rows
	// (e.g., Min/Max/Mean of an empty matrix).
	ErrEmptyMatrix = errors.New("matrix: empty matrix")

	// ErrIO wraps filesystem and reader failures during CSV ingestion/export.
	ErrIO = errors.New("matrix: i/o failure")

	// ErrParse signals a malformed CSV record (non-numeric field or ragged row).
	ErrParse = errors.New("matrix: malformed numeric field")

	// ErrSingular is returned by Inverse when a pivot vanishes.
	ErrSingular = errors.New("matrix: matrix is singular")

	// ErrNotSymmetric is returned by SymmetricEigen for asymmetric input.
	ErrNotSymmetric = errors.New("matrix: matrix is not symmetric")

	// ErrNoConvergence is returned when an iterative factorization exhausts its budget.
	ErrNoConvergence = errors.New("matrix: iteration did not converge")
)

// ErrIndexOutOfBounds historically named the same condition as ErrOutOfRange.
// Keep it as an alias so errors.Is(err, ErrIndexOutOfBounds) remains true.
var ErrIndexOutOfBounds = ErrOutOfRange // Deprecated: use ErrOutOfRange.
