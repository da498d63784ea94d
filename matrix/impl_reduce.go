// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column reductions (mean/min/max), optionally per group of rows, plus
//     whole-matrix helpers (Sum, Unique, ArgMaxRows) and row filtering.
//
// Exposed API:
//   - Mean(X), Min(X), Max(X)            -> 1×c row
//   - MeanBy/MinBy/MaxBy(X, groups)      -> g×c (one row per label, first-seen order), labels
//   - ColMeans/ColMins/ColMaxs(X)        -> []float64 (len=c)
//   - Sum(X), Unique(X), ArgMaxRows(X), Filter(X, pred)
//
// Determinism & Performance:
//   - Fixed i→j traversal; group order is the order in which labels first appear.
//   - Group lookup uses a map from label to slot, but results are laid out by slot,
//     so map iteration order never leaks into output.

package matrix

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

const (
	opMean       = "Mean"
	opMin        = "Min"
	opMax        = "Max"
	opMeanBy     = "MeanBy"
	opMinBy      = "MinBy"
	opMaxBy      = "MaxBy"
	opFilter     = "Filter"
	opArgMaxRows = "ArgMaxRows"
	opUnique     = "Unique"
)

// reducer folds one column value into an accumulator slot.
type reducer struct {
	init  float64                     // accumulator seed
	fold  func(acc, v float64) float64 // combine step
	final func(acc float64, n int) float64
}

var (
	reduceMean = reducer{
		init:  0,
		fold:  func(acc, v float64) float64 { return acc + v },
		final: func(acc float64, n int) float64 { return acc / float64(n) },
	}
	reduceMin = reducer{
		init:  math.Inf(1),
		fold:  math.Min,
		final: func(acc float64, _ int) float64 { return acc },
	}
	reduceMax = reducer{
		init:  math.Inf(-1),
		fold:  math.Max,
		final: func(acc float64, _ int) float64 { return acc },
	}
)

// reduceColumns applies red to every column of X.
// Errors: ErrNilMatrix; ErrEmptyMatrix when X has no rows.
func reduceColumns(X Matrix, red reducer, opTag string) ([]float64, error) {
	d, err := densify(X)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if d.r == 0 {
		return nil, matrixErrorf(opTag, ErrEmptyMatrix)
	}
	out := make([]float64, d.c)
	for j := range out {
		out[j] = red.init
	}
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out[j] = red.fold(out[j], d.data[base+j])
		}
	}
	for j = range out {
		out[j] = red.final(out[j], d.r)
	}

	return out, nil
}

// reduceGroups applies red per group of rows sharing a label in groups (n×1).
// MAIN DESCRIPTION:
//   - Partition rows by label; one output row per distinct label.
//
// Implementation:
//   - Stage 1: validate X and groups (n×1).
//   - Stage 2: assign slots to labels in first-seen order.
//   - Stage 3: fold each row into its slot, then finalize with per-slot counts.
//
// Returns:
//   - *Dense g×c of reduced values and the g labels in slot order.
//
// Complexity:
//   - Time O(r*c), Space O(g*c).
func reduceGroups(X, groups Matrix, red reducer, opTag string) (*Dense, []float64, error) {
	d, err := densify(X)
	if err != nil {
		return nil, nil, matrixErrorf(opTag, err)
	}
	if err = ValidateColumnVector(groups, d.r); err != nil {
		return nil, nil, matrixErrorf(opTag, err)
	}
	g, err := densify(groups)
	if err != nil {
		return nil, nil, matrixErrorf(opTag, err)
	}

	slotOf := make(map[float64]int)
	labels := make([]float64, 0)
	rowSlot := make([]int, d.r)
	for i, lbl := range g.data {
		s, seen := slotOf[lbl]
		if !seen {
			s = len(labels)
			slotOf[lbl] = s
			labels = append(labels, lbl)
		}
		rowSlot[i] = s
	}

	res, err := NewFilled(len(labels), d.c, 0)
	if err != nil {
		return nil, nil, matrixErrorf(opTag, err)
	}
	for k := range res.data {
		res.data[k] = red.init
	}
	counts := make([]int, len(labels))
	var i, j, src, dst int
	for i = 0; i < d.r; i++ {
		counts[rowSlot[i]]++
		src, dst = i*d.c, rowSlot[i]*d.c
		for j = 0; j < d.c; j++ {
			res.data[dst+j] = red.fold(res.data[dst+j], d.data[src+j])
		}
	}
	for s := range labels {
		for j = 0; j < d.c; j++ {
			res.data[s*d.c+j] = red.final(res.data[s*d.c+j], counts[s])
		}
	}

	return res, labels, nil
}

// rowOf wraps a column result into a 1×c Dense.
func rowOf(v []float64, opTag string) (*Dense, error) {
	res, err := NewDense(1, len(v))
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	copy(res.data, v)

	return res, nil
}

// ColMeans returns the per-column arithmetic mean.
// Errors: ErrNilMatrix, ErrEmptyMatrix.
func ColMeans(X Matrix) ([]float64, error) { return reduceColumns(X, reduceMean, opMean) }

// ColMins returns the per-column minimum.
// Errors: ErrNilMatrix, ErrEmptyMatrix.
func ColMins(X Matrix) ([]float64, error) { return reduceColumns(X, reduceMin, opMin) }

// ColMaxs returns the per-column maximum.
// Errors: ErrNilMatrix, ErrEmptyMatrix.
func ColMaxs(X Matrix) ([]float64, error) { return reduceColumns(X, reduceMax, opMax) }

// Mean returns the column means as a 1×c matrix.
func Mean(X Matrix) (*Dense, error) {
	v, err := ColMeans(X)
	if err != nil {
		return nil, err
	}

	return rowOf(v, opMean)
}

// Min returns the column minima as a 1×c matrix.
func Min(X Matrix) (*Dense, error) {
	v, err := ColMins(X)
	if err != nil {
		return nil, err
	}

	return rowOf(v, opMin)
}

// Max returns the column maxima as a 1×c matrix.
func Max(X Matrix) (*Dense, error) {
	v, err := ColMaxs(X)
	if err != nil {
		return nil, err
	}

	return rowOf(v, opMax)
}

// MeanBy returns per-group column means. groups is an n×1 label column; the
// result has one row per distinct label in first-seen order, and the labels.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func MeanBy(X, groups Matrix) (*Dense, []float64, error) {
	return reduceGroups(X, groups, reduceMean, opMeanBy)
}

// MinBy returns per-group column minima (see MeanBy for ordering).
func MinBy(X, groups Matrix) (*Dense, []float64, error) {
	return reduceGroups(X, groups, reduceMin, opMinBy)
}

// MaxBy returns per-group column maxima (see MeanBy for ordering).
func MaxBy(X, groups Matrix) (*Dense, []float64, error) {
	return reduceGroups(X, groups, reduceMax, opMaxBy)
}

// Sum returns the sum of all elements. Errors: ErrNilMatrix.
func Sum(X Matrix) (float64, error) {
	d, err := densify(X)
	if err != nil {
		return 0, matrixErrorf("Sum", err)
	}

	return floats.Sum(d.data), nil
}

// Unique returns the distinct values of X in ascending order.
// Errors: ErrNilMatrix.
// Complexity: O(n log n) for n = r*c.
func Unique(X Matrix) ([]float64, error) {
	d, err := densify(X)
	if err != nil {
		return nil, matrixErrorf(opUnique, err)
	}
	vals := d.Values()
	sort.Float64s(vals)
	out := vals[:0]
	for k, v := range vals {
		if k == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}

	return out, nil
}

// ArgMaxRows returns, for each row, the column index of its largest value
// (the first one on ties).
// Errors: ErrNilMatrix; ErrEmptyMatrix when X has no columns but has rows.
func ArgMaxRows(X Matrix) ([]int, error) {
	d, err := densify(X)
	if err != nil {
		return nil, matrixErrorf(opArgMaxRows, err)
	}
	if d.r > 0 && d.c == 0 {
		return nil, matrixErrorf(opArgMaxRows, ErrEmptyMatrix)
	}
	out := make([]int, d.r)
	for i := 0; i < d.r; i++ {
		out[i] = floats.MaxIdx(d.data[i*d.c : (i+1)*d.c])
	}

	return out, nil
}

// Filter returns a new matrix keeping the rows for which pred returns true.
// MAIN DESCRIPTION:
//   - Row selection by predicate; column count and relative row order are preserved.
//
// Behavior highlights:
//   - pred receives a copy of the row; mutating it has no effect on X.
//   - No matching rows yields a legal 0×c matrix.
//
// Errors:
//   - ErrNilMatrix (X nil), ErrNilMatrix-wrapped when pred is nil.
//
// Complexity:
//   - Time O(r*c), Space O(k*c) for k kept rows.
func Filter(X Matrix, pred func(row []float64) bool) (*Dense, error) {
	d, err := densify(X)
	if err != nil {
		return nil, matrixErrorf(opFilter, err)
	}
	if pred == nil {
		return nil, matrixErrorf(opFilter, fmt.Errorf("nil predicate: %w", ErrNilMatrix))
	}
	keep := make([]int, 0, d.r)
	row := make([]float64, d.c)
	for i := 0; i < d.r; i++ {
		copy(row, d.data[i*d.c:(i+1)*d.c])
		if pred(row) {
			keep = append(keep, i)
		}
	}

	return SelectRows(d, keep)
}
