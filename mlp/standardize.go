// SPDX-License-Identifier: MIT
// Package mlp - per-column standardization.
//
// Contract:
//   - Statistics: column mean and sample standard deviation (n-1 divisor).
//   - A column whose deviation is zero (or every column when n < 2) passes
//     through unchanged: its offset is 0 and its scale is 1.
//   - Transform never mutates its input.
package mlp

import (
	"fmt"

	"github.com/katalvlaran/lvml/matrix"
)

const (
	opFitStandardizer = "FitStandardizer"
	opTransform       = "Standardizer.Transform"
)

// Standardizer maps every column x to (x - offset) / scale.
type Standardizer struct {
	offset []float64
	scale  []float64
}

// FitStandardizer computes per-column statistics of X.
// Errors: matrix.ErrNilMatrix, ErrEmptyInput (zero rows or columns).
// Complexity: O(r*c).
func FitStandardizer(X matrix.Matrix) (*Standardizer, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, mlpErrorf(opFitStandardizer, err)
	}
	r, c := X.Rows(), X.Cols()
	if r == 0 || c == 0 {
		return nil, mlpErrorf(opFitStandardizer, fmt.Errorf("%d×%d: %w", r, c, ErrEmptyInput))
	}
	means, err := matrix.ColMeans(X)
	if err != nil {
		return nil, mlpErrorf(opFitStandardizer, err)
	}
	stds, err := matrix.ColStdDevs(X)
	if err != nil {
		return nil, mlpErrorf(opFitStandardizer, err)
	}

	s := &Standardizer{offset: make([]float64, c), scale: make([]float64, c)}
	for j := 0; j < c; j++ {
		if r < 2 || stds[j] == 0 || badFloat(stds[j]) {
			s.offset[j], s.scale[j] = 0, 1
			continue
		}
		s.offset[j], s.scale[j] = means[j], stds[j]
	}

	return s, nil
}

// newStandardizer builds a Standardizer from stored statistics.
func newStandardizer(offset, scale []float64) (*Standardizer, error) {
	if len(offset) != len(scale) {
		return nil, fmt.Errorf("%d offsets, %d scales: %w", len(offset), len(scale), matrix.ErrDimensionMismatch)
	}
	for j, v := range scale {
		if badFloat(v) || v <= 0 || badFloat(offset[j]) {
			return nil, fmt.Errorf("column %d: offset %g scale %g: %w", j, offset[j], v, ErrCorruptModel)
		}
	}

	return &Standardizer{
		offset: append([]float64(nil), offset...),
		scale:  append([]float64(nil), scale...),
	}, nil
}

// Width returns the number of columns the statistics were computed on.
func (s *Standardizer) Width() int { return len(s.offset) }

// Offsets returns a copy of the per-column offsets (means, or 0 for
// pass-through columns).
func (s *Standardizer) Offsets() []float64 { return append([]float64(nil), s.offset...) }

// Scales returns a copy of the per-column scales (standard deviations, or 1
// for pass-through columns).
func (s *Standardizer) Scales() []float64 { return append([]float64(nil), s.scale...) }

// Transform returns the standardized copy of X.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (Cols != Width).
// Complexity: O(r*c).
func (s *Standardizer) Transform(X matrix.Matrix) (*matrix.Dense, error) {
	centered, err := matrix.SubCols(X, s.offset)
	if err != nil {
		return nil, mlpErrorf(opTransform, err)
	}
	inv := make([]float64, len(s.scale))
	for j, v := range s.scale {
		inv[j] = 1 / v
	}
	out, err := matrix.ScaleCols(centered, inv)
	if err != nil {
		return nil, mlpErrorf(opTransform, err)
	}

	return out, nil
}
