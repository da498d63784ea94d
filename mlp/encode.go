// SPDX-License-Identifier: MIT
// Package mlp - target encoding and output formats.
package mlp

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvml/matrix"
)

// OutputFormat selects how PredictFormat post-processes the network output.
type OutputFormat int

const (
	// OutputActivation returns the raw output-layer activations.
	OutputActivation OutputFormat = iota
	// OutputSoftmax normalizes every row with the softmax function.
	OutputSoftmax
	// OutputOneHot marks the largest output of every row with 1 and the rest with 0.
	OutputOneHot
	// OutputSummary returns an n×1 column holding the winning class label of
	// every row (the class index when the network was fitted without labels).
	OutputSummary
)

// String implements fmt.Stringer.
func (f OutputFormat) String() string {
	switch f {
	case OutputActivation:
		return "activation"
	case OutputSoftmax:
		return "softmax"
	case OutputOneHot:
		return "onehot"
	case OutputSummary:
		return "summary"
	default:
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
}

// OneHot encodes an n×1 label column against its sorted distinct values.
// Returns the n×k indicator matrix and the k class labels.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (not a column), ErrEmptyInput.
func OneHot(labels matrix.Matrix) (*matrix.Dense, []float64, error) {
	const op = "OneHot"
	if err := matrix.ValidateNotNil(labels); err != nil {
		return nil, nil, mlpErrorf(op, err)
	}
	if labels.Rows() == 0 {
		return nil, nil, mlpErrorf(op, ErrEmptyInput)
	}
	if labels.Cols() != 1 {
		return nil, nil, mlpErrorf(op, fmt.Errorf("labels are %d×%d, want n×1: %w",
			labels.Rows(), labels.Cols(), matrix.ErrDimensionMismatch))
	}
	classes, err := matrix.Unique(labels)
	if err != nil {
		return nil, nil, mlpErrorf(op, err)
	}
	n, k := labels.Rows(), len(classes)
	flat := make([]float64, n*k)
	var v float64
	for i := 0; i < n; i++ {
		if v, err = labels.At(i, 0); err != nil {
			return nil, nil, mlpErrorf(op, err)
		}
		flat[i*k+sort.SearchFloat64s(classes, v)] = 1
	}
	Y, err := matrix.NewDenseFrom(n, k, flat)
	if err != nil {
		return nil, nil, mlpErrorf(op, err)
	}

	return Y, classes, nil
}

// softmaxRows returns exp(z - max) / Σ exp(z - max) per row.
func softmaxRows(Z *matrix.Dense) (*matrix.Dense, error) {
	r, c := Z.Shape()
	vals := Z.Values()
	for i := 0; i < r; i++ {
		row := vals[i*c : (i+1)*c]
		m := math.Inf(-1)
		for _, v := range row {
			m = math.Max(m, v)
		}
		var sum float64
		for j, v := range row {
			row[j] = math.Exp(v - m)
			sum += row[j]
		}
		for j := range row {
			row[j] /= sum
		}
	}

	return matrix.NewDenseFrom(r, c, vals)
}

// oneHotRows marks the first maximum of every row.
func oneHotRows(Z *matrix.Dense) (*matrix.Dense, error) {
	idx, err := matrix.ArgMaxRows(Z)
	if err != nil {
		return nil, err
	}
	r, c := Z.Shape()
	flat := make([]float64, r*c)
	for i, j := range idx {
		flat[i*c+j] = 1
	}

	return matrix.NewDenseFrom(r, c, flat)
}

// summaryRows maps the winning column of every row to classes[col], or to
// the column index when classes is empty.
func summaryRows(Z *matrix.Dense, classes []float64) (*matrix.Dense, error) {
	idx, err := matrix.ArgMaxRows(Z)
	if err != nil {
		return nil, err
	}
	flat := make([]float64, len(idx))
	for i, j := range idx {
		if len(classes) > 0 {
			flat[i] = classes[j]
		} else {
			flat[i] = float64(j)
		}
	}

	return matrix.NewDenseFrom(len(idx), 1, flat)
}
