// SPDX-License-Identifier: MIT
// Package mlp - classification scores.
//
// All functions compare a column of true labels with a column of predicted
// labels of the same length. The binary scores treat the larger of the two
// distinct labels as the positive class.
package mlp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvml/matrix"
)

// ErrNotBinary is returned by the binary scores when the labels span more
// than two classes.
var ErrNotBinary = errors.New("mlp: labels are not binary")

func checkLabels(yTrue, yPred []float64) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%d true vs %d predicted labels: %w", len(yTrue), len(yPred), matrix.ErrDimensionMismatch)
	}
	if len(yTrue) == 0 {
		return ErrEmptyInput
	}

	return nil
}

// unionClasses returns the sorted distinct labels of both slices.
func unionClasses(a, b []float64) []float64 {
	seen := make(map[float64]struct{}, 8)
	var out []float64
	for _, s := range [][]float64{a, b} {
		for _, v := range s {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	sort.Float64s(out)

	return out
}

// Accuracy returns the fraction of positions where yPred equals yTrue.
func Accuracy(yTrue, yPred []float64) (float64, error) {
	if err := checkLabels(yTrue, yPred); err != nil {
		return 0, mlpErrorf("Accuracy", err)
	}
	var hits int
	for i, v := range yTrue {
		if yPred[i] == v {
			hits++
		}
	}

	return float64(hits) / float64(len(yTrue)), nil
}

// ConfusionMatrix counts (predicted, true) label pairs. Rows index the
// predicted class and columns the true class, both in the order of the
// returned sorted class list.
func ConfusionMatrix(yTrue, yPred []float64) (*matrix.Dense, []float64, error) {
	const op = "ConfusionMatrix"
	if err := checkLabels(yTrue, yPred); err != nil {
		return nil, nil, mlpErrorf(op, err)
	}
	classes := unionClasses(yTrue, yPred)
	k := len(classes)
	flat := make([]float64, k*k)
	for i, t := range yTrue {
		ti := sort.SearchFloat64s(classes, t)
		pi := sort.SearchFloat64s(classes, yPred[i])
		flat[pi*k+ti]++
	}
	cm, err := matrix.NewDenseFrom(k, k, flat)
	if err != nil {
		return nil, nil, mlpErrorf(op, err)
	}

	return cm, classes, nil
}

// binaryCounts returns true positives, false positives and false negatives.
func binaryCounts(yTrue, yPred []float64) (tp, fp, fn float64, err error) {
	if err = checkLabels(yTrue, yPred); err != nil {
		return 0, 0, 0, err
	}
	classes := unionClasses(yTrue, yPred)
	if len(classes) > 2 {
		return 0, 0, 0, fmt.Errorf("%d classes: %w", len(classes), ErrNotBinary)
	}
	pos := classes[len(classes)-1]
	for i, t := range yTrue {
		p := yPred[i]
		switch {
		case p == pos && t == pos:
			tp++
		case p == pos:
			fp++
		case t == pos:
			fn++
		}
	}

	return tp, fp, fn, nil
}

// Precision returns tp / (tp + fp) for binary labels (0 when nothing was
// predicted positive).
func Precision(yTrue, yPred []float64) (float64, error) {
	tp, fp, _, err := binaryCounts(yTrue, yPred)
	if err != nil {
		return 0, mlpErrorf("Precision", err)
	}
	if tp+fp == 0 {
		return 0, nil
	}

	return tp / (tp + fp), nil
}

// Recall returns tp / (tp + fn) for binary labels (0 when there is no
// positive sample).
func Recall(yTrue, yPred []float64) (float64, error) {
	tp, _, fn, err := binaryCounts(yTrue, yPred)
	if err != nil {
		return 0, mlpErrorf("Recall", err)
	}
	if tp+fn == 0 {
		return 0, nil
	}

	return tp / (tp + fn), nil
}

// F1 returns the harmonic mean of Precision and Recall.
func F1(yTrue, yPred []float64) (float64, error) {
	p, err := Precision(yTrue, yPred)
	if err != nil {
		return 0, mlpErrorf("F1", err)
	}
	r, err := Recall(yTrue, yPred)
	if err != nil {
		return 0, mlpErrorf("F1", err)
	}
	if p+r == 0 {
		return 0, nil
	}

	return 2 * p * r / (p + r), nil
}
