// SPDX-License-Identifier: MIT
// Package mlp - sentinel errors.
//
// All errors returned by this package wrap one of the sentinels below (or a
// matrix sentinel such as matrix.ErrDimensionMismatch) and are meant to be
// tested with errors.Is.
package mlp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is returned by prediction and export methods before a
	// successful Fit.
	ErrNotFitted = errors.New("mlp: network is not fitted")

	// ErrTopology indicates inconsistent layer shapes: the input width does
	// not match the first layer, consecutive layers do not chain, or the last
	// layer does not produce the target width.
	ErrTopology = errors.New("mlp: inconsistent layer topology")

	// ErrEmptyInput indicates a training set with zero rows or zero columns.
	ErrEmptyInput = errors.New("mlp: empty training input")

	// ErrNumericalDivergence is returned when the loss or a weight becomes
	// NaN or ±Inf after an epoch.
	ErrNumericalDivergence = errors.New("mlp: numerical divergence")

	// ErrInvalidConfig is returned when a Config field or Option value is out
	// of its documented domain.
	ErrInvalidConfig = errors.New("mlp: invalid configuration")

	// ErrCorruptModel is returned by UnmarshalBinary on truncated or
	// inconsistent input.
	ErrCorruptModel = errors.New("mlp: corrupt model encoding")
)

// mlpErrorf wraps err with an operation tag.
func mlpErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
