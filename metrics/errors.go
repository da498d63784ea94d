// SPDX-License-Identifier: MIT

package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOrder is returned for a Minkowski order p < 1 (or NaN),
	// for which the formula is not a metric.
	ErrInvalidOrder = errors.New("metrics: minkowski order must be >= 1")

	// ErrNilFunc indicates a nil distance function.
	ErrNilFunc = errors.New("metrics: nil distance function")

	// ErrEmptySequence indicates an empty DTW input sequence.
	ErrEmptySequence = errors.New("metrics: dtw input sequences must be non-empty")

	// ErrBadWindow indicates a DTW window below -1.
	ErrBadWindow = errors.New("metrics: dtw window must be >= -1")
)

// metricsErrorf wraps err with an operation tag.
func metricsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
