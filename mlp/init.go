// SPDX-License-Identifier: MIT
// Package mlp - weight initialization.
//
// Every scheme fills the whole (in+1)×out matrix, bias row included, from the
// injected Source before the matrix is returned.
package mlp

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvml/matrix"
)

// WeightInit selects how fresh weight matrices are drawn.
type WeightInit int

const (
	// Uniform draws every weight from U[-1, 1].
	Uniform WeightInit = iota
	// Scaled draws from U[-1, 1] and divides by √fanIn, where fanIn is the
	// number of non-bias inputs of the layer.
	Scaled
	// Normal draws every weight from N(0, 1).
	Normal
)

// String implements fmt.Stringer.
func (w WeightInit) String() string {
	switch w {
	case Uniform:
		return "uniform"
	case Scaled:
		return "scaled"
	case Normal:
		return "normal"
	default:
		return fmt.Sprintf("WeightInit(%d)", int(w))
	}
}

// ParseWeightInit maps "uniform", "scaled" or "normal" to its WeightInit.
func ParseWeightInit(s string) (WeightInit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform":
		return Uniform, nil
	case "scaled", "random":
		return Scaled, nil
	case "normal", "gaussian":
		return Normal, nil
	}

	return 0, fmt.Errorf("%w: unknown weight init %q", ErrInvalidConfig, s)
}

func (w WeightInit) valid() bool { return w >= Uniform && w <= Normal }

// initWeights returns a rows×cols matrix populated according to kind.
// rows includes the bias row, so fanIn = rows-1 (at least 1).
//
// Complexity: O(rows*cols) draws from src.
func initWeights(rows, cols int, kind WeightInit, src Source) (*matrix.Dense, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: unknown weight init %d", ErrInvalidConfig, int(kind))
	}
	flat := make([]float64, rows*cols)
	switch kind {
	case Uniform:
		for k := range flat {
			flat[k] = 2*src.Float64() - 1
		}
	case Scaled:
		fanIn := rows - 1
		if fanIn < 1 {
			fanIn = 1
		}
		s := 1 / math.Sqrt(float64(fanIn))
		for k := range flat {
			flat[k] = (2*src.Float64() - 1) * s
		}
	case Normal:
		for k := range flat {
			flat[k] = src.NormFloat64()
		}
	}

	return matrix.NewDenseFrom(rows, cols, flat)
}
