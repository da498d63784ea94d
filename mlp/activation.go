// SPDX-License-Identifier: MIT
// Package mlp - activation functions.
//
// Purpose:
//   - A closed set of activation variants selected by an enum value.
//   - Each variant resolves once to an immutable {eval, deriv} pair so the
//     training loop dispatches through plain function values.
//
// Contract:
//   - deriv receives the activation OUTPUT y = eval(x), never x.
//     Sigmoid: y(1-y). Tanh: 1-y². ReLU: 1 if y>0 else 0. Linear: 1.
package mlp

import (
	"fmt"
	"math"
	"strings"
)

// Activation selects the element-wise nonlinearity applied after every layer.
type Activation int

const (
	// Sigmoid is the logistic function 1/(1+e^-x).
	Sigmoid Activation = iota
	// Tanh is the hyperbolic tangent.
	Tanh
	// ReLU is max(0, x).
	ReLU
	// Linear is the identity.
	Linear
)

// activationFuncs is the resolved form of an Activation.
type activationFuncs struct {
	eval  func(x float64) float64
	deriv func(y float64) float64
}

// sigmoid avoids exp overflow for large |x|.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)

	return e / (1 + e)
}

var activationTable = map[Activation]activationFuncs{
	Sigmoid: {
		eval:  sigmoid,
		deriv: func(y float64) float64 { return y * (1 - y) },
	},
	Tanh: {
		eval:  math.Tanh,
		deriv: func(y float64) float64 { return 1 - y*y },
	},
	ReLU: {
		eval: func(x float64) float64 {
			if x > 0 {
				return x
			}
			return 0
		},
		deriv: func(y float64) float64 {
			if y > 0 {
				return 1
			}
			return 0
		},
	},
	Linear: {
		eval:  func(x float64) float64 { return x },
		deriv: func(float64) float64 { return 1 },
	},
}

// resolve returns the function pair for a, or ErrInvalidConfig.
func (a Activation) resolve() (activationFuncs, error) {
	f, ok := activationTable[a]
	if !ok {
		return activationFuncs{}, fmt.Errorf("%w: unknown activation %d", ErrInvalidConfig, int(a))
	}

	return f, nil
}

// Eval applies the activation to x. Unknown values behave like Linear.
func (a Activation) Eval(x float64) float64 {
	f, err := a.resolve()
	if err != nil {
		return x
	}

	return f.eval(x)
}

// Deriv returns the derivative expressed through the activation output y.
// Unknown values behave like Linear.
func (a Activation) Deriv(y float64) float64 {
	f, err := a.resolve()
	if err != nil {
		return 1
	}

	return f.deriv(y)
}

// String implements fmt.Stringer.
func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation maps a case-insensitive name ("sigmoid", "tanh", "relu",
// "linear") to its Activation.
func ParseActivation(s string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sigmoid":
		return Sigmoid, nil
	case "tanh":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	case "linear", "identity":
		return Linear, nil
	}

	return 0, fmt.Errorf("%w: unknown activation %q", ErrInvalidConfig, s)
}
