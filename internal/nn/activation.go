package nn

import (
	"fmt"
	"math"
)

// Activation selects the unit activation function for the whole network.
//
// The choice is global: every non-input unit applies the same function, and
// the backward sweep applies the paired derivative. The pairing is fixed at
// compile time rather than dispatched through strings so that an activation
// can never be combined with the wrong derivative.
type Activation int

const (
	// Sigmoid is the logistic function f(x) = 1 / (1 + e^-x).
	Sigmoid Activation = iota

	// Tanh is the hyperbolic tangent, computed in a sign-separated form
	// that cannot overflow for large |x|.
	Tanh
)

// ParseActivation maps a configuration value to an Activation.
func ParseActivation(s string) (Activation, error) {
	switch s {
	case "Sigmoid":
		return Sigmoid, nil
	case "Tanh":
		return Tanh, nil
	default:
		return 0, fmt.Errorf("nn: unknown activation function %q", s)
	}
}

// String returns the configuration name of the activation.
func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "Sigmoid"
	case Tanh:
		return "Tanh"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// Apply evaluates the activation function at x.
func (a Activation) Apply(x float64) float64 {
	switch a {
	case Tanh:
		return tanh(x)
	default:
		return sigmoid(x)
	}
}

// Derivative evaluates the derivative of the activation function at x.
func (a Activation) Derivative(x float64) float64 {
	switch a {
	case Tanh:
		return derivTanh(x)
	default:
		return derivSigmoid(x)
	}
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// derivSigmoid is f'(x) = f(x) * (1 - f(x)).
func derivSigmoid(x float64) float64 {
	f := sigmoid(x)
	return f * (1.0 - f)
}

// tanh computes the hyperbolic tangent in the sign-separated form
// s*(e-1)/(e+1) with e = exp(s*2x), s = sign(x), which needs a single
// exponential instead of the two in the textbook
// (e^x - e^-x)/(e^x + e^-x) form.
func tanh(x float64) float64 {
	s := 1.0
	if x <= 0 {
		s = -1.0
	}
	e := math.Exp(s * 2.0 * x)
	return s * ((e - 1.0) / (e + 1.0))
}

// derivTanh is f'(x) = 1 - f(x)^2.
func derivTanh(x float64) float64 {
	f := tanh(x)
	return 1.0 - f*f
}
