package nn

import "math"

// Activation identifies the activation applied by a layer.
type Activation string

const (
	Relu    Activation = "relu"
	Sigmoid Activation = "sigmoid"
	Linear  Activation = "linear"
)

func (a Activation) apply(z float64) float64 {
	switch a {
	case Relu:
		if z > 0 {
			return z
		}
		return 0
	case Sigmoid:
		return 1 / (1 + math.Exp(-z))
	default:
		return z
	}
}

// deriv is the derivative of the activation with respect to the pre-activation.
func (a Activation) deriv(z float64) float64 {
	switch a {
	case Relu:
		if z > 0 {
			return 1
		}
		return 0
	case Sigmoid:
		s := 1 / (1 + math.Exp(-z))
		return s * (1 - s)
	default:
		return 1
	}
}
