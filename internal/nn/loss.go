package nn

import (
	"math"

	coinmath "github.com/clipsense/virality/internal/math"
)

// probEpsilon clips predicted probabilities before the logarithm
// to keep the cross entropy finite.
const probEpsilon = 1e-7

// Mode selects the output activation and loss of the network.
type Mode string

const (
	// Classification terminates in a sigmoid output trained with binary cross entropy.
	Classification Mode = "classification"
	// Regression terminates in a linear output trained with mean squared error.
	Regression Mode = "regression"
)

// Output returns the output activation for the mode.
func (m Mode) Output() Activation {
	if m == Classification {
		return Sigmoid
	}
	return Linear
}

// Loss computes the mean loss of the predictions against the targets.
func (m Mode) Loss(predicted, actual []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	sum := 0.0
	for i, p := range predicted {
		y := actual[i]
		switch m {
		case Classification:
			p = coinmath.Clamp(p, probEpsilon, 1-probEpsilon)
			sum += -(y*math.Log(p) + (1-y)*math.Log(1-p))
		default:
			d := p - y
			sum += d * d
		}
	}
	return sum / float64(len(predicted))
}
