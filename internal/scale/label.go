package scale

import (
	"fmt"
	"math"
)

// LabelTransform maps a skewed regression target into [0,1] by taking
// log10(x+1) and min-max rescaling. The inverse is the exact algebraic
// inverse, so predictions can be reported in original units.
type LabelTransform struct {
	LogMin float64 `json:"log_min"`
	LogMax float64 `json:"log_max"`
	RawMin float64 `json:"raw_min"`
	RawMax float64 `json:"raw_max"`
}

// FitLabel computes the label transform bounds from the raw training targets.
func FitLabel(yy []float64) (LabelTransform, error) {
	if len(yy) == 0 {
		return LabelTransform{}, fmt.Errorf("cannot fit label transform on empty set")
	}

	lt := LabelTransform{
		LogMin: math.MaxFloat64,
		LogMax: -math.MaxFloat64,
		RawMin: math.MaxFloat64,
		RawMax: -math.MaxFloat64,
	}
	for _, y := range yy {
		l := math.Log10(y + 1)
		lt.LogMin = math.Min(lt.LogMin, l)
		lt.LogMax = math.Max(lt.LogMax, l)
		lt.RawMin = math.Min(lt.RawMin, y)
		lt.RawMax = math.Max(lt.RawMax, y)
	}
	return lt, nil
}

// Forward maps a raw target value into [0,1].
func (lt LabelTransform) Forward(y float64) float64 {
	l := math.Log10(y + 1)
	return (l - lt.LogMin) / lt.span()
}

// Inverse maps a network output back to the original target scale.
func (lt LabelTransform) Inverse(v float64) float64 {
	l := v*lt.span() + lt.LogMin
	return math.Pow(10, l) - 1
}

func (lt LabelTransform) span() float64 {
	return math.Max(lt.LogMax-lt.LogMin, epsilon)
}
