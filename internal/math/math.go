package math

import (
	"math"
	"strconv"
)

// Format formats a float based on the given precision
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// Clamp bounds the value to the [min,max] interval.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// IsFinite reports whether the value is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Entropy returns the Shannon entropy in bits of the given magnitudes,
// normalised to [0,1] by the maximum entropy for the bin count.
// A zero distribution has entropy 0.
func Entropy(pp []float64) float64 {
	if len(pp) < 2 {
		return 0
	}
	total := 0.0
	for _, p := range pp {
		total += p
	}
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, p := range pp {
		q := p / total
		if q > 0 {
			h -= q * math.Log2(q)
		}
	}
	return h / math.Log2(float64(len(pp)))
}

// RMS returns the root mean square of the given samples.
func RMS(xx []float64) float64 {
	if len(xx) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xx {
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(xx)))
}
