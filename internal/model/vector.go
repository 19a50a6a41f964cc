package model

import (
	"fmt"
	"strings"
)

// Feature column names in their fixed input order.
// Extraction, normalisation and the network input layer all follow this order.
const (
	TitleLength       = "title_length"
	DescriptionLength = "description_length"
	EdgeIntensity     = "edge_intensity"
	ColorHistogram    = "color_histogram"
	SpectralEntropy   = "spectral_entropy"
	AudioIntensity    = "audio_intensity"
)

// Columns is the canonical feature column order.
var Columns = []string{
	TitleLength,
	DescriptionLength,
	EdgeIntensity,
	ColorHistogram,
	SpectralEntropy,
	AudioIntensity,
}

// Dim is the feature vector dimension.
const Dim = 6

// Vector is the fixed-order numeric summary of one sample.
type Vector struct {
	Values []float64 `json:"values"`
}

// NewVector creates a vector from the given values in canonical column order.
func NewVector(values ...float64) Vector {
	return Vector{Values: values}
}

// Get returns the value for the given column name.
func (v Vector) Get(column string) (float64, error) {
	for i, c := range Columns {
		if c == column {
			return v.Values[i], nil
		}
	}
	return 0, fmt.Errorf("unknown column '%s'", column)
}

func (v Vector) String() string {
	lw := new(strings.Builder)
	for i, c := range Columns {
		if i > 0 {
			lw.WriteString(",")
		}
		lw.WriteString(fmt.Sprintf("%s=%f", c, v.Values[i]))
	}
	return lw.String()
}
