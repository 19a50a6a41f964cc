package scale

import (
	"fmt"
	"math"

	"github.com/clipsense/virality/internal/buffer"
)

// epsilon is the floor for the standard deviation to avoid division by zero
// on constant feature columns.
const epsilon = 1e-6

// Stats holds the per-feature location and scale computed at fit time.
// The stats are immutable after Fit and must travel with the trained weights:
// recomputing them at inference silently corrupts every prediction.
type Stats struct {
	Mean  []float64 `json:"mean"`
	StDev []float64 `json:"stdev"`
}

// Dim returns the number of feature dimensions covered by the stats.
func (s Stats) Dim() int {
	return len(s.Mean)
}

// Fit computes population mean and standard deviation per feature index
// across all rows.
func Fit(rows [][]float64) (Stats, error) {
	if len(rows) == 0 {
		return Stats{}, fmt.Errorf("cannot fit scaler on empty set")
	}

	dim := len(rows[0])
	collector := buffer.NewStatsCollector(dim)
	for i, row := range rows {
		if len(row) != dim {
			return Stats{}, fmt.Errorf("inconsistent row %d: %d vs %d", i, len(row), dim)
		}
		collector.Push(row...)
	}

	stats := Stats{
		Mean:  make([]float64, dim),
		StDev: make([]float64, dim),
	}
	for i, s := range collector.Stats() {
		stats.Mean[i] = s.Avg()
		stats.StDev[i] = math.Max(s.StDev(), epsilon)
	}
	return stats, nil
}

// Apply normalises the row with the fitted stats. It is pure and must be
// reused verbatim between training and inference.
func (s Stats) Apply(row []float64) ([]float64, error) {
	if len(row) != s.Dim() {
		return nil, fmt.Errorf("inconsistent dimensions %d vs %d", len(row), s.Dim())
	}
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = (v - s.Mean[i]) / s.StDev[i]
	}
	return out, nil
}

// Invert is the exact algebraic inverse of Apply.
func (s Stats) Invert(row []float64) ([]float64, error) {
	if len(row) != s.Dim() {
		return nil, fmt.Errorf("inconsistent dimensions %d vs %d", len(row), s.Dim())
	}
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = v*s.StDev[i] + s.Mean[i]
	}
	return out, nil
}
