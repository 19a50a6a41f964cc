package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFit_ZScore(t *testing.T) {

	rows := [][]float64{
		{10, 100, 0.5, 0.5, 0.5, 0.5},
		{50, 500, 0.1, 0.9, 0.2, 0.8},
		{30, 300, 0.3, 0.3, 0.3, 0.3},
	}

	stats, err := Fit(rows)
	assert.NoError(t, err)

	assert.InDelta(t, 30.0, stats.Mean[0], 1e-9)
	assert.InDelta(t, 16.32993161855452, stats.StDev[0], 1e-9)

	out, err := stats.Apply(rows[0])
	assert.NoError(t, err)
	assert.InDelta(t, -1.224744871391589, out[0], 1e-9)
}

func TestStats_RoundTrip(t *testing.T) {

	rows := [][]float64{
		{10, 100, 0.5, 0.5, 0.5, 0.5},
		{50, 500, 0.1, 0.9, 0.2, 0.8},
		{30, 300, 0.3, 0.3, 0.3, 0.3},
	}

	stats, err := Fit(rows)
	assert.NoError(t, err)

	for _, row := range rows {
		normalised, err := stats.Apply(row)
		assert.NoError(t, err)
		back, err := stats.Invert(normalised)
		assert.NoError(t, err)
		for i := range row {
			assert.InDelta(t, row[i], back[i], 1e-9)
		}
	}
}

func TestFit_ConstantColumn(t *testing.T) {

	rows := [][]float64{
		{1, 5},
		{2, 5},
		{3, 5},
	}

	stats, err := Fit(rows)
	assert.NoError(t, err)

	// constant columns get a floored stdev, not a division by zero
	assert.Equal(t, epsilon, stats.StDev[1])

	out, err := stats.Apply([]float64{2, 5})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, out[1])
}

func TestFit_Errors(t *testing.T) {

	_, err := Fit(nil)
	assert.Error(t, err)

	_, err = Fit([][]float64{{1, 2}, {1}})
	assert.Error(t, err)

	stats, err := Fit([][]float64{{1, 2}})
	assert.NoError(t, err)
	_, err = stats.Apply([]float64{1})
	assert.Error(t, err)
}

func TestLabelTransform_RoundTrip(t *testing.T) {

	yy := []float64{0, 10, 1000, 250000, 12000000}

	lt, err := FitLabel(yy)
	assert.NoError(t, err)

	for _, y := range yy {
		v := lt.Forward(y)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.InDelta(t, y, lt.Inverse(v), 1e-6*(y+1))
	}
}

func TestLabelTransform_Bounds(t *testing.T) {

	lt, err := FitLabel([]float64{100, 10000})
	assert.NoError(t, err)

	assert.Equal(t, 0.0, lt.Forward(100))
	assert.Equal(t, 1.0, lt.Forward(10000))
}
