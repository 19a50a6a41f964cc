package buffer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Push(t *testing.T) {

	stats := NewStats()

	for i := 0; i < 100; i++ {
		stats.Push(float64(i))
	}

	assert.Equal(t, 100, stats.Count())
	assert.Equal(t, 49.5, stats.Avg())
	assert.Equal(t, 0.0, stats.Min())
	assert.Equal(t, 99.0, stats.Max())
	// population variance of 0..99
	assert.InDelta(t, 833.25, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(833.25), stats.StDev(), 1e-9)
}

func TestStats_PopulationStDev(t *testing.T) {

	stats := NewStats()

	for _, v := range []float64{10, 50, 30} {
		stats.Push(v)
	}

	assert.InDelta(t, 30.0, stats.Avg(), 1e-9)
	assert.InDelta(t, 16.32993161855452, stats.StDev(), 1e-9)
}

func TestStatsCollector_Push(t *testing.T) {

	sc := NewStatsCollector(2)

	sc.Push(1, 10)
	sc.Push(2, 20)
	sc.Push(3, 30)

	assert.Equal(t, 3, sc.Size())
	assert.InDelta(t, 2.0, sc.Stats()[0].Avg(), 1e-9)
	assert.InDelta(t, 20.0, sc.Stats()[1].Avg(), 1e-9)

	assert.Panics(t, func() {
		sc.Push(1.0)
	})
}
