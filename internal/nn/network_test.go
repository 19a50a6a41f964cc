package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func toyRows() ([][]float64, []float64) {
	xx := [][]float64{
		{1, 1, 0.5, 0.5, 0.5, 0.5},
		{-1, -1, 0.1, 0.9, 0.2, 0.8},
		{0.5, 0.5, 0.3, 0.3, 0.3, 0.3},
		{-0.5, -0.5, 0.6, 0.1, 0.9, 0.2},
	}
	yy := []float64{1, 0, 1, 0}
	return xx, yy
}

func TestNetwork_EvalDeterministic(t *testing.T) {

	a := New(6, Classification, 11)
	b := New(6, Classification, 11)

	x := []float64{0.1, -0.2, 0.3, 0.4, -0.5, 0.6}

	assert.Equal(t, a.Eval(x), b.Eval(x))
	// repeated evaluation is bit for bit identical
	assert.Equal(t, a.Eval(x), a.Eval(x))
}

func TestNetwork_OutputRange(t *testing.T) {

	net := New(6, Classification, 3)
	xx, _ := toyRows()

	for _, x := range xx {
		p := net.Eval(x)
		assert.Greater(t, p, 0.0)
		assert.Less(t, p, 1.0)
	}
}

func TestNetwork_TrainReducesLoss(t *testing.T) {

	net := New(6, Classification, 7)
	xx, yy := toyRows()

	first := net.TrainBatch(xx, yy, 0.5, 0)
	var last float64
	for i := 0; i < 500; i++ {
		last = net.TrainBatch(xx, yy, 0.5, 0)
	}

	assert.Less(t, last, first)
}

func TestNetwork_TrainRegression(t *testing.T) {

	net := New(6, Regression, 7)
	xx, _ := toyRows()
	yy := []float64{0.9, 0.1, 0.8, 0.2}

	var last float64
	for i := 0; i < 500; i++ {
		last = net.TrainBatch(xx, yy, 0.1, 0)
	}

	assert.Less(t, last, 0.1)
	assert.False(t, math.IsNaN(last))
}

func TestNetwork_WeightsRoundTrip(t *testing.T) {

	net := New(6, Classification, 5)
	xx, yy := toyRows()
	for i := 0; i < 10; i++ {
		net.TrainBatch(xx, yy, 0.1, DropoutRate)
	}

	restored, err := FromWeights(net.Weights())
	assert.NoError(t, err)

	x := []float64{0.3, 0.1, -0.2, 0.7, 0.5, -0.1}
	assert.Equal(t, net.Eval(x), restored.Eval(x))
}

func TestFromWeights_Invalid(t *testing.T) {

	_, err := FromWeights(Weights{Topology: []int{6}})
	assert.Error(t, err)

	w := New(6, Regression, 1).Weights()
	w.W[0] = w.W[0][:3]
	_, err = FromWeights(w)
	assert.Error(t, err)
}

func TestMode_Loss(t *testing.T) {

	// clipped cross entropy stays finite on confident mistakes
	loss := Classification.Loss([]float64{1, 0}, []float64{0, 1})
	assert.False(t, math.IsInf(loss, 1))
	assert.Greater(t, loss, 10.0)

	assert.InDelta(t, 0.25, Regression.Loss([]float64{0.5, 0.5}, []float64{0, 1}), 1e-9)
}
