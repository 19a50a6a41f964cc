package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Default fixed topology: 6 inputs, two hidden relu layers, one output neuron.
var hidden = []int{16, 8}

// DropoutRate is applied to the first hidden layer during training only.
// At inference the dropout path is structurally absent.
const DropoutRate = 0.2

type layer struct {
	w   *mat.Dense    // out x in
	b   *mat.VecDense // out
	act Activation
}

// Network is a fixed-topology feed-forward evaluator.
type Network struct {
	topology []int
	layers   []*layer
	mode     Mode
	rnd      *rand.Rand
}

// New creates a network with the fixed topology for the given mode,
// initialised deterministically from the seed.
func New(inputs int, mode Mode, seed int64) *Network {
	topology := append([]int{inputs}, hidden...)
	topology = append(topology, 1)

	rnd := rand.New(rand.NewSource(seed))

	n := &Network{
		topology: topology,
		layers:   make([]*layer, len(topology)-1),
		mode:     mode,
		rnd:      rnd,
	}
	for i := range n.layers {
		in, out := topology[i], topology[i+1]
		act := Relu
		if i == len(n.layers)-1 {
			act = mode.Output()
		}
		w := make([]float64, in*out)
		scale := math.Sqrt(1 / float64(in))
		for j := range w {
			w[j] = (rnd.Float64()*2 - 1) * scale
		}
		n.layers[i] = &layer{
			w:   mat.NewDense(out, in, w),
			b:   mat.NewVecDense(out, nil),
			act: act,
		}
	}
	return n
}

// Mode returns the network mode.
func (n *Network) Mode() Mode {
	return n.mode
}

// Eval runs a pure forward pass on the input vector and returns the
// output scalar. No dropout is involved here.
func (n *Network) Eval(x []float64) float64 {
	a := mat.NewVecDense(len(x), append([]float64{}, x...))
	for _, l := range n.layers {
		z := mat.NewVecDense(l.b.Len(), nil)
		z.MulVec(l.w, a)
		z.AddVec(z, l.b)
		for i := 0; i < z.Len(); i++ {
			z.SetVec(i, l.act.apply(z.AtVec(i)))
		}
		a = z
	}
	return a.AtVec(0)
}

// forward runs a training forward pass, recording pre-activations and
// activations and applying an inverted dropout mask on the first hidden layer.
func (n *Network) forward(x []float64, dropout float64) (zs []*mat.VecDense, as []*mat.VecDense, mask []float64) {
	a := mat.NewVecDense(len(x), append([]float64{}, x...))
	as = append(as, a)

	keep := 1 - dropout

	for li, l := range n.layers {
		z := mat.NewVecDense(l.b.Len(), nil)
		z.MulVec(l.w, a)
		z.AddVec(z, l.b)
		zs = append(zs, z)

		out := mat.NewVecDense(z.Len(), nil)
		for i := 0; i < z.Len(); i++ {
			out.SetVec(i, l.act.apply(z.AtVec(i)))
		}

		if li == 0 && dropout > 0 {
			mask = make([]float64, out.Len())
			for i := range mask {
				if n.rnd.Float64() >= dropout {
					mask[i] = 1 / keep
				}
				out.SetVec(i, out.AtVec(i)*mask[i])
			}
		}

		as = append(as, out)
		a = out
	}
	return zs, as, mask
}

// TrainBatch runs forward and backward passes over the mini batch and
// applies one averaged gradient step. It returns the mean loss of the
// batch predictions before the update.
func (n *Network) TrainBatch(xx [][]float64, yy []float64, rate float64, dropout float64) float64 {
	if len(xx) == 0 {
		return 0
	}

	gradW := make([]*mat.Dense, len(n.layers))
	gradB := make([]*mat.VecDense, len(n.layers))
	for i, l := range n.layers {
		r, c := l.w.Dims()
		gradW[i] = mat.NewDense(r, c, nil)
		gradB[i] = mat.NewVecDense(l.b.Len(), nil)
	}

	predicted := make([]float64, len(xx))

	for s, x := range xx {
		zs, as, mask := n.forward(x, dropout)
		predicted[s] = as[len(as)-1].AtVec(0)

		// output delta: for sigmoid+BCE and linear+MSE the gradient
		// with respect to the pre-activation is (a - y)
		delta := mat.NewVecDense(1, []float64{predicted[s] - yy[s]})

		for li := len(n.layers) - 1; li >= 0; li-- {
			l := n.layers[li]

			// accumulate gradients: dW = delta * a_prev^T
			prev := as[li]
			var outer mat.Dense
			outer.Outer(1, delta, prev)
			gradW[li].Add(gradW[li], &outer)
			gradB[li].AddVec(gradB[li], delta)

			if li == 0 {
				break
			}

			// propagate delta to the previous layer
			back := mat.NewVecDense(prev.Len(), nil)
			back.MulVec(l.w.T(), delta)
			prevLayer := n.layers[li-1]
			for i := 0; i < back.Len(); i++ {
				d := back.AtVec(i) * prevLayer.act.deriv(zs[li-1].AtVec(i))
				if li-1 == 0 && mask != nil {
					d *= mask[i]
				}
				back.SetVec(i, d)
			}
			delta = back
		}
	}

	// averaged gradient step
	step := rate / float64(len(xx))
	for i, l := range n.layers {
		gradW[i].Scale(step, gradW[i])
		l.w.Sub(l.w, gradW[i])
		gradB[i].ScaleVec(step, gradB[i])
		l.b.SubVec(l.b, gradB[i])
	}

	return n.mode.Loss(predicted, yy)
}
