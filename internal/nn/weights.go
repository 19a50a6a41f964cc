package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Weights is the serialisable description of a trained network:
// topology, per-layer activations and the flat row-major weight matrices.
type Weights struct {
	Topology    []int        `json:"topology"`
	Activations []Activation `json:"activations"`
	W           [][]float64  `json:"weights"`
	B           [][]float64  `json:"biases"`
	Mode        Mode         `json:"mode"`
}

// Weights exports the current network parameters.
func (n *Network) Weights() Weights {
	w := Weights{
		Topology:    append([]int{}, n.topology...),
		Activations: make([]Activation, len(n.layers)),
		W:           make([][]float64, len(n.layers)),
		B:           make([][]float64, len(n.layers)),
		Mode:        n.mode,
	}
	for i, l := range n.layers {
		w.Activations[i] = l.act
		raw := l.w.RawMatrix()
		w.W[i] = append([]float64{}, raw.Data...)
		w.B[i] = append([]float64{}, l.b.RawVector().Data...)
	}
	return w
}

// FromWeights reconstructs a frozen network from persisted weights.
func FromWeights(w Weights) (*Network, error) {
	if len(w.Topology) < 2 {
		return nil, fmt.Errorf("invalid topology %v", w.Topology)
	}
	if len(w.W) != len(w.Topology)-1 || len(w.B) != len(w.W) || len(w.Activations) != len(w.W) {
		return nil, fmt.Errorf("inconsistent weight layout: %d layers for topology %v", len(w.W), w.Topology)
	}

	n := &Network{
		topology: append([]int{}, w.Topology...),
		layers:   make([]*layer, len(w.W)),
		mode:     w.Mode,
	}
	for i := range w.W {
		in, out := w.Topology[i], w.Topology[i+1]
		if len(w.W[i]) != in*out {
			return nil, fmt.Errorf("layer %d: %d weights for %dx%d", i, len(w.W[i]), out, in)
		}
		if len(w.B[i]) != out {
			return nil, fmt.Errorf("layer %d: %d biases for %d neurons", i, len(w.B[i]), out)
		}
		n.layers[i] = &layer{
			w:   mat.NewDense(out, in, append([]float64{}, w.W[i]...)),
			b:   mat.NewVecDense(out, append([]float64{}, w.B[i]...)),
			act: w.Activations[i],
		}
	}
	return n, nil
}
