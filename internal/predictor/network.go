package predictor

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Activation names a layer nonlinearity
type Activation string

const (
	ActivationReLU    Activation = "relu"
	ActivationSigmoid Activation = "sigmoid"
)

func (a Activation) apply(z float64) float64 {
	switch a {
	case ActivationReLU:
		if z > 0 {
			return z
		}
		return 0
	case ActivationSigmoid:
		return 1 / (1 + math.Exp(-z))
	}
	return z
}

// derivative in terms of the activated output
func (a Activation) derivative(out float64) float64 {
	switch a {
	case ActivationReLU:
		if out > 0 {
			return 1
		}
		return 0
	case ActivationSigmoid:
		return out * (1 - out)
	}
	return 1
}

// Layer is a dense layer; Weights is indexed [output][input]
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Biases     []float64   `json:"biases"`
	Activation Activation  `json:"activation"`
}

func (l *Layer) inputs() int  { return len(l.Weights[0]) }
func (l *Layer) outputs() int { return len(l.Weights) }

// Network is a small fully connected feed-forward regressor
type Network struct {
	Layers []Layer `json:"layers"`
}

// NewNetwork builds a network with Glorot-uniform weights and zero biases.
// sizes includes the input width, so sizes[i] -> sizes[i+1] is layer i.
func NewNetwork(sizes []int, activations []Activation, rng *rand.Rand) (*Network, error) {
	if len(sizes) < 2 || len(activations) != len(sizes)-1 {
		return nil, fmt.Errorf("network needs n sizes and n-1 activations, got %d and %d", len(sizes), len(activations))
	}

	n := &Network{Layers: make([]Layer, len(activations))}
	for i, act := range activations {
		in, out := sizes[i], sizes[i+1]
		if in <= 0 || out <= 0 {
			return nil, fmt.Errorf("layer %d has non-positive size %dx%d", i, in, out)
		}
		limit := math.Sqrt(6 / float64(in+out))

		w := make([][]float64, out)
		for o := range w {
			w[o] = make([]float64, in)
			for k := range w[o] {
				w[o][k] = (rng.Float64()*2 - 1) * limit
			}
		}
		n.Layers[i] = Layer{Weights: w, Biases: make([]float64, out), Activation: act}
	}
	return n, nil
}

func (n *Network) InputWidth() int {
	return n.Layers[0].inputs()
}

func (n *Network) OutputWidth() int {
	return n.Layers[len(n.Layers)-1].outputs()
}

// Forward runs x through the network
func (n *Network) Forward(x []float64) []float64 {
	acts := n.trace(x)
	return acts[len(acts)-1]
}

// trace returns the input followed by every layer's activated output
func (n *Network) trace(x []float64) [][]float64 {
	acts := make([][]float64, 0, len(n.Layers)+1)
	acts = append(acts, x)
	cur := x
	for i := range n.Layers {
		l := &n.Layers[i]
		next := make([]float64, l.outputs())
		for o, row := range l.Weights {
			z := l.Biases[o]
			for k, w := range row {
				z += w * cur[k]
			}
			next[o] = l.Activation.apply(z)
		}
		acts = append(acts, next)
		cur = next
	}
	return acts
}

// validate checks that consecutive layers line up
func (n *Network) validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	for i := range n.Layers {
		l := &n.Layers[i]
		if len(l.Weights) == 0 || len(l.Weights[0]) == 0 {
			return fmt.Errorf("layer %d is empty", i)
		}
		if len(l.Biases) != l.outputs() {
			return fmt.Errorf("layer %d has %d biases for %d outputs", i, len(l.Biases), l.outputs())
		}
		for _, row := range l.Weights {
			if len(row) != l.inputs() {
				return fmt.Errorf("layer %d has ragged weights", i)
			}
		}
		if i > 0 && l.inputs() != n.Layers[i-1].outputs() {
			return fmt.Errorf("layer %d expects %d inputs, previous layer gives %d", i, l.inputs(), n.Layers[i-1].outputs())
		}
		switch l.Activation {
		case ActivationReLU, ActivationSigmoid:
		default:
			return fmt.Errorf("layer %d has unknown activation %q", i, l.Activation)
		}
	}
	return nil
}
