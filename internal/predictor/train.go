package predictor

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"riskcompass/internal/risk"
)

// MinTrainingSamples is the smallest usable training set
const MinTrainingSamples = 2

var ErrInsufficientData = errors.New("not enough training samples")

// TrainConfig controls a training run
type TrainConfig struct {
	Epochs       int
	LearningRate float64
	HiddenSizes  []int
	Seed         uint64

	// Progress, when set, is called after every epoch with the mean loss
	Progress func(epoch int, loss float64)
}

// DefaultTrainConfig mirrors the production model: 32 and 16 hidden units,
// Adam at 0.001, 150 epochs.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:       150,
		LearningRate: 0.001,
		HiddenSizes:  []int{32, 16},
		Seed:         42,
	}
}

// adam keeps first and second moment estimates shaped like the network
type adam struct {
	lr, beta1, beta2, eps float64
	step                  int
	mW, vW                [][][]float64
	mB, vB                [][]float64
}

func newAdam(n *Network, lr float64) *adam {
	a := &adam{lr: lr, beta1: 0.9, beta2: 0.999, eps: 1e-7}
	for _, l := range n.Layers {
		a.mW = append(a.mW, zerosLike(l.Weights))
		a.vW = append(a.vW, zerosLike(l.Weights))
		a.mB = append(a.mB, make([]float64, len(l.Biases)))
		a.vB = append(a.vB, make([]float64, len(l.Biases)))
	}
	return a
}

func zerosLike(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
	}
	return out
}

func (a *adam) update(p, g float64, m, v *float64, lr float64) float64 {
	*m = a.beta1*(*m) + (1-a.beta1)*g
	*v = a.beta2*(*v) + (1-a.beta2)*g*g
	return p - lr*(*m)/(math.Sqrt(*v)+a.eps)
}

// trainStep runs one sample through the network, applies an Adam update
// and returns the sample's mean squared error.
func (a *adam) trainStep(n *Network, x, target []float64) float64 {
	acts := n.trace(x)
	out := acts[len(acts)-1]

	loss := 0.0
	delta := make([]float64, len(out))
	last := n.Layers[len(n.Layers)-1].Activation
	for i, y := range out {
		d := y - target[i]
		loss += d * d
		delta[i] = 2 * d / float64(len(out)) * last.derivative(y)
	}
	loss /= float64(len(out))

	a.step++
	t := float64(a.step)
	lr := a.lr * math.Sqrt(1-math.Pow(a.beta2, t)) / (1 - math.Pow(a.beta1, t))

	for li := len(n.Layers) - 1; li >= 0; li-- {
		l := &n.Layers[li]
		in := acts[li]

		var prev []float64
		if li > 0 {
			prev = make([]float64, l.inputs())
			for o, row := range l.Weights {
				for k, w := range row {
					prev[k] += w * delta[o]
				}
			}
			below := n.Layers[li-1].Activation
			for k := range prev {
				prev[k] *= below.derivative(in[k])
			}
		}

		for o, row := range l.Weights {
			for k := range row {
				row[k] = a.update(row[k], delta[o]*in[k], &a.mW[li][o][k], &a.vW[li][o][k], lr)
			}
			l.Biases[o] = a.update(l.Biases[o], delta[o], &a.mB[li][o], &a.vB[li][o], lr)
		}
		delta = prev
	}
	return loss
}

// Fit standardizes the features, trains a network on the labels and
// returns the complete state. Nothing is written; persisting the result is
// the caller's decision.
func Fit(schema *risk.Schema, features []risk.FeatureVector, labels []risk.CategoryScores, cfg TrainConfig) (*State, error) {
	if len(features) != len(labels) {
		return nil, fmt.Errorf("got %d feature rows and %d label rows", len(features), len(labels))
	}
	if len(features) < MinTrainingSamples {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(features), MinTrainingSamples)
	}
	if cfg.Epochs <= 0 || cfg.LearningRate <= 0 {
		return nil, fmt.Errorf("epochs and learning rate must be positive")
	}

	rows := make([][]float64, len(features))
	for i, f := range features {
		if len(f) != risk.NumFeatures {
			return nil, fmt.Errorf("feature row %d has %d values, want %d", i, len(f), risk.NumFeatures)
		}
		rows[i] = []float64(f)
	}
	scaler := FitScaler(rows)

	scaled := make([][]float64, len(rows))
	for i, r := range rows {
		scaled[i] = scaler.Transform(r)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	sizes := append([]int{risk.NumFeatures}, cfg.HiddenSizes...)
	sizes = append(sizes, risk.NumCategories)
	acts := make([]Activation, 0, len(sizes)-1)
	for range cfg.HiddenSizes {
		acts = append(acts, ActivationReLU)
	}
	acts = append(acts, ActivationSigmoid)

	net, err := NewNetwork(sizes, acts, rng)
	if err != nil {
		return nil, err
	}
	opt := newAdam(net, cfg.LearningRate)

	order := make([]int, len(scaled))
	for i := range order {
		order[i] = i
	}

	var epochLoss float64
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		epochLoss = 0
		for _, idx := range order {
			epochLoss += opt.trainStep(net, scaled[idx], labels[idx][:])
		}
		epochLoss /= float64(len(order))

		if math.IsNaN(epochLoss) || math.IsInf(epochLoss, 0) {
			return nil, fmt.Errorf("training diverged at epoch %d", epoch)
		}
		if cfg.Progress != nil {
			cfg.Progress(epoch, epochLoss)
		}
	}

	return &State{
		FormatVersion:     StateFormatVersion,
		SchemaFingerprint: schema.Fingerprint(),
		RunID:             uuid.NewString(),
		TrainedAt:         time.Now().UTC(),
		Samples:           len(features),
		Epochs:            cfg.Epochs,
		FinalLoss:         epochLoss,
		Scaler:            scaler,
		Network:           *net,
	}, nil
}
