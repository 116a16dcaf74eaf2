package predictor

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"riskcompass/internal/risk"
)

// ErrUnavailable is returned for every prediction while no model is loaded
var ErrUnavailable = errors.New("risk model is not available")

// Model is a loaded, validated predictor state
type Model struct {
	state *State
}

// NewModel validates state against schema
func NewModel(state *State, schema *risk.Schema) (*Model, error) {
	if err := state.Validate(schema); err != nil {
		return nil, err
	}
	return &Model{state: state}, nil
}

// Predict scales the vector with the training scaler and runs the network.
// Outputs are not clamped.
func (m *Model) Predict(vec risk.FeatureVector) ([risk.NumCategories]float64, error) {
	var out [risk.NumCategories]float64
	if len(vec) != m.state.Scaler.Width() {
		return out, fmt.Errorf("feature vector has %d values, want %d", len(vec), m.state.Scaler.Width())
	}
	copy(out[:], m.state.Network.Forward(m.state.Scaler.Transform(vec)))
	return out, nil
}

// Status describes the loaded model
type Status struct {
	Available     bool       `json:"available"`
	FormatVersion int        `json:"formatVersion,omitempty"`
	RunID         string     `json:"runId,omitempty"`
	TrainedAt     *time.Time `json:"trainedAt,omitempty"`
	Samples       int        `json:"samples,omitempty"`
	Epochs        int        `json:"epochs,omitempty"`
	FinalLoss     float64    `json:"finalLoss,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// Predictor serves predictions from the model loaded at startup. It is
// either fully loaded or unavailable, never partially initialized.
type Predictor struct {
	schema  *risk.Schema
	model   atomic.Pointer[Model]
	loadErr atomic.Pointer[string]
}

func New(schema *risk.Schema) *Predictor {
	return &Predictor{schema: schema}
}

// LoadFile loads the state at path. On failure the predictor is left
// unavailable and the error is remembered for Status.
func (p *Predictor) LoadFile(path string) error {
	state, err := LoadState(path, p.schema)
	if err == nil {
		var m *Model
		if m, err = NewModel(state, p.schema); err == nil {
			p.model.Store(m)
			p.loadErr.Store(nil)
			return nil
		}
	}

	msg := err.Error()
	p.model.Store(nil)
	p.loadErr.Store(&msg)
	return err
}

// Use installs an already validated model
func (p *Predictor) Use(m *Model) {
	p.model.Store(m)
	p.loadErr.Store(nil)
}

func (p *Predictor) Available() bool {
	return p.model.Load() != nil
}

func (p *Predictor) Predict(vec risk.FeatureVector) ([risk.NumCategories]float64, error) {
	m := p.model.Load()
	if m == nil {
		return [risk.NumCategories]float64{}, ErrUnavailable
	}
	return m.Predict(vec)
}

func (p *Predictor) Status() Status {
	m := p.model.Load()
	if m == nil {
		st := Status{}
		if msg := p.loadErr.Load(); msg != nil {
			st.Error = *msg
		}
		return st
	}
	s := m.state
	return Status{
		Available:     true,
		FormatVersion: s.FormatVersion,
		RunID:         s.RunID,
		TrainedAt:     &s.TrainedAt,
		Samples:       s.Samples,
		Epochs:        s.Epochs,
		FinalLoss:     s.FinalLoss,
	}
}
