package predictor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"riskcompass/internal/risk"
)

// StateFormatVersion is bumped whenever the persisted layout or the meaning
// of its fields changes
const StateFormatVersion = 1

var (
	ErrStateNotFound  = errors.New("predictor state not found")
	ErrStateVersion   = errors.New("predictor state format version mismatch")
	ErrSchemaMismatch = errors.New("predictor state was trained with a different schema")
	ErrStateCorrupt   = errors.New("predictor state is corrupt")
)

// State is everything needed to reproduce predictions: the fitted scaler,
// the trained network and metadata identifying the run.
type State struct {
	FormatVersion     int       `json:"format_version"`
	SchemaFingerprint string    `json:"schema_fingerprint"`
	RunID             string    `json:"run_id"`
	TrainedAt         time.Time `json:"trained_at"`
	Samples           int       `json:"samples"`
	Epochs            int       `json:"epochs"`
	FinalLoss         float64   `json:"final_loss"`
	Scaler            Scaler    `json:"scaler"`
	Network           Network   `json:"network"`
}

// Validate checks the state against the schema the caller will encode with
func (s *State) Validate(schema *risk.Schema) error {
	if s.FormatVersion != StateFormatVersion {
		return fmt.Errorf("%w: file has %d, want %d", ErrStateVersion, s.FormatVersion, StateFormatVersion)
	}
	if s.SchemaFingerprint != schema.Fingerprint() {
		return ErrSchemaMismatch
	}
	if s.Scaler.Width() != risk.NumFeatures || len(s.Scaler.Scale) != risk.NumFeatures {
		return fmt.Errorf("%w: scaler width %d", ErrStateCorrupt, s.Scaler.Width())
	}
	for j, sc := range s.Scaler.Scale {
		if sc == 0 {
			return fmt.Errorf("%w: zero scale at feature %d", ErrStateCorrupt, j)
		}
	}
	if err := s.Network.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}
	if s.Network.InputWidth() != risk.NumFeatures || s.Network.OutputWidth() != risk.NumCategories {
		return fmt.Errorf("%w: network is %dx%d", ErrStateCorrupt, s.Network.InputWidth(), s.Network.OutputWidth())
	}
	return nil
}

// SaveState writes the state to path atomically: the previous file stays in
// place until the new one is fully written.
func SaveState(path string, state *State) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("state path is empty")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode predictor state: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp state file: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// LoadState reads and validates a persisted state
func LoadState(path string, schema *risk.Schema) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("read predictor state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}
	if err := state.Validate(schema); err != nil {
		return nil, err
	}
	return &state, nil
}
