package config

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
)

// ModelConfig locates the persisted predictor state
type ModelConfig struct {
	Dir      string `yaml:"dir"`
	FileName string `yaml:"file_name"`
}

// StatePath returns the full path of the predictor state file
func (m ModelConfig) StatePath() string {
	return filepath.Join(m.Dir, m.FileName)
}

// TrainingConfig holds the hyperparameters of the offline training run
type TrainingConfig struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	HiddenSizes  []int   `yaml:"hidden_sizes"`
	Seed         uint64  `yaml:"seed"`
}

func defaultModelConfig() ModelConfig {
	return ModelConfig{
		Dir:      "model",
		FileName: "risk_model.json",
	}
}

func defaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Epochs:       150,
		LearningRate: 0.001,
		HiddenSizes:  []int{32, 16},
		Seed:         42,
	}
}

func applyModelEnv(m *ModelConfig, t *TrainingConfig) {
	m.Dir = getEnv("MODEL_DIR", m.Dir)
	m.FileName = getEnv("MODEL_FILE", m.FileName)

	t.Epochs = getEnvInt("TRAIN_EPOCHS", t.Epochs)
	t.LearningRate = getEnvFloat("TRAIN_LEARNING_RATE", t.LearningRate)
	t.Seed = getEnvUint("TRAIN_SEED", t.Seed)
	if v := getEnv("TRAIN_HIDDEN_SIZES", ""); v != "" {
		if sizes, err := parseSizes(v); err == nil {
			t.HiddenSizes = sizes
		}
	}
}

// parseSizes reads a comma separated list such as "32,16"
func parseSizes(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (t TrainingConfig) validate() error {
	if t.Epochs <= 0 {
		return errors.New("training epochs must be positive")
	}
	if t.LearningRate <= 0 {
		return errors.New("training learning rate must be positive")
	}
	if len(t.HiddenSizes) == 0 {
		return errors.New("training needs at least one hidden layer")
	}
	for _, n := range t.HiddenSizes {
		if n <= 0 {
			return errors.New("hidden layer sizes must be positive")
		}
	}
	return nil
}
