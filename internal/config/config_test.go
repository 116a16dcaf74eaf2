package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "riskcompass", cfg.Mongo.Database)
	assert.Equal(t, 150, cfg.Training.Epochs)
	assert.Equal(t, []int{32, 16}, cfg.Training.HiddenSizes)
	assert.Equal(t, filepath.Join("model", "risk_model.json"), cfg.Model.StatePath())
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
  predict_rps: 2
mongo:
  database: fromfile
redis:
  benchmark_ttl: 90s
training:
  epochs: 10
  hidden_sizes: [8]
logging:
  format: json
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MONGO_DATABASE", "fromenv")
	t.Setenv("REDIS_URI", "redis://cache:6379")
	t.Setenv("TRAIN_HIDDEN_SIZES", "12, 6")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2.0, cfg.Server.PredictRPS)
	assert.Equal(t, "fromenv", cfg.Mongo.Database)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 90*time.Second, cfg.Redis.BenchmarkTTL)
	assert.Equal(t, 10, cfg.Training.Epochs)
	assert.Equal(t, []int{12, 6}, cfg.Training.HiddenSizes)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TRAIN_EPOCHS", "0")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epochs")
	assert.Contains(t, err.Error(), "log format")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "INFO", parseLevel("").String())
}
