package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds service, storage, model and training settings. Values come
// from defaults, then an optional YAML file (CONFIG_FILE), then environment
// variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Model    ModelConfig    `yaml:"model"`
	Training TrainingConfig `yaml:"training"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	AllowedOrigins  string        `yaml:"allowed_origins"`
	AllowedMethods  string        `yaml:"allowed_methods"`
	AllowedHeaders  string        `yaml:"allowed_headers"`
	PredictRPS      float64       `yaml:"predict_rps"`   // 0 disables limiting
	PredictBurst    int           `yaml:"predict_burst"` // bucket size
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type MongoConfig struct {
	URI        string        `yaml:"uri"`
	Database   string        `yaml:"database"`
	Timeout    time.Duration `yaml:"timeout"`
	Collection string        `yaml:"collection"` // questionnaires
}

type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	BenchmarkTTL time.Duration `yaml:"benchmark_ttl"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"-"` // env only
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | text
}

// Load reads .env (if present), the YAML file named by CONFIG_FILE (if set)
// and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			AllowedOrigins:  "*",
			AllowedMethods:  "GET, POST, PUT, DELETE, OPTIONS",
			AllowedHeaders:  "Content-Type, Authorization",
			PredictRPS:      5,
			PredictBurst:    10,
			ShutdownTimeout: 30 * time.Second,
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "riskcompass",
			Timeout:    10 * time.Second,
			Collection: "questionnaires",
		},
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			BenchmarkTTL: 10 * time.Minute,
		},
		Auth: AuthConfig{
			JWTSecret: "super-secret-key-change-in-production",
			TokenTTL:  30 * 24 * time.Hour,
		},
		Model:    defaultModelConfig(),
		Training: defaultTrainingConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", cfg.Server.AllowedOrigins)
	cfg.Server.AllowedMethods = getEnv("CORS_ALLOWED_METHODS", cfg.Server.AllowedMethods)
	cfg.Server.AllowedHeaders = getEnv("CORS_ALLOWED_HEADERS", cfg.Server.AllowedHeaders)
	cfg.Server.PredictRPS = getEnvFloat("PREDICT_RPS", cfg.Server.PredictRPS)
	cfg.Server.PredictBurst = getEnvInt("PREDICT_BURST", cfg.Server.PredictBurst)
	cfg.Server.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Mongo.URI = getEnv("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.Database = getEnv("MONGO_DATABASE", cfg.Mongo.Database)
	cfg.Mongo.Timeout = getEnvDuration("MONGO_TIMEOUT", cfg.Mongo.Timeout)

	// Remove redis:// prefix if present
	cfg.Redis.Addr = strings.TrimPrefix(getEnv("REDIS_URI", cfg.Redis.Addr), "redis://")
	cfg.Redis.BenchmarkTTL = getEnvDuration("BENCHMARK_TTL", cfg.Redis.BenchmarkTTL)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = getEnvDuration("TOKEN_TTL", cfg.Auth.TokenTTL)

	applyModelEnv(&cfg.Model, &cfg.Training)

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
}

// Validate rejects settings the services cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("mongo uri is empty"))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, errors.New("mongo database is empty"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is empty"))
	}
	if c.Server.PredictRPS < 0 || c.Server.PredictBurst < 0 {
		errs = append(errs, errors.New("predict rate limit must not be negative"))
	}
	if err := c.Training.validate(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultVal
}

func getEnvUint(key string, defaultVal uint64) uint64 {
	if v, err := strconv.ParseUint(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}
