package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsontype"

	"riskcompass/internal/metrics"
	"riskcompass/internal/model"
	"riskcompass/internal/predictor"
	"riskcompass/internal/risk"
)

// TrainingSource supplies historical questionnaires
type TrainingSource interface {
	ListForTraining(ctx context.Context) ([]model.TrainingRecord, error)
}

// Dataset is a prepared training set: one feature row and one label row
// per usable record
type Dataset struct {
	Features []risk.FeatureVector
	Labels   []risk.CategoryScores
	Skipped  int
}

func (d *Dataset) Len() int {
	return len(d.Features)
}

// TrainingResult summarizes a completed training run
type TrainingResult struct {
	RunID     string        `json:"runId"`
	Path      string        `json:"path"`
	Samples   int           `json:"samples"`
	Skipped   int           `json:"skipped"`
	Epochs    int           `json:"epochs"`
	FinalLoss float64       `json:"finalLoss"`
	Duration  time.Duration `json:"duration"`
}

// TrainingService builds labelled datasets from stored questionnaires and
// trains a new predictor state from them
type TrainingService struct {
	schema    *risk.Schema
	encoder   *risk.Encoder
	estimator *risk.Estimator
	source    TrainingSource
	statePath string
	cfg       predictor.TrainConfig
	logger    *slog.Logger
}

// NewTrainingService creates a new training service
func NewTrainingService(
	schema *risk.Schema,
	source TrainingSource,
	statePath string,
	cfg predictor.TrainConfig,
	logger *slog.Logger,
) *TrainingService {
	return &TrainingService{
		schema:    schema,
		encoder:   risk.NewEncoder(schema),
		estimator: risk.NewEstimator(schema),
		source:    source,
		statePath: statePath,
		cfg:       cfg,
		logger:    logger,
	}
}

// BuildDataset encodes every record and labels it with the estimator.
// Records without an answers document are skipped.
func (s *TrainingService) BuildDataset(records []model.TrainingRecord) *Dataset {
	ds := &Dataset{
		Features: make([]risk.FeatureVector, 0, len(records)),
		Labels:   make([]risk.CategoryScores, 0, len(records)),
	}

	for _, rec := range records {
		answers, err := decodeTrainingAnswers(rec)
		if err != nil {
			ds.Skipped++
			metrics.TrainingSkippedRecords.Inc()
			s.logger.Warn("skipping training record", "id", rec.ID, "error", err)
			continue
		}
		ds.Features = append(ds.Features, s.encoder.Encode(answers))
		ds.Labels = append(ds.Labels, s.estimator.Estimate(answers))
	}
	return ds
}

func decodeTrainingAnswers(rec model.TrainingRecord) (risk.Answers, error) {
	var answers risk.Answers
	if rec.Answers.Type != bsontype.EmbeddedDocument {
		return answers, fmt.Errorf("answers field has bson type %s", rec.Answers.Type)
	}
	if err := answers.UnmarshalBSON(rec.Answers.Value); err != nil {
		return answers, err
	}
	return answers, nil
}

// Run loads history, trains and atomically replaces the state file. A run
// that fails at any step leaves the previous state untouched.
func (s *TrainingService) Run(ctx context.Context) (*TrainingResult, error) {
	start := time.Now()

	result, err := s.run(ctx, start)
	switch {
	case err == nil:
		metrics.TrainingRunsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	case errors.Is(err, predictor.ErrInsufficientData):
		metrics.TrainingRunsTotal.WithLabelValues(metrics.OutcomeInsufficient).Inc()
	default:
		metrics.TrainingRunsTotal.WithLabelValues(metrics.OutcomeError).Inc()
	}
	return result, err
}

func (s *TrainingService) run(ctx context.Context, start time.Time) (*TrainingResult, error) {
	records, err := s.source.ListForTraining(ctx)
	if err != nil {
		return nil, fmt.Errorf("load training history: %w", err)
	}

	ds := s.BuildDataset(records)
	s.logger.Info("training dataset built", "records", len(records), "usable", ds.Len(), "skipped", ds.Skipped)

	if ds.Len() < predictor.MinTrainingSamples {
		return nil, fmt.Errorf("%w: have %d, need %d", predictor.ErrInsufficientData, ds.Len(), predictor.MinTrainingSamples)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	state, err := predictor.Fit(s.schema, ds.Features, ds.Labels, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	if err := predictor.SaveState(s.statePath, state); err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}

	res := &TrainingResult{
		RunID:     state.RunID,
		Path:      s.statePath,
		Samples:   state.Samples,
		Skipped:   ds.Skipped,
		Epochs:    state.Epochs,
		FinalLoss: state.FinalLoss,
		Duration:  time.Since(start),
	}
	s.logger.Info("model trained",
		"run_id", res.RunID,
		"samples", res.Samples,
		"epochs", res.Epochs,
		"final_loss", res.FinalLoss,
		"path", res.Path,
	)
	return res, nil
}
