package service

import (
	"errors"
	"time"

	"riskcompass/internal/metrics"
	"riskcompass/internal/predictor"
	"riskcompass/internal/risk"
)

// Scorer produces one score per risk category from an encoded questionnaire
type Scorer interface {
	Predict(vec risk.FeatureVector) ([risk.NumCategories]float64, error)
}

// RiskService runs the encode -> predict -> report pipeline for one
// answer set
type RiskService struct {
	encoder *risk.Encoder
	scorer  Scorer
	builder *risk.ReportBuilder
}

// NewRiskService wires the pipeline around a single schema instance
func NewRiskService(schema *risk.Schema, scorer Scorer, suggestions risk.SuggestionTable) *RiskService {
	return &RiskService{
		encoder: risk.NewEncoder(schema),
		scorer:  scorer,
		builder: risk.NewReportBuilder(schema, risk.NewSuggestionEngine(suggestions)),
	}
}

// Assess scores answers. It fails with predictor.ErrUnavailable when no
// model is loaded; there is no fallback score.
func (s *RiskService) Assess(answers risk.Answers) (*risk.Profile, error) {
	start := time.Now()

	scores, err := s.scorer.Predict(s.encoder.Encode(answers))
	if err != nil {
		if errors.Is(err, predictor.ErrUnavailable) {
			metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeUnavailable).Inc()
		} else {
			metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		}
		return nil, err
	}

	profile := s.builder.Build(answers, scores)

	metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.RiskLevelTotal.WithLabelValues(string(profile.RiskLevel)).Inc()
	return profile, nil
}
