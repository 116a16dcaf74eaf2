// Package metrics holds the Prometheus collectors for prediction and
// training.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for prediction and training counters
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"

	// OutcomeInsufficient marks training runs without enough usable records
	OutcomeInsufficient = "insufficient_data"
)

var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcompass_predictions_total",
		Help: "Risk predictions by outcome",
	}, []string{"outcome"})

	PredictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskcompass_prediction_duration_seconds",
		Help:    "Time spent encoding, predicting and building a risk profile",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	RiskLevelTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcompass_risk_level_total",
		Help: "Produced profiles by risk level",
	}, []string{"level"})

	TrainingRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskcompass_training_runs_total",
		Help: "Training runs by outcome",
	}, []string{"outcome"})

	TrainingSkippedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "riskcompass_training_skipped_records_total",
		Help: "Historical records skipped for lacking valid answers",
	})
)
