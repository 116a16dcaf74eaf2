package model

import "riskcompass/internal/risk"

// PredictRequest is the body of POST /v1/assessments/predict. A nil Answers
// means the field was missing.
type PredictRequest struct {
	Answers *risk.Answers `json:"answers"`
}

// Comparison describes the change against the previous assessment
type Comparison struct {
	Message       string   `json:"message"`
	PreviousScore *float64 `json:"previousScore,omitempty"`
	Difference    *float64 `json:"difference,omitempty"`
}

// PredictResponse is returned after a successful assessment
type PredictResponse struct {
	Current    *risk.Profile `json:"current"`
	Comparison Comparison    `json:"comparison"`
	Benchmark  *Benchmark    `json:"benchmark"`
}
