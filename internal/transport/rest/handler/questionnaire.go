package handler

import (
	"net/http"

	"riskcompass/internal/predictor"
	"riskcompass/internal/risk"
)

// StatusReporter describes the loaded model
type StatusReporter interface {
	Status() predictor.Status
}

// QuestionnaireHandler serves the question catalog and model status
type QuestionnaireHandler struct {
	catalog []risk.CatalogSection
	model   StatusReporter
}

// NewQuestionnaireHandler creates a new questionnaire handler
func NewQuestionnaireHandler(schema *risk.Schema, model StatusReporter) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		catalog: schema.Catalog(),
		model:   model,
	}
}

// Catalog handles GET /v1/questionnaire
func (h *QuestionnaireHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"sections": h.catalog})
}

// ModelStatus handles GET /v1/model/status
func (h *QuestionnaireHandler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.model.Status())
}
