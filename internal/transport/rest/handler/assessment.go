package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"riskcompass/internal/model"
	"riskcompass/internal/predictor"
	"riskcompass/internal/risk"
	"riskcompass/internal/service"
	"riskcompass/internal/transport/rest/middleware"
)

// Assessor scores questionnaires and serves a founder's history
type Assessor interface {
	Predict(ctx context.Context, userID string, answers *risk.Answers) (*model.PredictResponse, error)
	History(ctx context.Context, userID string) ([]*model.Questionnaire, error)
	Benchmark(ctx context.Context, industry string) (*model.Benchmark, error)
}

// AssessmentHandler handles assessment endpoints
type AssessmentHandler struct {
	assessSvc Assessor
	logger    *slog.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessSvc Assessor, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessSvc: assessSvc, logger: logger}
}

// Predict handles POST /v1/assessments/predict
func (h *AssessmentHandler) Predict(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.PredictRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assessSvc.Predict(r.Context(), userID, req.Answers)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, service.ErrMissingAnswers):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, predictor.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("prediction failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// List handles GET /v1/assessments
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	history, err := h.assessSvc.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("list assessments failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if history == nil {
		history = []*model.Questionnaire{}
	}

	writeJSON(w, http.StatusOK, history)
}

// Benchmark handles GET /v1/benchmarks/{industry}
func (h *AssessmentHandler) Benchmark(w http.ResponseWriter, r *http.Request) {
	industry := mux.Vars(r)["industry"]

	b, err := h.assessSvc.Benchmark(r.Context(), industry)
	if err != nil {
		h.logger.Error("benchmark failed", "industry", industry, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "no assessments for industry")
		return
	}

	writeJSON(w, http.StatusOK, b)
}
