package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"riskcompass/internal/config"
	"riskcompass/internal/risk"
	"riskcompass/internal/transport/rest/handler"
	"riskcompass/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	Config            config.ServerConfig
	Schema            *risk.Schema
	AuthService       handler.Authenticator
	Tokens            middleware.TokenValidator
	AssessmentService handler.Assessor
	Model             handler.StatusReporter
	Logger            *slog.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.Logger)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, c.Logger)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.Schema, c.Model)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.Tokens)
	predictLimit := middleware.NewRateLimiter(c.Config.PredictRPS, c.Config.PredictBurst)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questionnaire", questionnaireHandler.Catalog).Methods("GET", "OPTIONS")
	v1.HandleFunc("/model/status", questionnaireHandler.ModelStatus).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Founder routes (require user auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.Handle("/assessments/predict", predictLimit.Limit(http.HandlerFunc(assessmentHandler.Predict))).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/assessments", assessmentHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/benchmarks/{industry}", assessmentHandler.Benchmark).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg config.ServerConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
