package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"riskcompass/internal/app"
	"riskcompass/internal/config"
	"riskcompass/internal/predictor"
	"riskcompass/internal/risk"
	"riskcompass/internal/service"
	"riskcompass/internal/transport/rest"
)

// @title RiskCompass API
// @version 1.0
// @description Startup risk assessment: questionnaire scoring, history and industry benchmarks
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		config.SetupLogger(config.LoggingConfig{}).Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg.Logging)
	logger.Info("started")

	ctx := context.Background()

	a, err := app.Open(ctx, cfg, app.Options{Redis: true}, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer a.Close(context.Background())

	if err := a.EnsureIndexes(ctx); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	// Load the trained model; without it predictions answer 503
	schema := risk.DefaultSchema()
	model := predictor.New(schema)
	statePath := cfg.Model.StatePath()
	if err := model.LoadFile(statePath); err != nil {
		logger.Warn("risk model not loaded, predictions unavailable", "path", statePath, "error", err)
	} else {
		st := model.Status()
		logger.Info("risk model loaded", "path", statePath, "run_id", st.RunID, "samples", st.Samples)
	}

	// Initialize services
	authSvc := service.NewAuthService(a.Users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	riskSvc := service.NewRiskService(schema, model, risk.DefaultSuggestions())
	assessmentSvc := service.NewAssessmentService(riskSvc, a.Questionnaires, a.Benchmarks, logger)

	// Create router with container
	container := &rest.Container{
		Config:            cfg.Server,
		Schema:            schema,
		AuthService:       authSvc,
		Tokens:            authSvc,
		AssessmentService: assessmentSvc,
		Model:             model,
		Logger:            logger,
	}
	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
