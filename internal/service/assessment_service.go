package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"riskcompass/internal/cache"
	"riskcompass/internal/model"
	"riskcompass/internal/repository"
	"riskcompass/internal/risk"
)

var ErrMissingAnswers = errors.New("no assessment answers provided")

// AssessmentService scores questionnaires and keeps the founder's history
type AssessmentService struct {
	risk           *RiskService
	questionnaires repository.QuestionnaireRepo
	benchmarks     cache.BenchmarkCache
	logger         *slog.Logger
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	riskSvc *RiskService,
	questionnaires repository.QuestionnaireRepo,
	benchmarks cache.BenchmarkCache,
	logger *slog.Logger,
) *AssessmentService {
	return &AssessmentService{
		risk:           riskSvc,
		questionnaires: questionnaires,
		benchmarks:     benchmarks,
		logger:         logger,
	}
}

// Predict scores the answers, compares them with the previous assessment and
// the industry benchmark, then stores the new questionnaire. Nothing is
// stored when scoring fails.
func (s *AssessmentService) Predict(ctx context.Context, userID string, answers *risk.Answers) (*model.PredictResponse, error) {
	if answers == nil {
		return nil, ErrMissingAnswers
	}

	profile, err := s.risk.Assess(*answers)
	if err != nil {
		return nil, err
	}

	industry := answers.GetOr(risk.IndustryKey, "")

	var (
		previous  *model.Questionnaire
		benchmark *model.Benchmark
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		previous, err = s.questionnaires.LatestByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		b, err := s.Benchmark(gctx, industry)
		if err != nil {
			s.logger.Warn("benchmark lookup failed", "industry", industry, "error", err)
			return nil
		}
		benchmark = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	q := &model.Questionnaire{
		UserID:      userID,
		Answers:     *answers,
		RiskProfile: profile,
	}
	if _, err := s.questionnaires.Create(ctx, q); err != nil {
		return nil, err
	}
	s.logger.Info("assessment saved", "user_id", userID, "questionnaire_id", q.ID, "risk_level", profile.RiskLevel)

	if industry != "" {
		if err := s.benchmarks.Invalidate(ctx, industry); err != nil {
			s.logger.Warn("benchmark cache invalidation failed", "industry", industry, "error", err)
		}
	}

	return &model.PredictResponse{
		Current:    profile,
		Comparison: Compare(previous, profile),
		Benchmark:  benchmark,
	}, nil
}

// Benchmark returns averages for an industry, nil when the industry is
// unknown or has no assessments yet
func (s *AssessmentService) Benchmark(ctx context.Context, industry string) (*model.Benchmark, error) {
	if industry == "" {
		return nil, nil
	}

	cached, err := s.benchmarks.Get(ctx, industry)
	if err != nil {
		s.logger.Warn("benchmark cache read failed", "industry", industry, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	b, err := s.questionnaires.BenchmarkByIndustry(ctx, industry)
	if err != nil {
		return nil, err
	}
	if b == nil {
		s.logger.Debug("no benchmark data", "industry", industry)
		return nil, nil
	}

	if err := s.benchmarks.Set(ctx, b); err != nil {
		s.logger.Warn("benchmark cache write failed", "industry", industry, "error", err)
	}
	return b, nil
}

// History lists the founder's questionnaires, newest first
func (s *AssessmentService) History(ctx context.Context, userID string) ([]*model.Questionnaire, error) {
	return s.questionnaires.ListByUser(ctx, userID)
}
