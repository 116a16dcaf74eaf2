package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskcompass/internal/model"
	"riskcompass/internal/predictor"
	"riskcompass/internal/risk"
)

type assessmentFixture struct {
	scorer *fakeScorer
	repo   *fakeQuestionnaireRepo
	cache  *fakeBenchmarkCache
	svc    *AssessmentService
}

func newAssessmentFixture() *assessmentFixture {
	f := &assessmentFixture{
		scorer: &fakeScorer{scores: [risk.NumCategories]float64{0.9, 0.1, 0.5, 0.3}},
		repo:   &fakeQuestionnaireRepo{},
		cache:  newFakeBenchmarkCache(),
	}
	riskSvc := NewRiskService(risk.DefaultSchema(), f.scorer, risk.DefaultSuggestions())
	f.svc = NewAssessmentService(riskSvc, f.repo, f.cache, discardLogger())
	return f
}

func sampleAnswers() *risk.Answers {
	a := risk.NewAnswers(
		risk.Answer{Key: risk.IndustryKey, Value: "fintech"},
		risk.Answer{Key: "marketNeed", Value: "high"},
	)
	return &a
}

func TestPredictMissingAnswers(t *testing.T) {
	f := newAssessmentFixture()

	_, err := f.svc.Predict(context.Background(), "u1", nil)
	require.ErrorIs(t, err, ErrMissingAnswers)
	assert.Zero(t, f.scorer.calls)
	assert.Empty(t, f.repo.saved)
}

func TestPredictUnavailableStoresNothing(t *testing.T) {
	f := newAssessmentFixture()
	f.scorer.err = predictor.ErrUnavailable

	_, err := f.svc.Predict(context.Background(), "u1", sampleAnswers())
	require.ErrorIs(t, err, predictor.ErrUnavailable)
	assert.Empty(t, f.repo.saved)
}

func TestPredictFirstAssessment(t *testing.T) {
	f := newAssessmentFixture()

	resp, err := f.svc.Predict(context.Background(), "u1", sampleAnswers())
	require.NoError(t, err)

	assert.InDelta(t, 0.45, resp.Current.OverallScore, 1e-9)
	assert.Equal(t, risk.LevelMedium, resp.Current.RiskLevel)
	assert.Contains(t, resp.Comparison.Message, "first assessment")
	assert.Nil(t, resp.Comparison.PreviousScore)
	assert.Nil(t, resp.Benchmark)

	require.Len(t, f.repo.saved, 1)
	saved := f.repo.saved[0]
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, []string{risk.IndustryKey, "marketNeed"}, saved.Answers.Keys())
	assert.Same(t, resp.Current, saved.RiskProfile)
	assert.Equal(t, []string{"fintech"}, f.cache.invalidated)
}

func TestPredictComparesWithPreviousAssessment(t *testing.T) {
	f := newAssessmentFixture()
	ctx := context.Background()

	_, err := f.svc.Predict(ctx, "u1", sampleAnswers())
	require.NoError(t, err)

	f.scorer.scores = [risk.NumCategories]float64{0.5, 0.1, 0.3, 0.3}
	resp, err := f.svc.Predict(ctx, "u1", sampleAnswers())
	require.NoError(t, err)

	require.NotNil(t, resp.Comparison.PreviousScore)
	assert.InDelta(t, 0.45, *resp.Comparison.PreviousScore, 1e-9)
	assert.InDelta(t, -0.15, *resp.Comparison.Difference, 1e-9)
	assert.Contains(t, resp.Comparison.Message, "decreased by approximately 15%")

	history, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Same(t, resp.Current, history[0].RiskProfile)
}

func TestPredictHistoryLookupFailure(t *testing.T) {
	f := newAssessmentFixture()
	boom := errors.New("mongo down")
	f.repo.latestErr = boom

	_, err := f.svc.Predict(context.Background(), "u1", sampleAnswers())
	require.ErrorIs(t, err, boom)
	assert.Empty(t, f.repo.saved)
}

func TestPredictBenchmarkFailureIsNotFatal(t *testing.T) {
	f := newAssessmentFixture()
	f.repo.benchErr = errors.New("aggregate failed")

	resp, err := f.svc.Predict(context.Background(), "u1", sampleAnswers())
	require.NoError(t, err)
	assert.Nil(t, resp.Benchmark)
	assert.Len(t, f.repo.saved, 1)
}

func TestBenchmarkUsesCache(t *testing.T) {
	f := newAssessmentFixture()
	f.repo.benchmark = &model.Benchmark{Industry: "fintech", Count: 3, AvgOverall: 0.4}
	ctx := context.Background()

	b, err := f.svc.Benchmark(ctx, "fintech")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Count)

	b, err = f.svc.Benchmark(ctx, "fintech")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Count)
	assert.Equal(t, 1, f.repo.benchHits)
}

func TestBenchmarkCacheErrorFallsBackToRepo(t *testing.T) {
	f := newAssessmentFixture()
	f.cache.getErr = errors.New("redis down")
	f.repo.benchmark = &model.Benchmark{Industry: "saas", Count: 1}

	b, err := f.svc.Benchmark(context.Background(), "saas")
	require.NoError(t, err)
	assert.Equal(t, "saas", b.Industry)
}

func TestBenchmarkWithoutIndustry(t *testing.T) {
	f := newAssessmentFixture()

	b, err := f.svc.Benchmark(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, b)
	assert.Zero(t, f.repo.benchHits)
}

func TestCompare(t *testing.T) {
	current := &risk.Profile{OverallScore: 0.5}
	prev := func(score float64) *model.Questionnaire {
		return &model.Questionnaire{RiskProfile: &risk.Profile{OverallScore: score}}
	}

	tests := []struct {
		name     string
		previous *model.Questionnaire
		contains string
	}{
		{"first", nil, "first assessment"},
		{"no stored profile", &model.Questionnaire{}, "first assessment"},
		{"decreased", prev(0.7), "decreased by approximately 20%"},
		{"increased", prev(0.38), "increased by approximately 12%"},
		{"stable", prev(0.503), "remained stable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Compare(tt.previous, current).Message, tt.contains)
		})
	}
}
