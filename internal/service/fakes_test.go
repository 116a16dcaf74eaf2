package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"riskcompass/internal/model"
	"riskcompass/internal/repository"
	"riskcompass/internal/risk"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type fakeScorer struct {
	scores [risk.NumCategories]float64
	err    error
	calls  int
}

func (f *fakeScorer) Predict(vec risk.FeatureVector) ([risk.NumCategories]float64, error) {
	f.calls++
	if f.err != nil {
		return [risk.NumCategories]float64{}, f.err
	}
	return f.scores, nil
}

type fakeQuestionnaireRepo struct {
	mu        sync.Mutex
	saved     []*model.Questionnaire
	latestErr error
	createErr error
	benchmark *model.Benchmark
	benchErr  error
	benchHits int
	records   []model.TrainingRecord
	listErr   error
}

var _ repository.QuestionnaireRepo = (*fakeQuestionnaireRepo)(nil)

func (f *fakeQuestionnaireRepo) Create(ctx context.Context, q *model.Questionnaire) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	q.ID = "q" + strconv.Itoa(len(f.saved)+1)
	f.saved = append(f.saved, q)
	return q.ID, nil
}

func (f *fakeQuestionnaireRepo) ListByUser(ctx context.Context, userID string) ([]*model.Questionnaire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Questionnaire
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].UserID == userID {
			out = append(out, f.saved[i])
		}
	}
	return out, nil
}

func (f *fakeQuestionnaireRepo) LatestByUser(ctx context.Context, userID string) (*model.Questionnaire, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	list, _ := f.ListByUser(ctx, userID)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (f *fakeQuestionnaireRepo) ListForTraining(ctx context.Context) ([]model.TrainingRecord, error) {
	return f.records, f.listErr
}

func (f *fakeQuestionnaireRepo) BenchmarkByIndustry(ctx context.Context, industry string) (*model.Benchmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.benchHits++
	return f.benchmark, f.benchErr
}

func (f *fakeQuestionnaireRepo) EnsureIndexes(ctx context.Context) error {
	return nil
}

type fakeBenchmarkCache struct {
	mu          sync.Mutex
	entries     map[string]*model.Benchmark
	getErr      error
	invalidated []string
}

func newFakeBenchmarkCache() *fakeBenchmarkCache {
	return &fakeBenchmarkCache{entries: make(map[string]*model.Benchmark)}
}

func (f *fakeBenchmarkCache) Get(ctx context.Context, industry string) (*model.Benchmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[industry], nil
}

func (f *fakeBenchmarkCache) Set(ctx context.Context, b *model.Benchmark) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[b.Industry] = b
	return nil
}

func (f *fakeBenchmarkCache) Invalidate(ctx context.Context, industry string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, industry)
	f.invalidated = append(f.invalidated, industry)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

var _ repository.UserRepo = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return "", repository.ErrDuplicateEmail
		}
	}
	user.ID = "u" + strconv.Itoa(len(f.users)+1)
	f.users[user.ID] = user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if f.users[id].Email == email {
			return f.users[id], nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) EnsureIndexes(ctx context.Context) error {
	return nil
}
