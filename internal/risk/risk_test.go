package risk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func lowRiskAnswers() Answers {
	return NewAnswers(
		Answer{"marketNeed", "high"},
		Answer{"competition", "low"},
		Answer{"marketTrends", "yes"},
		Answer{"customerAcquisitionCost", "low"},
		Answer{"capital", "low"},
		Answer{"burnRate", "low"},
		Answer{"revenueModel", "low"},
		Answer{"profitabilityTimeline", "low"},
		Answer{"productQuality", "high"},
		Answer{"devDelays", "no"},
		Answer{"techObsolescence", "low"},
		Answer{"scalability", "yes"},
		Answer{"founderConflicts", "low"},
		Answer{"hiring", "low"},
		Answer{"skillGaps", "low"},
		Answer{"founderExperience", "yes"},
	)
}

func TestDefaultSchemaLayout(t *testing.T) {
	s := DefaultSchema()

	order := s.FeatureOrder()
	require.Len(t, order, NumFeatures)
	assert.Equal(t, []string{"marketNeed", "competition", "marketTrends", "customerAcquisitionCost"}, order[0:4])
	assert.Equal(t, []string{"founderConflicts", "hiring", "skillGaps", "founderExperience"}, order[12:16])

	for i, c := range s.Categories() {
		assert.Equal(t, i, c.OutputIndex)
		for j, q := range c.Questions {
			assert.Equal(t, order[i*QuestionsPerCategory+j], q.Key)
		}
	}
	assert.Equal(t, CategoryTeam, s.Category(3).ID)
	assert.True(t, s.IsFeature("skillGaps"))
	assert.False(t, s.IsFeature(IndustryKey))
}

func TestNewSchemaRejectsBadLayouts(t *testing.T) {
	cats := DefaultCategories()

	_, err := NewSchema(DefaultVocabulary(), cats[:3])
	assert.ErrorIs(t, err, ErrInvalidSchema)

	dup := DefaultCategories()
	dup[1].Questions[0].Key = "marketNeed"
	_, err = NewSchema(DefaultVocabulary(), dup)
	assert.ErrorIs(t, err, ErrInvalidSchema)

	badIndex := DefaultCategories()
	badIndex[2].OutputIndex = 0
	_, err = NewSchema(DefaultVocabulary(), badIndex)
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = NewSchema(map[string]float64{"huge": 1.5}, DefaultCategories())
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestSchemaOrdersCategoriesByOutputIndex(t *testing.T) {
	cats := DefaultCategories()
	cats[0], cats[3] = cats[3], cats[0]

	s, err := NewSchema(DefaultVocabulary(), cats)
	require.NoError(t, err)
	assert.Equal(t, DefaultSchema().FeatureOrder(), s.FeatureOrder())
	assert.Equal(t, DefaultSchema().Fingerprint(), s.Fingerprint())
}

func TestFingerprintTracksVocabulary(t *testing.T) {
	vocab := DefaultVocabulary()
	vocab["high"] = 0.8
	s, err := NewSchema(vocab, DefaultCategories())
	require.NoError(t, err)

	assert.NotEqual(t, DefaultSchema().Fingerprint(), s.Fingerprint())
	assert.Equal(t, DefaultSchema().Fingerprint(), DefaultSchema().Fingerprint())
}

func TestEncode(t *testing.T) {
	enc := NewEncoder(DefaultSchema())

	vec := enc.Encode(lowRiskAnswers())
	want := FeatureVector{0.9, 0.2, 1, 0.2, 0.2, 0.2, 0.2, 0.2, 0.9, 0, 0.2, 1, 0.2, 0.2, 0.2, 1}
	require.Len(t, vec, NumFeatures)
	for i := range want {
		assert.InDelta(t, want[i], vec[i], 1e-9, "position %d", i)
	}
}

func TestEncodeMissingAndUnknown(t *testing.T) {
	enc := NewEncoder(DefaultSchema())

	vec := enc.Encode(NewAnswers(
		Answer{"competition", "HIGH"},
		Answer{"capital", "lots"},
		Answer{"industry", "saas"},
	))
	require.Len(t, vec, NumFeatures)
	for i, v := range vec {
		if i == 1 {
			assert.InDelta(t, 0.9, v, 1e-9)
			continue
		}
		assert.Zero(t, v, "position %d", i)
	}

	empty := enc.Encode(Answers{})
	assert.Len(t, empty, NumFeatures)
	for _, v := range empty {
		assert.Zero(t, v)
	}
}

func TestEstimate(t *testing.T) {
	est := NewEstimator(DefaultSchema())

	got := est.Estimate(lowRiskAnswers())
	assert.InDelta(t, 0.575, got[0], 1e-9)
	assert.InDelta(t, 0.2, got[1], 1e-9)
	assert.InDelta(t, 0.525, got[2], 1e-9)
	assert.InDelta(t, 0.4, got[3], 1e-9)
}

func TestEstimateUsesPerQuestionDefaults(t *testing.T) {
	est := NewEstimator(DefaultSchema())

	got := est.Estimate(Answers{})
	assert.InDelta(t, 0.4, got[0], 1e-9)
	assert.InDelta(t, 0.2, got[1], 1e-9)
	assert.InDelta(t, 0.525, got[2], 1e-9)
	assert.InDelta(t, 0.4, got[3], 1e-9)
}

func TestEstimateUnknownTokensWeighZero(t *testing.T) {
	est := NewEstimator(DefaultSchema())

	got := est.Estimate(NewAnswers(
		Answer{"capital", "unsure"},
		Answer{"burnRate", "unsure"},
		Answer{"revenueModel", "unsure"},
		Answer{"profitabilityTimeline", "unsure"},
	))
	assert.Zero(t, got[1])
	for _, v := range got {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestLevelForBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{0, LevelLow},
		{0.33, LevelLow},
		{0.330001, LevelMedium},
		{0.66, LevelMedium},
		{0.660001, LevelHigh},
		{1.2, LevelHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.score), "score %v", tt.score)
	}
}

func TestBuildReport(t *testing.T) {
	s := DefaultSchema()
	b := NewReportBuilder(s, NewSuggestionEngine(DefaultSuggestions()))

	p := b.Build(NewAnswers(Answer{"marketNeed", "high"}), [NumCategories]float64{0.9, 0.1, 0.5, 0.3})
	assert.InDelta(t, 0.45, p.OverallScore, 1e-9)
	assert.Equal(t, LevelMedium, p.RiskLevel)
	assert.Equal(t, 0.9, p.RiskBreakdown.MarketRisk)
	assert.Equal(t, 0.1, p.RiskBreakdown.FinancialRisk)
	assert.Equal(t, 0.5, p.RiskBreakdown.ProductRisk)
	assert.Equal(t, 0.3, p.RiskBreakdown.TeamRisk)
	require.Len(t, p.Suggestions, 1)
	require.NotNil(t, p.Suggestions[0].ResourceKey)
	assert.Equal(t, "customer-discovery", *p.Suggestions[0].ResourceKey)

	for _, c := range s.Categories() {
		assert.Equal(t, []float64{0.9, 0.1, 0.5, 0.3}[c.OutputIndex], p.RiskBreakdown.Get(c.ID))
	}
}

func TestSuggestFallback(t *testing.T) {
	e := NewSuggestionEngine(DefaultSuggestions())

	got := e.Suggest(NewAnswers(
		Answer{"marketNeed", "low"},
		Answer{"productQuality", "high"},
		Answer{"industry", "saas"},
	))
	require.Len(t, got, 1)
	assert.Equal(t, BalancedSuggestion, got[0])
	assert.Nil(t, got[0].ResourceKey)

	assert.Equal(t, []Suggestion{BalancedSuggestion}, e.Suggest(Answers{}))
}

func TestSuggestFollowsInputOrderAndDirection(t *testing.T) {
	table := DefaultSuggestions()
	e := NewSuggestionEngine(table)

	got := e.Suggest(NewAnswers(
		Answer{"founderConflicts", "HIGH"},
		Answer{"productQuality", "Low"},
		Answer{"competition", "medium"},
		Answer{"marketNeed", "high"},
	))
	require.Len(t, got, 3)
	assert.Equal(t, table["founderConflicts"]["high"], got[0])
	assert.Equal(t, table["productQuality"]["low"], got[1])
	assert.Equal(t, table["marketNeed"]["high"], got[2])
	assert.Equal(t, "founder-agreement", *got[0].ResourceKey)
}

func TestAnswersJSONKeepsDocumentOrder(t *testing.T) {
	var a Answers
	err := json.Unmarshal([]byte(`{"skillGaps":"high","marketNeed":"high","n":3,"ok":true,"skip":null}`), &a)
	require.NoError(t, err)

	assert.Equal(t, []string{"skillGaps", "marketNeed", "n", "ok"}, a.Keys())
	assert.Equal(t, "3", a.GetOr("n", ""))
	assert.Equal(t, "true", a.GetOr("ok", ""))
	_, ok := a.Get("skip")
	assert.False(t, ok)

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"skillGaps":"high","marketNeed":"high","n":"3","ok":"true"}`, string(out))
}

func TestAnswersJSONRejectsNonScalars(t *testing.T) {
	var a Answers
	assert.ErrorIs(t, json.Unmarshal([]byte(`["high"]`), &a), ErrInvalidAnswers)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"marketNeed":{"v":"high"}}`), &a), ErrInvalidAnswers)
}

func TestAnswersBSONKeepsDocumentOrder(t *testing.T) {
	type doc struct {
		Answers Answers `bson:"answers"`
	}
	in := doc{Answers: NewAnswers(Answer{"z", "1"}, Answer{"a", "2"}, Answer{"m", "3"})}

	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var out doc
	require.NoError(t, bson.Unmarshal(raw, &out))
	assert.Equal(t, []string{"z", "a", "m"}, out.Answers.Keys())
	assert.Equal(t, in.Answers.Map(), out.Answers.Map())
}

func TestNewAnswersRepeatedKey(t *testing.T) {
	a := NewAnswers(Answer{"a", "1"}, Answer{"b", "2"}, Answer{"a", "3"})
	assert.Equal(t, []string{"a", "b"}, a.Keys())
	assert.Equal(t, "3", a.GetOr("a", ""))
	assert.Equal(t, 2, a.Len())

	m := AnswersFromMap(map[string]string{"b": "x", "a": "y"})
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestCatalog(t *testing.T) {
	sections := DefaultSchema().Catalog()
	require.Len(t, sections, NumCategories+1)
	assert.Equal(t, IndustryKey, sections[0].Questions[0].Key)
	assert.Equal(t, "market", sections[1].Key)
	assert.Len(t, sections[4].Questions, QuestionsPerCategory)
}
