package service

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskcompass/internal/risk"
)

func TestSyntheticQuestionnaires(t *testing.T) {
	schema := risk.DefaultSchema()
	qs := SyntheticQuestionnaires(schema, "seed", 25, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, qs, 25)

	valid := make(map[string]map[string]bool)
	for _, section := range schema.Catalog() {
		for _, q := range section.Questions {
			valid[q.Key] = make(map[string]bool)
			for _, o := range q.Options {
				valid[q.Key][o.Value] = true
			}
		}
	}

	profiles := make(map[float64]bool)
	for _, q := range qs {
		assert.Equal(t, "seed", q.UserID)
		assert.NotEmpty(t, q.Industry())
		for _, a := range q.Answers.Entries() {
			assert.True(t, valid[a.Key][a.Value], "%s=%s", a.Key, a.Value)
		}
		require.NotNil(t, q.RiskProfile)
		assert.Equal(t, risk.LevelFor(q.RiskProfile.OverallScore), q.RiskProfile.RiskLevel)
		profiles[q.RiskProfile.OverallScore] = true
	}
	assert.Greater(t, len(profiles), 1)
}

func TestSyntheticQuestionnairesAreTrainable(t *testing.T) {
	schema := risk.DefaultSchema()
	qs := SyntheticQuestionnaires(schema, "seed", 2, rand.New(rand.NewPCG(3, 4)))

	enc := risk.NewEncoder(schema)
	for _, q := range qs {
		assert.Len(t, enc.Encode(q.Answers), risk.NumFeatures)
	}
}
