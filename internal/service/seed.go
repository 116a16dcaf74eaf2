package service

import (
	"math/rand/v2"

	"riskcompass/internal/model"
	"riskcompass/internal/risk"
)

// SyntheticQuestionnaires builds n varied questionnaires for userID. Each
// picks a random option per catalog question, skips roughly one in ten
// questions and carries an estimator-based profile so benchmarks have data
// before a model exists.
func SyntheticQuestionnaires(schema *risk.Schema, userID string, n int, rng *rand.Rand) []*model.Questionnaire {
	builder := risk.NewReportBuilder(schema, risk.NewSuggestionEngine(risk.DefaultSuggestions()))
	estimator := risk.NewEstimator(schema)
	catalog := schema.Catalog()

	out := make([]*model.Questionnaire, 0, n)
	for i := 0; i < n; i++ {
		var entries []risk.Answer
		for _, section := range catalog {
			for _, q := range section.Questions {
				if q.Key != risk.IndustryKey && rng.IntN(10) == 0 {
					continue
				}
				opt := q.Options[rng.IntN(len(q.Options))]
				entries = append(entries, risk.Answer{Key: q.Key, Value: opt.Value})
			}
		}
		answers := risk.NewAnswers(entries...)

		out = append(out, &model.Questionnaire{
			UserID:      userID,
			Answers:     answers,
			RiskProfile: builder.Build(answers, estimator.Estimate(answers)),
		})
	}
	return out
}
