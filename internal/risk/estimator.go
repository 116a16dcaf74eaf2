package risk

// CategoryScores holds one score per category, indexed by output index
type CategoryScores [NumCategories]float64

// Estimator is the rule-based scorer used to label training data. Labels are
// always recomputed from raw answers; profiles stored next to historical
// records may come from an older model and are never reused.
type Estimator struct {
	schema *Schema
}

func NewEstimator(schema *Schema) *Estimator {
	return &Estimator{schema: schema}
}

// Estimate averages the vocabulary weights of each category's answers.
// An unanswered question takes its own per-question default.
func (e *Estimator) Estimate(answers Answers) CategoryScores {
	var scores CategoryScores
	for _, c := range e.schema.categories {
		sum := 0.0
		for _, q := range c.Questions {
			sum += e.schema.Weight(answers.GetOr(q.Key, q.EstimateDefault))
		}
		scores[c.OutputIndex] = sum / float64(len(c.Questions))
	}
	return scores
}
