package risk

import "strings"

// FeatureVector is the encoded questionnaire in feature order
type FeatureVector []float64

// Encoder turns answer sets into feature vectors
type Encoder struct {
	schema *Schema
}

func NewEncoder(schema *Schema) *Encoder {
	return &Encoder{schema: schema}
}

// Encode maps every scored question to its vocabulary weight. Unanswered
// questions read as "no" and unknown tokens weigh 0; neither is an error,
// training and inference must see the same defaults.
func (e *Encoder) Encode(answers Answers) FeatureVector {
	vec := make(FeatureVector, 0, NumFeatures)
	for _, key := range e.schema.featureOrder {
		token := strings.ToLower(answers.GetOr(key, EncodeDefault))
		vec = append(vec, e.schema.Weight(token))
	}
	return vec
}
