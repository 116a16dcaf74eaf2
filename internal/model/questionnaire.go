package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"riskcompass/internal/risk"
)

// Questionnaire is a submitted assessment: the raw answers and the profile
// the model produced for them
type Questionnaire struct {
	ID          string        `json:"_id" bson:"_id,omitempty"`
	UserID      string        `json:"userId" bson:"userId"`
	Answers     risk.Answers  `json:"answers" bson:"answers"`
	RiskProfile *risk.Profile `json:"riskProfile" bson:"riskProfile"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Industry returns the profile industry answer, if any
func (q *Questionnaire) Industry() string {
	return q.Answers.GetOr(risk.IndustryKey, "")
}

// TrainingRecord is a historical questionnaire as read for training. Answers
// is kept raw so records with a missing or malformed field can be skipped
// instead of failing the whole read.
type TrainingRecord struct {
	ID      string        `bson:"_id"`
	Answers bson.RawValue `bson:"answers"`
}

// Benchmark averages stored profiles across one industry
type Benchmark struct {
	Industry     string  `json:"_id" bson:"_id"`
	Count        int     `json:"count" bson:"count"`
	AvgOverall   float64 `json:"avgOverall" bson:"avgOverall"`
	AvgMarket    float64 `json:"avgMarket" bson:"avgMarket"`
	AvgFinancial float64 `json:"avgFinancial" bson:"avgFinancial"`
	AvgProduct   float64 `json:"avgProduct" bson:"avgProduct"`
	AvgTeam      float64 `json:"avgTeam" bson:"avgTeam"`
}
