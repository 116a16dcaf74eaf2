package risk

// Level is the three-tier risk label
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

const (
	highThreshold   = 0.66
	mediumThreshold = 0.33
)

// LevelFor classifies an overall score. Thresholds are exclusive, so a score
// of exactly 0.33 is Low and exactly 0.66 is Medium.
func LevelFor(score float64) Level {
	switch {
	case score > highThreshold:
		return LevelHigh
	case score > mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Breakdown holds the per-category scores of a profile
type Breakdown struct {
	MarketRisk    float64 `json:"marketRisk" bson:"marketRisk"`
	FinancialRisk float64 `json:"financialRisk" bson:"financialRisk"`
	ProductRisk   float64 `json:"productRisk" bson:"productRisk"`
	TeamRisk      float64 `json:"teamRisk" bson:"teamRisk"`
}

// Set stores a score under the given category
func (b *Breakdown) Set(id CategoryID, score float64) {
	switch id {
	case CategoryMarket:
		b.MarketRisk = score
	case CategoryFinancial:
		b.FinancialRisk = score
	case CategoryProduct:
		b.ProductRisk = score
	case CategoryTeam:
		b.TeamRisk = score
	}
}

// Get returns the score for a category
func (b Breakdown) Get(id CategoryID) float64 {
	switch id {
	case CategoryMarket:
		return b.MarketRisk
	case CategoryFinancial:
		return b.FinancialRisk
	case CategoryProduct:
		return b.ProductRisk
	case CategoryTeam:
		return b.TeamRisk
	}
	return 0
}

// Profile is the report returned to the founder
type Profile struct {
	OverallScore  float64      `json:"overallScore" bson:"overallScore"`
	RiskLevel     Level        `json:"riskLevel" bson:"riskLevel"`
	RiskBreakdown Breakdown    `json:"riskBreakdown" bson:"riskBreakdown"`
	Suggestions   []Suggestion `json:"suggestions" bson:"suggestions"`
}

// ReportBuilder turns predictor output into a Profile
type ReportBuilder struct {
	schema      *Schema
	suggestions *SuggestionEngine
}

func NewReportBuilder(schema *Schema, suggestions *SuggestionEngine) *ReportBuilder {
	return &ReportBuilder{schema: schema, suggestions: suggestions}
}

// Build scores predicted category values. predicted[i] belongs to the
// category whose OutputIndex is i.
func (b *ReportBuilder) Build(answers Answers, predicted [NumCategories]float64) *Profile {
	sum := 0.0
	for _, v := range predicted {
		sum += v
	}
	overall := sum / NumCategories

	var breakdown Breakdown
	for _, c := range b.schema.categories {
		breakdown.Set(c.ID, predicted[c.OutputIndex])
	}

	return &Profile{
		OverallScore:  overall,
		RiskLevel:     LevelFor(overall),
		RiskBreakdown: breakdown,
		Suggestions:   b.suggestions.Suggest(answers),
	}
}
