package risk

// DefaultVocabulary maps answer tokens to risk weights
func DefaultVocabulary() map[string]float64 {
	return map[string]float64{
		"yes": 1, "no": 0,
		"low": 0.2, "medium": 0.5, "high": 0.9,
		"idea": 0.9, "prototype": 0.6, "mvp": 0.4, "growth": 0.2,
		"pre-seed": 0.9, "seed": 0.6, "series-a": 0.3,
		"0-1": 0.8, "2-5": 0.5, "6+": 0.3,
	}
}

var (
	levelOptions = func(low, medium, high string) []Option {
		return []Option{{"low", low}, {"medium", medium}, {"high", high}}
	}
	yesNoOptions = func(yes, no string) []Option {
		return []Option{{"yes", yes}, {"no", no}}
	}
)

// DefaultCategories returns the fixed questionnaire layout
func DefaultCategories() []Category {
	return []Category{
		{
			ID:          CategoryMarket,
			Title:       "Market Risk",
			OutputIndex: 0,
			Questions: []Question{
				{Key: "marketNeed", Prompt: "How validated is the market need for your product?",
					Options: levelOptions("Strongly Validated", "Somewhat Validated", "Purely Hypothetical"), EstimateDefault: "low"},
				{Key: "competition", Prompt: "How would you describe the market competition?",
					Options: levelOptions("Low / Niche Market", "Medium / Some Competitors", "High / Saturated Market"), EstimateDefault: "low"},
				{Key: "marketTrends", Prompt: "Are current market trends in your favor?",
					Options: yesNoOptions("Yes, trends are favorable", "No, we are against the trend"), EstimateDefault: "yes"},
				{Key: "customerAcquisitionCost", Prompt: "What is your projected Customer Acquisition Cost (CAC)?",
					Options: levelOptions("Low (e.g., organic, viral)", "Medium (e.g., requires ad spend)", "High (e.g., enterprise sales)"), EstimateDefault: "low"},
			},
		},
		{
			ID:          CategoryFinancial,
			Title:       "Financial Risk",
			OutputIndex: 1,
			Questions: []Question{
				{Key: "capital", Prompt: "How much capital runway do you currently have?",
					Options: levelOptions("Over 12 months", "6-12 months", "Less than 6 months"), EstimateDefault: "low"},
				{Key: "burnRate", Prompt: "Is your monthly burn rate under control?",
					Options: levelOptions("Yes, minimal and controlled", "It is manageable but growing", "No, it is high and concerning"), EstimateDefault: "low"},
				{Key: "revenueModel", Prompt: "How clear and proven is your revenue model?",
					Options: levelOptions("Clear and generating revenue", "Clear but not yet generating revenue", "Unclear or still exploring models"), EstimateDefault: "low"},
				{Key: "profitabilityTimeline", Prompt: "What is the estimated timeline to profitability?",
					Options: levelOptions("Less than 1 year", "1-3 years", "More than 3 years / Unclear"), EstimateDefault: "low"},
			},
		},
		{
			ID:          CategoryProduct,
			Title:       "Product Risk",
			OutputIndex: 2,
			Questions: []Question{
				{Key: "productQuality", Prompt: "How would you rate your current product quality?",
					Options: []Option{{"high", "High Quality / Production Ready"}, {"medium", "Functional MVP with some bugs"}, {"low", "Early Prototype / Unstable"}}, EstimateDefault: "high"},
				{Key: "devDelays", Prompt: "Are you experiencing significant development delays?",
					Options: []Option{{"no", "No, we are on schedule"}, {"yes", "Yes, we are behind schedule"}}, EstimateDefault: "no"},
				{Key: "techObsolescence", Prompt: "Is your core technology at risk of becoming obsolete?",
					Options: levelOptions("Low risk, using stable tech", "Some risk, using cutting-edge tech", "High risk, tech is unproven or fading"), EstimateDefault: "low"},
				{Key: "scalability", Prompt: "Is your technical architecture built for scalability?",
					Options: yesNoOptions("Yes, designed for scale", "No, it will require a major rework"), EstimateDefault: "yes"},
			},
		},
		{
			ID:          CategoryTeam,
			Title:       "Team Risk",
			OutputIndex: 3,
			Questions: []Question{
				{Key: "founderConflicts", Prompt: "Is there a high potential for founder conflicts?",
					Options: levelOptions("Low, clear roles and agreement", "Medium, some overlapping roles", "High, no formal agreement in place"), EstimateDefault: "low"},
				{Key: "hiring", Prompt: "How difficult is it to hire the talent you need?",
					Options: levelOptions("Easy, strong talent pool", "Challenging but possible", "Very difficult, niche skills required"), EstimateDefault: "low"},
				{Key: "skillGaps", Prompt: "Does the core team have significant skill gaps?",
					Options: levelOptions("No, all core competencies covered", "Minor gaps in non-essential areas", "Yes, critical gaps (e.g., no tech co-founder)"), EstimateDefault: "low"},
				{Key: "founderExperience", Prompt: "Does the founding team have prior startup experience?",
					Options: yesNoOptions("Yes, one or more have experience", "No, this is the first venture for all"), EstimateDefault: "yes"},
			},
		},
	}
}

// DefaultSchema builds the schema used by the service, training and seeding
func DefaultSchema() *Schema {
	s, err := NewSchema(DefaultVocabulary(), DefaultCategories())
	if err != nil {
		panic(err)
	}
	return s
}
