package risk

import "strings"

// Suggestion is a remediation hint with an optional guide reference
type Suggestion struct {
	Text        string  `json:"text" bson:"text"`
	ResourceKey *string `json:"resourceKey" bson:"resourceKey"`
}

func resource(key string) *string {
	return &key
}

// SuggestionTable maps question key -> trigger token -> suggestion.
// Trigger direction is per question: most fire on "high", product quality
// fires on "low".
type SuggestionTable map[string]map[string]Suggestion

// DefaultSuggestions returns the built-in remediation table
func DefaultSuggestions() SuggestionTable {
	return SuggestionTable{
		"marketNeed": {"high": {
			Text:        "Your highest risk is unproven market need. Start customer discovery interviews to validate the problem.",
			ResourceKey: resource("customer-discovery"),
		}},
		"competition": {"high": {
			Text:        "You are entering a saturated market. Clearly define your unique value proposition and find an underserved niche.",
			ResourceKey: resource("usp"),
		}},
		"customerAcquisitionCost": {"high": {
			Text: "A high CAC can drain capital. Focus on organic marketing and referral programs to lower this cost.",
		}},
		"capital": {"high": {
			Text: "Lack of capital is a primary startup killer. Create a detailed financial model and start investor conversations now.",
		}},
		"burnRate": {"high": {
			Text: "Your burn rate is dangerously high. Immediately review all expenses and cut non-essentials to extend your runway.",
		}},
		"revenueModel": {"high": {
			Text: "Your revenue model is unclear. Analyze competitors and survey potential customers to find the best pricing strategy.",
		}},
		"productQuality": {"low": {
			Text: "Low product quality prevents adoption. Focus on a smaller, more polished MVP rather than a wide array of buggy features.",
		}},
		"techObsolescence": {"high": {
			Text: "Relying on rapidly changing technology is risky. Ensure your architecture is modular to allow for future changes.",
		}},
		"founderConflicts": {"high": {
			Text:        "Founder conflict is a top reason for failure. Establish a formal founders' agreement outlining roles, equity, and dispute resolution.",
			ResourceKey: resource("founder-agreement"),
		}},
		"skillGaps": {"high": {
			Text: "Your team has critical skill gaps. Prioritize hiring or bringing on advisors to fill these, especially in marketing or sales.",
		}},
	}
}

// BalancedSuggestion is returned when no answer triggers a remediation
var BalancedSuggestion = Suggestion{
	Text: "Your risk profile appears balanced. Continue to monitor all aspects of your venture, especially customer feedback and financial runway.",
}

// SuggestionEngine matches answers against a SuggestionTable
type SuggestionEngine struct {
	table SuggestionTable
}

func NewSuggestionEngine(table SuggestionTable) *SuggestionEngine {
	cp := make(SuggestionTable, len(table))
	for q, triggers := range table {
		t := make(map[string]Suggestion, len(triggers))
		for token, s := range triggers {
			t[strings.ToLower(token)] = s
		}
		cp[q] = t
	}
	return &SuggestionEngine{table: cp}
}

// Suggest walks every answered key, scored or not, in the order the answers
// were supplied. The result is never empty.
func (e *SuggestionEngine) Suggest(answers Answers) []Suggestion {
	var out []Suggestion
	for _, a := range answers.Entries() {
		triggers, ok := e.table[a.Key]
		if !ok {
			continue
		}
		if s, ok := triggers[strings.ToLower(a.Value)]; ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		out = append(out, BalancedSuggestion)
	}
	return out
}
