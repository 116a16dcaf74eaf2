package risk

// IndustryKey is the profile question used for benchmarking. It is stored
// with the answers but never scored.
const IndustryKey = "industry"

// CatalogSection is one page of the questionnaire as shown to founders
type CatalogSection struct {
	Key       string     `json:"key"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Catalog lists the profile section followed by the scored categories
func (s *Schema) Catalog() []CatalogSection {
	sections := []CatalogSection{{
		Key:   "profile",
		Title: "Company Profile",
		Questions: []Question{{
			Key:    IndustryKey,
			Prompt: "Which industry does your startup operate in?",
			Options: []Option{
				{"saas", "SaaS (Software-as-a-Service)"},
				{"fintech", "FinTech (Financial Technology)"},
				{"healthtech", "HealthTech"},
				{"ecommerce", "E-commerce / Marketplace"},
				{"deeptech", "Deep Tech / R&D Intensive"},
				{"other", "Other"},
			},
		}},
	}}

	for _, c := range s.Categories() {
		sections = append(sections, CatalogSection{
			Key:       string(c.ID),
			Title:     c.Title,
			Questions: c.Questions,
		})
	}
	return sections
}
