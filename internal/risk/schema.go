package risk

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CategoryID names one of the four risk categories
type CategoryID string

const (
	CategoryMarket    CategoryID = "market"
	CategoryFinancial CategoryID = "financial"
	CategoryProduct   CategoryID = "product"
	CategoryTeam      CategoryID = "team"
)

const (
	NumCategories        = 4
	QuestionsPerCategory = 4
	NumFeatures          = NumCategories * QuestionsPerCategory

	// EncodeDefault is the token the encoder assumes for an unanswered question
	EncodeDefault = "no"
)

var (
	ErrInvalidSchema = errors.New("invalid risk schema")
)

// Option is one selectable answer for a question
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Question is one of the fixed questionnaire questions
type Question struct {
	Key     string   `json:"key"`
	Prompt  string   `json:"text"`
	Options []Option `json:"options"`

	// EstimateDefault is the token the ground-truth estimator assumes when
	// the question is unanswered. It points at the conventionally safe
	// direction of this particular question.
	EstimateDefault string `json:"-"`
}

// Category binds a risk category to its questions and to its position in
// the predictor output. Feature blocks, estimator output and the report
// breakdown are all ordered by OutputIndex.
type Category struct {
	ID          CategoryID `json:"key"`
	Title       string     `json:"title"`
	OutputIndex int        `json:"-"`
	Questions   []Question `json:"questions"`
}

// Schema is the immutable questionnaire configuration shared by encoding,
// label estimation and reporting. Build it once and pass the same value to
// every component.
type Schema struct {
	vocabulary   map[string]float64
	categories   []Category
	featureOrder []string
}

// NewSchema validates and copies the vocabulary and category layout
func NewSchema(vocabulary map[string]float64, categories []Category) (*Schema, error) {
	if len(categories) != NumCategories {
		return nil, fmt.Errorf("%w: want %d categories, got %d", ErrInvalidSchema, NumCategories, len(categories))
	}

	vocab := make(map[string]float64, len(vocabulary))
	for token, w := range vocabulary {
		if w < 0 || w > 1 {
			return nil, fmt.Errorf("%w: weight for %q out of [0,1]: %v", ErrInvalidSchema, token, w)
		}
		vocab[strings.ToLower(token)] = w
	}

	cats := make([]Category, NumCategories)
	seenIndex := make(map[int]bool, NumCategories)
	seenKey := make(map[string]bool, NumFeatures)
	for _, c := range categories {
		if c.OutputIndex < 0 || c.OutputIndex >= NumCategories || seenIndex[c.OutputIndex] {
			return nil, fmt.Errorf("%w: category %s has bad output index %d", ErrInvalidSchema, c.ID, c.OutputIndex)
		}
		if len(c.Questions) != QuestionsPerCategory {
			return nil, fmt.Errorf("%w: category %s has %d questions", ErrInvalidSchema, c.ID, len(c.Questions))
		}
		seenIndex[c.OutputIndex] = true

		qs := make([]Question, len(c.Questions))
		for i, q := range c.Questions {
			if q.Key == "" || seenKey[q.Key] {
				return nil, fmt.Errorf("%w: empty or duplicate question key %q", ErrInvalidSchema, q.Key)
			}
			seenKey[q.Key] = true
			q.Options = append([]Option(nil), q.Options...)
			qs[i] = q
		}
		c.Questions = qs
		cats[c.OutputIndex] = c
	}

	order := make([]string, 0, NumFeatures)
	for _, c := range cats {
		for _, q := range c.Questions {
			order = append(order, q.Key)
		}
	}

	return &Schema{
		vocabulary:   vocab,
		categories:   cats,
		featureOrder: order,
	}, nil
}

// Weight returns the risk weight of a token, 0 when unknown
func (s *Schema) Weight(token string) float64 {
	return s.vocabulary[strings.ToLower(token)]
}

// FeatureOrder returns the 16 question keys in vector order
func (s *Schema) FeatureOrder() []string {
	return append([]string(nil), s.featureOrder...)
}

// Categories returns the categories ordered by output index
func (s *Schema) Categories() []Category {
	out := make([]Category, len(s.categories))
	for i, c := range s.categories {
		c.Questions = append([]Question(nil), c.Questions...)
		out[i] = c
	}
	return out
}

// Category returns the category at a predictor output index
func (s *Schema) Category(outputIndex int) Category {
	return s.categories[outputIndex]
}

// IsFeature reports whether key is one of the scored questions
func (s *Schema) IsFeature(key string) bool {
	for _, k := range s.featureOrder {
		if k == key {
			return true
		}
	}
	return false
}

// Fingerprint identifies the encoding produced by this schema. Persisted
// predictor state records it so a model trained under one vocabulary or
// ordering is never served under another.
func (s *Schema) Fingerprint() string {
	tokens := make([]string, 0, len(s.vocabulary))
	for t := range s.vocabulary {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	var b strings.Builder
	b.WriteString("order:")
	b.WriteString(strings.Join(s.featureOrder, ","))
	b.WriteString(";vocab:")
	for _, t := range tokens {
		b.WriteString(t)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(s.vocabulary[t], 'g', -1, 64))
		b.WriteByte(',')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
