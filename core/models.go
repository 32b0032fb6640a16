package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint generates a deterministic content fingerprint using BLAKE2b hashing.
// Identical text always produces an identical fingerprint, which lets the
// embedding cache detect when a feature's source text has drifted from the
// text its vectors were built from.
func Fingerprint(text string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Feature represents a single catalog entry describing one product capability.
// Features are loaded once from the catalog document and never mutated afterwards.
type Feature struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Category            string   `json:"category"`
	Subcategory         string   `json:"subcategory,omitempty"`
	Description         string   `json:"description"`
	Keywords            []string `json:"keywords"`
	PainPointsAddressed []string `json:"pain_points_addressed"`
	UseCases            []string `json:"use_cases"`
	Benefits            []string `json:"benefits"`
}

// PainPointsText returns the feature's pain-point phrases joined with spaces.
func (f *Feature) PainPointsText() string {
	return strings.Join(f.PainPointsAddressed, " ")
}

// KeywordsText returns the feature's keywords joined with spaces.
func (f *Feature) KeywordsText() string {
	return strings.Join(f.Keywords, " ")
}

// UseCasesText returns the feature's use-case phrases joined with spaces.
func (f *Feature) UseCasesText() string {
	return strings.Join(f.UseCases, " ")
}

// CombinedText returns the concatenation of the four embeddable source texts.
// This is both the input for the combined embedding and the input for the
// cache fingerprint.
func (f *Feature) CombinedText() string {
	parts := []string{f.Description, f.PainPointsText(), f.KeywordsText(), f.UseCasesText()}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// ProcessedQuery is the structured form of a pain-point query.
// It is created per request and never mutated after construction.
type ProcessedQuery struct {
	Original  string
	Cleaned   string
	Tokens    []string
	Keywords  []string           // original keywords plus thesaurus expansions
	Intent    map[string]float64 // business-intent distribution, scores in [0,1]
	Embedding []float32          // nil when no query embedding is available
}

// LayeredScore is the per-feature breakdown of the five similarity signals.
// Final is the weighted combination of the five sub-scores, capped at 1.0.
type LayeredScore struct {
	Exact     float64
	Fuzzy     float64
	Semantic  float64
	Domain    float64
	Intent    float64
	Final     float64
	Reasoning []string // human-readable fragments for layers that contributed
}

// FeatureEmbedding holds the cached embedding bundle for a single feature:
// one vector per embeddable text field plus one combined vector.
type FeatureEmbedding struct {
	FeatureID   string            `json:"feature_id"`
	Description []float32         `json:"description_embedding"`
	PainPoints  []float32         `json:"pain_points_embedding"`
	Keywords    []float32         `json:"keywords_embedding"`
	UseCases    []float32         `json:"use_cases_embedding"`
	Combined    []float32         `json:"combined_embedding"`
	Metadata    EmbeddingMetadata `json:"metadata"`
}

// EmbeddingMetadata is a light snapshot of the source feature for cache
// inspection, plus the fingerprint of the text the vectors were built from.
type EmbeddingMetadata struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

// MatchResult is a single ranked recommendation produced by a matcher.
// It owns its LayeredScore snapshot and holds a read-only reference to the
// shared Feature record.
type MatchResult struct {
	FeatureID       string
	FeatureName     string
	Confidence      float64
	Level           ConfidenceLevel
	Reasoning       string
	Layers          LayeredScore
	MatchedKeywords []string // literal keyword overlap between query and feature
	Feature         *Feature
}
