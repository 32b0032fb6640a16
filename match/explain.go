package match

import "github.com/poiesic/matchpoint/core"

// Explanation is a flattened, display-friendly view of one match result.
type Explanation struct {
	FeatureID       string   `json:"feature_id"`
	FeatureName     string   `json:"feature_name"`
	Category        string   `json:"category"`
	Confidence      float64  `json:"confidence"`
	Level           string   `json:"level"`
	Summary         string   `json:"summary"`
	LayerScores     Layers   `json:"layer_scores"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// Layers mirrors core.LayeredScore with JSON names matching the layer
// weight keys.
type Layers struct {
	Exact    float64 `json:"exact_match"`
	Fuzzy    float64 `json:"fuzzy_match"`
	Semantic float64 `json:"semantic_match"`
	Domain   float64 `json:"domain_match"`
	Intent   float64 `json:"intent_match"`
}

// ExplainMatch converts a match result into its flat explanation form.
func ExplainMatch(result *core.MatchResult) Explanation {
	explanation := Explanation{
		FeatureID:       result.FeatureID,
		FeatureName:     result.FeatureName,
		Confidence:      result.Confidence,
		Level:           string(result.Level),
		Summary:         result.Reasoning,
		MatchedKeywords: result.MatchedKeywords,
		LayerScores: Layers{
			Exact:    result.Layers.Exact,
			Fuzzy:    result.Layers.Fuzzy,
			Semantic: result.Layers.Semantic,
			Domain:   result.Layers.Domain,
			Intent:   result.Layers.Intent,
		},
	}
	if result.Feature != nil {
		explanation.Category = result.Feature.Category
	}
	return explanation
}
