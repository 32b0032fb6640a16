package textproc

import (
	"fmt"
	"strings"

	"github.com/poiesic/matchpoint/core"
)

// fuzzyMatchThreshold is the minimum per-keyword similarity that counts
// toward the fuzzy layer score.
const fuzzyMatchThreshold = 0.7

// ExactMatchScore computes the Jaccard similarity between two keyword sets:
// intersection size over union size. Returns 0 if either set is empty.
// Self-similarity of a non-empty set is always 1.0.
func (p *Processor) ExactMatchScore(queryKeywords, targetKeywords []string) float64 {
	if len(queryKeywords) == 0 || len(targetKeywords) == 0 {
		return 0
	}

	querySet := toSet(queryKeywords)
	targetSet := toSet(targetKeywords)

	intersection := 0
	for word := range querySet {
		if targetSet[word] {
			intersection++
		}
	}
	union := len(querySet) + len(targetSet) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// FuzzyMatchScore computes a directional fuzzy similarity: each query keyword
// contributes its best similarity against all target tokens, but only when
// that best match exceeds the 0.7 threshold. The sum is normalized by the
// query keyword count, so unmatched keywords drag the score down.
func (p *Processor) FuzzyMatchScore(queryKeywords, targetTokens []string) float64 {
	if len(queryKeywords) == 0 || len(targetTokens) == 0 {
		return 0
	}

	total := 0.0
	for _, queryKeyword := range queryKeywords {
		best := 0.0
		for _, target := range targetTokens {
			if similarity := Ratio(queryKeyword, target); similarity > best {
				best = similarity
			}
		}
		if best > fuzzyMatchThreshold {
			total += best
		}
	}
	return total / float64(len(queryKeywords))
}

// DomainRelevance scores how well a query's intent distribution aligns with a
// feature category. Each category maps to a fixed subset of intents; the
// score is the mean of the query's scores over that subset, capped at 1.0.
// Unmapped categories score 0.
func (p *Processor) DomainRelevance(intent map[string]float64, featureCategory string) float64 {
	relevantIntents, ok := categoryIntents[strings.ToLower(featureCategory)]
	if !ok || len(relevantIntents) == 0 {
		return 0
	}

	total := 0.0
	for _, name := range relevantIntents {
		total += intent[name]
	}
	score := total / float64(len(relevantIntents))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ReasoningFragments emits a human-readable fragment for each layer whose
// sub-score clears its threshold. Exact and semantic layers carry a secondary
// "moderate" tier at lower thresholds.
func (p *Processor) ReasoningFragments(score core.LayeredScore) []string {
	var fragments []string

	if score.Exact > 0.3 {
		fragments = append(fragments, fmt.Sprintf("Strong keyword match (%.1f%%)", score.Exact*100))
	} else if score.Exact > 0.1 {
		fragments = append(fragments, fmt.Sprintf("Moderate keyword match (%.1f%%)", score.Exact*100))
	}

	if score.Fuzzy > 0.5 {
		fragments = append(fragments, fmt.Sprintf("Good fuzzy similarity (%.1f%%)", score.Fuzzy*100))
	}

	if score.Semantic > 0.7 {
		fragments = append(fragments, fmt.Sprintf("High semantic relevance (%.1f%%)", score.Semantic*100))
	} else if score.Semantic > 0.5 {
		fragments = append(fragments, fmt.Sprintf("Moderate semantic relevance (%.1f%%)", score.Semantic*100))
	}

	if score.Domain > 0.5 {
		fragments = append(fragments, fmt.Sprintf("Domain relevant (%.1f%%)", score.Domain*100))
	}

	if score.Intent > 0.3 {
		fragments = append(fragments, fmt.Sprintf("Pain point alignment (%.1f%%)", score.Intent*100))
	}

	return fragments
}

// ExplainScore renders the reasoning fragments as a single string, falling
// back to a generic fragment when no layer qualifies.
func (p *Processor) ExplainScore(score core.LayeredScore) string {
	fragments := p.ReasoningFragments(score)
	if len(fragments) == 0 {
		fragments = []string{"Basic text similarity"}
	}
	return strings.Join(fragments, " • ")
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
