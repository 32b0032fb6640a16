// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package match

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/matchpoint/catalog"
	"github.com/poiesic/matchpoint/core"
	"github.com/poiesic/matchpoint/textproc"
)

// basicFuzzyThreshold is the minimum partial-ratio for a keyword pair to
// count as overlapping in the degraded matcher.
const basicFuzzyThreshold = 0.7

// basicResultFloor drops results whose weighted score carries no signal.
const basicResultFloor = 0.1

// Basic is the degraded matcher used when no embedding provider is
// reachable. It scores features on text similarity alone: no embeddings and
// no storage, so it works fully offline.
type Basic struct {
	catalog   *catalog.Store
	processor *textproc.Processor
	logger    *slog.Logger
}

var _ Matcher = (*Basic)(nil)

// NewBasic creates the text-only fallback matcher.
func NewBasic(store *catalog.Store, logger *slog.Logger) (*Basic, error) {
	if store == nil {
		return nil, ErrCatalogRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Basic{
		catalog:   store,
		processor: textproc.NewProcessor(textproc.WithLogger(logger)),
		logger:    logger,
	}, nil
}

// Method identifies the degraded matching strategy.
func (b *Basic) Method() string {
	return "basic"
}

// FindMatches ranks features by a two-signal text score: description
// similarity (60%) and keyword overlap (40%).
func (b *Basic) FindMatches(ctx context.Context, painPoint string, maxResults int) ([]*core.MatchResult, error) {
	if strings.TrimSpace(painPoint) == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	queryLower := strings.ToLower(painPoint)
	queryKeywords := b.processor.ExtractKeywords(painPoint)

	features := b.catalog.Features()
	results := make([]*core.MatchResult, 0, len(features))
	for i := range features {
		feature := &features[i]

		descSim := textproc.PartialRatio(queryLower, strings.ToLower(feature.Description))
		kwScore := b.keywordOverlap(queryKeywords, feature.Keywords)

		final := 0.6*descSim + 0.4*kwScore
		if final <= basicResultFloor {
			continue
		}

		results = append(results, &core.MatchResult{
			FeatureID:   feature.ID,
			FeatureName: feature.Name,
			Confidence:  final,
			Level:       core.BasicConfidenceFromScore(final),
			Reasoning:   fmt.Sprintf("Basic similarity match (%.3f)", final),
			Layers: core.LayeredScore{
				Exact: kwScore,
				Fuzzy: descSim,
				Final: final,
			},
			MatchedKeywords: intersectKeywords(queryKeywords, feature.Keywords),
			Feature:         feature,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// keywordOverlap counts query keywords that fuzzily match any feature
// keyword, normalized by query keyword count and capped at 1.0.
func (b *Basic) keywordOverlap(queryKeywords, featureKeywords []string) float64 {
	if len(queryKeywords) == 0 || len(featureKeywords) == 0 {
		return 0
	}

	matched := 0
	for _, qk := range queryKeywords {
		for _, fk := range featureKeywords {
			if qk == fk || textproc.PartialRatio(qk, fk) > basicFuzzyThreshold {
				matched++
				break
			}
		}
	}

	score := float64(matched) / float64(len(queryKeywords))
	if score > 1.0 {
		score = 1.0
	}
	return score
}
