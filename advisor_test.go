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

package matchpoint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/matchpoint/ai/mock"
)

const testCatalogJSON = `{
  "features": [
    {
      "id": "voc-001",
      "name": "Automated Surveys",
      "category": "Voice of Customer",
      "subcategory": "Surveys",
      "description": "collect customer feedback with automated surveys across channels",
      "keywords": ["survey", "feedback", "collect", "response"],
      "pain_points_addressed": ["low survey response rates", "cannot collect feedback"],
      "use_cases": ["post purchase surveys"],
      "benefits": ["higher response rates"]
    },
    {
      "id": "acs-001",
      "name": "AI Inbox",
      "category": "AI Customer Service",
      "description": "automate support ticket routing for agents",
      "keywords": ["support", "ticket", "automation", "routing"],
      "pain_points_addressed": ["support agents overloaded with tickets"]
    }
  ]
}`

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogJSON), 0o644))
	return path
}

// countEmbedder embeds text as word counts over a small fixed vocabulary, so
// similarity between texts is fully determined by shared words.
func countEmbedder() *mock.Embedder {
	vocab := []string{
		"survey", "surveys", "feedback", "collect", "customer", "response",
		"rates", "support", "ticket", "tickets", "agents", "routing", "low",
	}
	embed := func(text string) []float32 {
		vector := make([]float32, len(vocab))
		for _, word := range strings.Fields(strings.ToLower(text)) {
			for i, vocabWord := range vocab {
				if strings.Trim(word, ".,!?") == vocabWord {
					vector[i]++
				}
			}
		}
		return vector
	}

	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return embed(text), nil
	}
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = embed(text)
		}
		return vectors, nil
	}
	return embedder
}

func newTestAdvisor(t *testing.T, opts ...AdvisorOption) *Advisor {
	t.Helper()
	opts = append([]AdvisorOption{WithEmbedder(countEmbedder())}, opts...)
	advisor, err := New(context.Background(), writeTestCatalog(t), "", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { advisor.Close() })
	return advisor
}

func TestNewAdvisor(t *testing.T) {
	t.Run("missing catalog fails", func(t *testing.T) {
		_, err := New(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "")
		assert.Error(t, err)
	})

	t.Run("enhanced matching when embedder works", func(t *testing.T) {
		advisor := newTestAdvisor(t)
		assert.Equal(t, "layered", advisor.Matcher().Method())
		assert.NotNil(t, advisor.Manager())
	})

	t.Run("falls back to basic when embedder fails", func(t *testing.T) {
		broken := mock.NewEmbedder()
		broken.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("provider unreachable")
		}

		advisor, err := New(context.Background(), writeTestCatalog(t), "", WithEmbedder(broken))
		require.NoError(t, err)
		defer advisor.Close()

		assert.Equal(t, "basic", advisor.Matcher().Method())
		assert.Nil(t, advisor.Manager())
	})

	t.Run("basic matching can be forced", func(t *testing.T) {
		advisor := newTestAdvisor(t, WithBasicMatching())
		assert.Equal(t, "basic", advisor.Matcher().Method())
	})
}

func TestAnalyzePainPoint(t *testing.T) {
	advisor := newTestAdvisor(t)
	ctx := context.Background()

	painPoint := "We cannot collect customer feedback and our survey response rates are low"
	analysis, err := advisor.AnalyzePainPoint(ctx, painPoint, 5)
	require.NoError(t, err)

	assert.Equal(t, "layered", analysis.Method)
	assert.Equal(t, painPoint, analysis.PainPoint)
	require.NotEmpty(t, analysis.Solutions)

	top := analysis.Solutions[0]
	assert.Equal(t, "voc-001", top.FeatureID)
	assert.Equal(t, "Automated Surveys", top.SolutionName)
	assert.Equal(t, "Voice of Customer", top.Category)
	assert.NotEmpty(t, top.ConfidenceLevel)
	assert.NotEmpty(t, top.RelevanceExplanation)

	// Feedback wording against a Voice of Customer feature gets the
	// contextualized guidance.
	assert.Contains(t, top.HowItHelps, "feedback collection challenges")
	assert.Contains(t, top.ImplementationSuggestion, "pilot program")

	summary := analysis.Summary
	assert.Equal(t, len(analysis.Solutions), summary.SolutionsFound)
	assert.Equal(t, top.ConfidenceScore, summary.TopConfidence)
	assert.Equal(t, 12, summary.WordCount)
	assert.Equal(t, "medium", summary.Complexity)
	assert.Equal(t, 1, summary.CategoryDistribution["Voice of Customer"])
	assert.NotEmpty(t, summary.ConfidenceDistribution)
}

func TestAnalyzePainPointEmpty(t *testing.T) {
	advisor := newTestAdvisor(t)

	_, err := advisor.AnalyzePainPoint(context.Background(), "  ", 5)
	assert.Error(t, err)
}

func TestSummaryComplexity(t *testing.T) {
	tests := []struct {
		name       string
		painPoint  string
		complexity string
	}{
		{"short is low", "feedback is hard", "low"},
		{"medium band", strings.Repeat("word ", 15), "medium"},
		{"long is high", strings.Repeat("word ", 25), "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := summarize(tt.painPoint, nil)
			assert.Equal(t, tt.complexity, summary.Complexity)
		})
	}
}

func TestAdvisorIntrospection(t *testing.T) {
	advisor := newTestAdvisor(t)

	t.Run("feature by id", func(t *testing.T) {
		feature, ok := advisor.FeatureByID("acs-001")
		require.True(t, ok)
		assert.Equal(t, "AI Inbox", feature.Name)
	})

	t.Run("categories", func(t *testing.T) {
		categories := advisor.Categories()
		require.Len(t, categories, 2)
	})

	t.Run("features by category", func(t *testing.T) {
		features := advisor.FeaturesByCategory("voice of customer")
		require.Len(t, features, 1)
		assert.Equal(t, "voc-001", features[0].ID)
	})

	t.Run("info", func(t *testing.T) {
		info := advisor.AdvisorInfo()
		assert.Equal(t, Version, info.Version)
		assert.Equal(t, "layered", info.MatchingMethod)
		assert.Equal(t, 2, info.FeatureCount)
		assert.Equal(t, 2, info.CategoryCount)
	})
}

func TestAdvisorCacheOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("verify clean cache", func(t *testing.T) {
		advisor := newTestAdvisor(t)
		stale, missing, err := advisor.VerifyCache(ctx)
		require.NoError(t, err)
		assert.Empty(t, stale)
		assert.Empty(t, missing)
	})

	t.Run("rebuild succeeds on enhanced matching", func(t *testing.T) {
		advisor := newTestAdvisor(t)
		assert.NoError(t, advisor.RebuildCache(ctx))
	})

	t.Run("cache operations rejected on basic matching", func(t *testing.T) {
		advisor := newTestAdvisor(t, WithBasicMatching())
		assert.Error(t, advisor.RebuildCache(ctx))
		_, _, err := advisor.VerifyCache(ctx)
		assert.Error(t, err)
	})
}
