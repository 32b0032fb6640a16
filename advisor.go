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
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/matchpoint/ai"
	"github.com/poiesic/matchpoint/ai/openai"
	"github.com/poiesic/matchpoint/catalog"
	"github.com/poiesic/matchpoint/core"
	"github.com/poiesic/matchpoint/embedding"
	"github.com/poiesic/matchpoint/match"
	"github.com/poiesic/matchpoint/storage"
	"github.com/poiesic/matchpoint/storage/badger"
)

// Version is the advisor release version reported by Info.
const Version = "1.0.0"

// Advisor is the top-level entry point. It owns the catalog, the embedding
// cache, the AI provider, and the matcher, and tears them all down on Close.
type Advisor struct {
	backend *badger.Backend
	repo    storage.EmbeddingRepository
	catalog *catalog.Store
	manager *embedding.Manager
	matcher match.Matcher
	engine  *match.Engine // nil when running on the basic matcher
	logger  *slog.Logger
}

// AdvisorOption configures an Advisor.
type AdvisorOption func(*advisorOptions)

type advisorOptions struct {
	aiConfig   *ai.Config
	embedder   ai.Embedder
	forceBasic bool
	logger     *slog.Logger
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) AdvisorOption {
	return func(o *advisorOptions) {
		o.aiConfig = config
	}
}

// WithEmbedder injects an embedder directly, bypassing provider
// construction. Intended for tests.
func WithEmbedder(embedder ai.Embedder) AdvisorOption {
	return func(o *advisorOptions) {
		o.embedder = embedder
	}
}

// WithBasicMatching forces the text-only matcher even when an embedding
// provider is available.
func WithBasicMatching() AdvisorOption {
	return func(o *advisorOptions) {
		o.forceBasic = true
	}
}

// WithAdvisorLogger sets a custom logger.
// Default is slog.Default().
func WithAdvisorLogger(logger *slog.Logger) AdvisorOption {
	return func(o *advisorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New constructs an Advisor from a catalog file and a cache path. It tries
// the full layered engine first; when the engine cannot be constructed (no
// reachable provider, unreadable cache) it logs the failure and falls back
// to the basic matcher. The strategy is chosen once here and never switches
// per request.
func New(ctx context.Context, catalogPath, cachePath string, opts ...AdvisorOption) (*Advisor, error) {
	options := &advisorOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}

	a := &Advisor{
		catalog: store,
		logger:  options.logger,
	}

	if !options.forceBasic {
		if err := a.initEngine(ctx, cachePath, options); err != nil {
			a.logger.Warn("enhanced matching unavailable, falling back to basic text matching", "err", err)
			a.teardownEngine()
		}
	}

	if a.matcher == nil {
		basic, err := match.NewBasic(store, a.logger)
		if err != nil {
			return nil, err
		}
		a.matcher = basic
	}

	a.logger.Info("advisor ready",
		"features", store.Len(), "method", a.matcher.Method())
	return a, nil
}

func (a *Advisor) initEngine(ctx context.Context, cachePath string, options *advisorOptions) error {
	backend, err := badger.OpenBackend(cachePath, cachePath == "")
	if err != nil {
		return err
	}
	a.backend = backend

	repo, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		return err
	}
	a.repo = repo

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return err
		}
	}

	manager, err := embedding.NewManager(repo, embedder,
		embedding.WithDimension(options.aiConfig.Dimension),
		embedding.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.manager = manager

	engine, err := match.NewEngine(ctx, a.catalog, manager, match.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.engine = engine
	a.matcher = engine
	return nil
}

func (a *Advisor) teardownEngine() {
	if a.engine != nil {
		a.engine.Release()
		a.engine = nil
	}
	if a.manager != nil {
		a.manager.Release()
		a.manager = nil
	}
	if a.repo != nil {
		a.repo.Close()
		a.repo = nil
	}
	if a.backend != nil {
		a.backend.Close()
		a.backend = nil
	}
	a.matcher = nil
}

// Solution is one recommended feature with guidance attached.
type Solution struct {
	FeatureID                string            `json:"feature_id"`
	SolutionName             string            `json:"solution_name"`
	Category                 string            `json:"category"`
	Subcategory              string            `json:"subcategory,omitempty"`
	ConfidenceScore          float64           `json:"confidence_score"`
	ConfidenceLevel          string            `json:"confidence_level"`
	HowItHelps               string            `json:"how_it_helps"`
	ImplementationSuggestion string            `json:"implementation_suggestion"`
	RelevanceExplanation     string            `json:"relevance_explanation"`
	MatchedKeywords          []string          `json:"matched_keywords,omitempty"`
	Explanation              match.Explanation `json:"explanation"`
}

// Summary aggregates an analysis run.
type Summary struct {
	Complexity             string         `json:"pain_point_complexity"`
	WordCount              int            `json:"word_count"`
	SolutionsFound         int            `json:"solutions_found"`
	TopConfidence          float64        `json:"top_confidence"`
	CategoryDistribution   map[string]int `json:"category_distribution"`
	ConfidenceDistribution map[string]int `json:"confidence_distribution"`
}

// Analysis is the complete result of one pain-point analysis.
type Analysis struct {
	Method    string     `json:"matching_method"`
	PainPoint string     `json:"pain_point"`
	Solutions []Solution `json:"solutions"`
	Summary   Summary    `json:"summary"`
}

// AnalyzePainPoint matches the pain-point description against the catalog
// and wraps the raw matches in solution guidance and a run summary.
func (a *Advisor) AnalyzePainPoint(ctx context.Context, painPoint string, maxSolutions int) (*Analysis, error) {
	results, err := a.matcher.FindMatches(ctx, painPoint, maxSolutions)
	if err != nil {
		return nil, err
	}

	solutions := make([]Solution, 0, len(results))
	for _, result := range results {
		solutions = append(solutions, a.solutionFromMatch(result, painPoint))
	}

	return &Analysis{
		Method:    a.matcher.Method(),
		PainPoint: painPoint,
		Solutions: solutions,
		Summary:   summarize(painPoint, solutions),
	}, nil
}

func (a *Advisor) solutionFromMatch(result *core.MatchResult, painPoint string) Solution {
	solution := Solution{
		FeatureID:            result.FeatureID,
		SolutionName:         result.FeatureName,
		ConfidenceScore:      result.Confidence,
		ConfidenceLevel:      string(result.Level),
		RelevanceExplanation: result.Reasoning,
		MatchedKeywords:      result.MatchedKeywords,
		Explanation:          match.ExplainMatch(result),
	}
	if result.Feature != nil {
		solution.Category = result.Feature.Category
		solution.Subcategory = result.Feature.Subcategory
		solution.HowItHelps = howItHelps(result.Feature, painPoint)
		solution.ImplementationSuggestion = implementationSuggestion(result.Feature.Category)
	}
	return solution
}

// howItHelps contextualizes the feature description against the specific
// pain point when a common theme is recognizable.
func howItHelps(feature *core.Feature, painPoint string) string {
	lower := strings.ToLower(painPoint)
	category := strings.ToLower(feature.Category)

	switch {
	case strings.Contains(lower, "feedback") && category == "voice of customer":
		return feature.Description + " This directly addresses your feedback collection challenges."
	case strings.Contains(lower, "support") && category == "ai customer service":
		return feature.Description + " This can reduce the burden on your support team."
	case strings.Contains(lower, "customer") && strings.Contains(lower, "analysis"):
		return feature.Description + " This provides the customer insights you need."
	default:
		return feature.Description
	}
}

var implementationSuggestions = map[string]string{
	"voice of customer":   "Start with a pilot program focusing on your most important customer touchpoints.",
	"ai customer service": "Begin with FAQ automation for your most common support queries.",
	"insights":            "Start by connecting your existing data sources for immediate visibility.",
	"customer 360":        "Begin with integrating your primary customer interaction channels.",
	"ai & automation":     "Start with automating your most repetitive customer service tasks.",
}

func implementationSuggestion(category string) string {
	if suggestion, ok := implementationSuggestions[strings.ToLower(category)]; ok {
		return suggestion
	}
	return "Consider implementing this feature as part of your customer experience improvement initiative."
}

// summarize builds the run summary: complexity buckets by word count
// (>20 high, >10 medium, else low) plus distributions over the solutions.
func summarize(painPoint string, solutions []Solution) Summary {
	wordCount := len(strings.Fields(painPoint))
	complexity := "low"
	switch {
	case wordCount > 20:
		complexity = "high"
	case wordCount > 10:
		complexity = "medium"
	}

	categories := make(map[string]int)
	levels := make(map[string]int)
	for _, solution := range solutions {
		categories[solution.Category]++
		levels[solution.ConfidenceLevel]++
	}

	summary := Summary{
		Complexity:             complexity,
		WordCount:              wordCount,
		SolutionsFound:         len(solutions),
		CategoryDistribution:   categories,
		ConfidenceDistribution: levels,
	}
	if len(solutions) > 0 {
		summary.TopConfidence = solutions[0].ConfidenceScore
	}
	return summary
}

// FeatureByID returns the catalog feature with the given id.
func (a *Advisor) FeatureByID(id string) (*core.Feature, bool) {
	return a.catalog.FeatureByID(id)
}

// Categories returns per-category summaries, largest first.
func (a *Advisor) Categories() []catalog.CategorySummary {
	return a.catalog.Categories()
}

// FeaturesByCategory returns all features under the named category,
// matched case-insensitively.
func (a *Advisor) FeaturesByCategory(name string) []*core.Feature {
	return a.catalog.FeaturesByCategory(name)
}

// RebuildCache re-embeds the full catalog and persists the fresh vectors.
// Only valid on the layered engine.
func (a *Advisor) RebuildCache(ctx context.Context) error {
	if a.engine == nil {
		return fmt.Errorf("cache rebuild requires enhanced matching (current method: %s)", a.matcher.Method())
	}
	return a.engine.Reload(ctx)
}

// VerifyCache reports feature ids whose cached vectors were built from
// different text than the current catalog (stale), and ids with no cached
// vectors at all (missing). It never modifies the cache.
func (a *Advisor) VerifyCache(ctx context.Context) (stale, missing []string, err error) {
	if a.manager == nil {
		return nil, nil, fmt.Errorf("cache verification requires enhanced matching (current method: %s)", a.matcher.Method())
	}
	return a.manager.Verify(ctx, a.catalog.Features())
}

// Info describes the advisor's configuration and data.
type Info struct {
	Version        string `json:"version"`
	MatchingMethod string `json:"matching_method"`
	FeatureCount   int    `json:"feature_count"`
	CategoryCount  int    `json:"category_count"`
}

// AdvisorInfo reports version and configuration details.
func (a *Advisor) AdvisorInfo() Info {
	return Info{
		Version:        Version,
		MatchingMethod: a.matcher.Method(),
		FeatureCount:   a.catalog.Len(),
		CategoryCount:  len(a.catalog.Categories()),
	}
}

// Manager exposes the embedding manager, or nil when running on the
// basic matcher.
func (a *Advisor) Manager() *embedding.Manager {
	return a.manager
}

// Matcher exposes the active matcher.
func (a *Advisor) Matcher() match.Matcher {
	return a.matcher
}

// Close releases the matcher, provider pool, and storage.
func (a *Advisor) Close() error {
	if a.engine != nil {
		a.engine.Release()
	}
	if a.manager != nil {
		a.manager.Release()
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.logger.Error("error closing embedding repository", "err", err)
			return err
		}
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("error closing cache backend", "err", err)
			return err
		}
	}
	return nil
}
