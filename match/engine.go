package match

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/matchpoint/catalog"
	"github.com/poiesic/matchpoint/core"
	"github.com/poiesic/matchpoint/embedding"
	"github.com/poiesic/matchpoint/textproc"
)

// Layer weights for score fusion. They sum to 1.0; the semantic layer
// dominates because it best captures free-form phrasing.
const (
	ExactWeight    = 0.20
	FuzzyWeight    = 0.25
	SemanticWeight = 0.35
	DomainWeight   = 0.15
	IntentWeight   = 0.05
)

// ResultFloor is the minimum fused score a feature needs to appear in
// results. Anything below is silently dropped.
const ResultFloor = core.LowConfidenceThreshold

const defaultMaxResults = 5

// Engine is the full five-layer matcher. It is stateless across requests:
// each query runs one full catalog scan against the read-only catalog and
// the embedding cache loaded at construction.
type Engine struct {
	catalog    *catalog.Store
	processor  *textproc.Processor
	manager    *embedding.Manager
	embeddings map[string]*core.FeatureEmbedding
	embedMu    sync.RWMutex
	pool       *ants.Pool
	logger     *slog.Logger
}

var _ Matcher = (*Engine)(nil)

// EngineOption configures an Engine.
type EngineOption func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithScoringPoolSize sets the worker pool size for per-feature scoring.
// Scoring is independent per feature and read-only, so fanning it out does
// not change results; the sort happens after all scores are collected.
func WithScoringPoolSize(size int) EngineOption {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// NewEngine creates the five-layer matching engine. The embedding cache is
// restored from storage; when no cache exists it is built from the catalog
// and persisted, which requires a working embedding provider.
func NewEngine(ctx context.Context, store *catalog.Store, manager *embedding.Manager, opts ...EngineOption) (*Engine, error) {
	if store == nil {
		return nil, ErrCatalogRequired
	}
	if manager == nil {
		return nil, ErrManagerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		catalog:   store,
		processor: textproc.NewProcessor(),
		manager:   manager,
		pool:      pool,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	embeddings, err := manager.Restore(ctx)
	if err != nil {
		e.Release()
		return nil, err
	}
	if len(embeddings) == 0 {
		e.logger.Warn("no embedding cache found, building embeddings")
		embeddings, err = manager.BuildAll(ctx, store.Features())
		if err != nil {
			e.Release()
			return nil, err
		}
		if len(embeddings) == 0 && store.Len() > 0 {
			e.Release()
			return nil, errors.New("embedding build produced no vectors, provider may be unreachable")
		}
		if err := manager.Persist(ctx, embeddings); err != nil {
			e.Release()
			return nil, err
		}
	}
	e.embeddings = embeddings

	e.logger.Info("matching engine initialized",
		"features", store.Len(), "embeddings", len(embeddings))
	return e, nil
}

// Method identifies the full matching strategy.
func (e *Engine) Method() string {
	return "layered"
}

// FindMatches runs the five-layer analysis for a pain-point description and
// returns results at or above the floor, ranked by fused score descending.
func (e *Engine) FindMatches(ctx context.Context, painPoint string, maxResults int) ([]*core.MatchResult, error) {
	if strings.TrimSpace(painPoint) == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	features := e.catalog.Features()
	if len(features) == 0 {
		e.logger.Warn("no features loaded for matching")
		return []*core.MatchResult{}, nil
	}

	query := e.processor.ProcessQuery(painPoint)

	// The provider call is the only potentially slow step. On failure the
	// semantic layer is omitted (scored 0); the query still runs.
	queryEmbedding, err := e.manager.Embed(ctx, painPoint)
	if err != nil {
		e.logger.Warn("failed to create query embedding, semantic layer omitted", "err", err)
		queryEmbedding = nil
	}
	query.Embedding = queryEmbedding

	e.embedMu.RLock()
	embeddings := e.embeddings
	e.embedMu.RUnlock()

	// Score each feature concurrently, collect by index, then filter and
	// sort, so the fan-out never changes ordering.
	scored := make([]*core.MatchResult, len(features))
	var wg sync.WaitGroup
	for i := range features {
		i := i
		feature := &features[i]
		bundle, ok := embeddings[feature.ID]
		if !ok {
			e.logger.Warn("no embedding found for feature, excluding from results", "feature", feature.ID)
			continue
		}

		wg.Add(1)
		submitErr := e.pool.Submit(func() {
			defer wg.Done()
			scored[i] = e.scoreFeature(query, feature, bundle)
		})
		if submitErr != nil {
			wg.Done()
			scored[i] = e.scoreFeature(query, feature, bundle)
		}
	}
	wg.Wait()

	results := make([]*core.MatchResult, 0, len(scored))
	for _, result := range scored {
		if result != nil && result.Confidence >= ResultFloor {
			results = append(results, result)
		}
	}

	// Stable sort keeps catalog order on equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// scoreFeature computes the five layer scores for one feature and fuses them
// into a MatchResult.
func (e *Engine) scoreFeature(query *core.ProcessedQuery, feature *core.Feature, bundle *core.FeatureEmbedding) *core.MatchResult {
	layers := core.LayeredScore{}

	// Layer 1: exact keyword overlap
	layers.Exact = e.processor.ExactMatchScore(query.Keywords, feature.Keywords)

	// Layer 2: fuzzy similarity against keywords, description words, and
	// pain-point phrases
	fuzzyTargets := make([]string, 0, len(feature.Keywords)+len(feature.PainPointsAddressed))
	fuzzyTargets = append(fuzzyTargets, feature.Keywords...)
	fuzzyTargets = append(fuzzyTargets, strings.Fields(feature.Description)...)
	fuzzyTargets = append(fuzzyTargets, feature.PainPointsAddressed...)
	layers.Fuzzy = e.processor.FuzzyMatchScore(query.Keywords, fuzzyTargets)

	// Layer 3: semantic similarity between combined embeddings
	if query.Embedding != nil {
		layers.Semantic = embedding.SemanticScore(embedding.Cosine(query.Embedding, bundle.Combined))
	}

	// Layer 4: business-domain relevance of the feature category
	layers.Domain = e.processor.DomainRelevance(query.Intent, feature.Category)

	// Layer 5: best single pain-point phrase alignment
	for _, phrase := range feature.PainPointsAddressed {
		phraseScore := e.processor.FuzzyMatchScore(query.Keywords, e.processor.ExtractKeywords(phrase))
		if phraseScore > layers.Intent {
			layers.Intent = phraseScore
		}
	}

	layers.Final = fuseScores(layers)
	layers.Reasoning = e.processor.ReasoningFragments(layers)

	return &core.MatchResult{
		FeatureID:       feature.ID,
		FeatureName:     feature.Name,
		Confidence:      layers.Final,
		Level:           core.ConfidenceFromScore(layers.Final),
		Reasoning:       e.processor.ExplainScore(layers),
		Layers:          layers,
		MatchedKeywords: intersectKeywords(query.Keywords, feature.Keywords),
		Feature:         feature,
	}
}

// Reload rebuilds the embedding cache from the current catalog, persists it,
// and swaps it in. This is the explicit rebuild operation; it is the only
// writer path and never runs implicitly.
func (e *Engine) Reload(ctx context.Context) error {
	embeddings, err := e.manager.BuildAll(ctx, e.catalog.Features())
	if err != nil {
		return err
	}
	if err := e.manager.Persist(ctx, embeddings); err != nil {
		return err
	}

	e.embedMu.Lock()
	e.embeddings = embeddings
	e.embedMu.Unlock()

	e.logger.Info("embedding cache reloaded", "embeddings", len(embeddings))
	return nil
}

// Stats reports matcher configuration and data coverage.
func (e *Engine) Stats() Stats {
	e.embedMu.RLock()
	embedded := len(e.embeddings)
	e.embedMu.RUnlock()

	return Stats{
		TotalFeatures:          e.catalog.Len(),
		FeaturesWithEmbeddings: embedded,
		Weights:                Weights(),
	}
}

// Release releases the scoring pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Stats describes the matcher's data coverage and configuration.
type Stats struct {
	TotalFeatures          int
	FeaturesWithEmbeddings int
	Weights                map[string]float64
}

// Weights returns the fixed layer weights keyed by layer name.
func Weights() map[string]float64 {
	return map[string]float64{
		"exact_match":    ExactWeight,
		"fuzzy_match":    FuzzyWeight,
		"semantic_match": SemanticWeight,
		"domain_match":   DomainWeight,
		"intent_match":   IntentWeight,
	}
}

// fuseScores combines the five layer scores with the fixed weights,
// capping the result at 1.0.
func fuseScores(layers core.LayeredScore) float64 {
	final := layers.Exact*ExactWeight +
		layers.Fuzzy*FuzzyWeight +
		layers.Semantic*SemanticWeight +
		layers.Domain*DomainWeight +
		layers.Intent*IntentWeight
	if final > 1.0 {
		final = 1.0
	}
	return final
}

// intersectKeywords returns the literally-overlapping keywords, preserving
// query order.
func intersectKeywords(queryKeywords, featureKeywords []string) []string {
	featureSet := make(map[string]bool, len(featureKeywords))
	for _, keyword := range featureKeywords {
		featureSet[keyword] = true
	}

	var overlap []string
	for _, keyword := range queryKeywords {
		if featureSet[keyword] {
			overlap = append(overlap, keyword)
			featureSet[keyword] = false // dedupe
		}
	}
	return overlap
}
