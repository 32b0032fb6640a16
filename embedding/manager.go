package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/matchpoint/ai"
	"github.com/poiesic/matchpoint/core"
	"github.com/poiesic/matchpoint/storage"
)

const defaultDimension = 384

// Manager builds, persists, and retrieves per-feature embedding bundles.
// It owns the only mutable long-lived state in the system: the durable cache
// behind the repository. Reads may happen concurrently; the bulk build is the
// single writer path and refuses to run concurrently with itself.
type Manager struct {
	repository storage.EmbeddingRepository
	embedder   ai.Embedder
	pool       *ants.Pool
	dimension  int
	buildMu    sync.Mutex
	logger     *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager) error

// WithPoolSize sets the worker pool size for bulk builds.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(m *Manager) error {
		if size < 1 {
			size = 1
		}
		if m.pool != nil {
			m.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// WithDimension sets the provider's vector dimensionality, used for the zero
// vectors that stand in for blank text. Default is 384.
func WithDimension(dim int) Option {
	return func(m *Manager) error {
		if dim < 1 {
			return fmt.Errorf("dimension must be positive, got %d", dim)
		}
		m.dimension = dim
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewManager creates an embedding cache manager. The embedder may be nil for
// read-only use of an existing cache; build and embed operations then fail
// with ErrEmbedderRequired.
func NewManager(repository storage.EmbeddingRepository, embedder ai.Embedder, opts ...Option) (*Manager, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		repository: repository,
		embedder:   embedder,
		pool:       pool,
		dimension:  defaultDimension,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			m.Release()
			return nil, err
		}
	}

	return m, nil
}

// Embed generates an embedding for a text string. Blank text returns a zero
// vector of the configured dimensionality without invoking the provider.
func (m *Manager) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return make([]float32, m.dimension), nil
	}
	if m.embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return m.embedder.EmbedText(ctx, text)
}

// BuildFeature builds the full embedding bundle for one feature: four
// field-level vectors plus the combined vector, each embedded independently
// from its source text. Blank fields become zero vectors.
func (m *Manager) BuildFeature(ctx context.Context, feature *core.Feature) (*core.FeatureEmbedding, error) {
	if m.embedder == nil {
		return nil, ErrEmbedderRequired
	}

	sources := []string{
		feature.Description,
		feature.PainPointsText(),
		feature.KeywordsText(),
		feature.UseCasesText(),
		feature.CombinedText(),
	}

	vectors := make([][]float32, len(sources))
	var texts []string
	var indices []int
	for i, source := range sources {
		source = strings.TrimSpace(source)
		if source == "" {
			vectors[i] = make([]float32, m.dimension)
			continue
		}
		texts = append(texts, source)
		indices = append(indices, i)
	}

	if len(texts) > 0 {
		embedded, err := m.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return nil, err
		}
		if len(embedded) != len(texts) {
			return nil, fmt.Errorf("embedding result mismatch. expected %d, received %d", len(texts), len(embedded))
		}
		for j, i := range indices {
			vectors[i] = embedded[j]
		}
	}

	return &core.FeatureEmbedding{
		FeatureID:   feature.ID,
		Description: vectors[0],
		PainPoints:  vectors[1],
		Keywords:    vectors[2],
		UseCases:    vectors[3],
		Combined:    vectors[4],
		Metadata: core.EmbeddingMetadata{
			Name:        feature.Name,
			Category:    feature.Category,
			Subcategory: feature.Subcategory,
			Fingerprint: core.Fingerprint(feature.CombinedText()),
			CreatedAt:   time.Now().UTC(),
		},
	}, nil
}

// BuildAll builds embedding bundles for every feature, fanned out across the
// worker pool. A feature that fails to embed is logged and skipped; the build
// never aborts on individual failures. Returns ErrBuildInProgress when
// another build is already running.
func (m *Manager) BuildAll(ctx context.Context, features []core.Feature) (map[string]*core.FeatureEmbedding, error) {
	if m.embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if !m.buildMu.TryLock() {
		return nil, ErrBuildInProgress
	}
	defer m.buildMu.Unlock()

	m.logger.Info("building embeddings", "features", len(features))

	results := make(map[string]*core.FeatureEmbedding, len(features))
	var resultsMu sync.Mutex
	var wg sync.WaitGroup

	for i := range features {
		feature := &features[i]
		wg.Add(1)
		err := m.pool.Submit(func() {
			defer wg.Done()
			bundle, err := m.BuildFeature(ctx, feature)
			if err != nil {
				m.logger.Error("failed to build embedding for feature", "feature", feature.ID, "err", err)
				return
			}
			resultsMu.Lock()
			results[feature.ID] = bundle
			resultsMu.Unlock()
		})
		if err != nil {
			wg.Done()
			m.logger.Error("failed to submit embedding task", "feature", feature.ID, "err", err)
		}
	}
	wg.Wait()

	m.logger.Info("embedding build complete", "built", len(results), "skipped", len(features)-len(results))
	return results, nil
}

// Persist writes a bundle map to the durable cache.
func (m *Manager) Persist(ctx context.Context, embeddings map[string]*core.FeatureEmbedding) error {
	if err := m.repository.PutEmbeddings(ctx, embeddings); err != nil {
		m.logger.Error("failed to persist embeddings", "count", len(embeddings), "err", err)
		return err
	}
	m.logger.Info("persisted embeddings", "count", len(embeddings))
	return nil
}

// Restore bulk-loads the cached bundles.
// Returns an empty map, not an error, when no cache exists.
func (m *Manager) Restore(ctx context.Context) (map[string]*core.FeatureEmbedding, error) {
	embeddings, err := m.repository.GetAllEmbeddings(ctx)
	if err != nil {
		return nil, err
	}
	m.logger.Info("restored embeddings from cache", "count", len(embeddings))
	return embeddings, nil
}

// UpdateFeature rebuilds and persists the bundle for a single feature.
func (m *Manager) UpdateFeature(ctx context.Context, feature *core.Feature) (*core.FeatureEmbedding, error) {
	bundle, err := m.BuildFeature(ctx, feature)
	if err != nil {
		return nil, err
	}
	if err := m.repository.PutEmbedding(ctx, bundle); err != nil {
		return nil, err
	}
	m.logger.Info("updated embedding for feature", "feature", feature.ID)
	return bundle, nil
}

// Get retrieves the cached bundle for one feature.
// Returns storage.ErrNotFound when the feature has no cached embedding.
func (m *Manager) Get(ctx context.Context, featureID string) (*core.FeatureEmbedding, error) {
	return m.repository.GetEmbedding(ctx, featureID)
}

// CacheStats describes the current state of the embedding cache.
type CacheStats struct {
	Count       int
	Dimension   int
	CacheExists bool
}

// Stats reports cache introspection data. Read-only, no side effects.
func (m *Manager) Stats(ctx context.Context) (*CacheStats, error) {
	embeddings, err := m.repository.GetAllEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CacheStats{
		Count:       len(embeddings),
		CacheExists: len(embeddings) > 0,
	}
	for _, bundle := range embeddings {
		stats.Dimension = len(bundle.Combined)
		break
	}
	return stats, nil
}

// Verify compares cached fingerprints against the current catalog text.
// Returns the ids of stale bundles (text changed since the build) and of
// features missing from the cache entirely. The cache is never invalidated
// implicitly; rebuilding remains an explicit operation.
func (m *Manager) Verify(ctx context.Context, features []core.Feature) (stale, missing []string, err error) {
	embeddings, err := m.repository.GetAllEmbeddings(ctx)
	if err != nil {
		return nil, nil, err
	}

	for i := range features {
		feature := &features[i]
		bundle, ok := embeddings[feature.ID]
		if !ok {
			missing = append(missing, feature.ID)
			continue
		}
		if bundle.Metadata.Fingerprint != core.Fingerprint(feature.CombinedText()) {
			stale = append(stale, feature.ID)
		}
	}
	return stale, missing, nil
}

// Release releases the worker pool.
// The manager should not be used after calling Release.
func (m *Manager) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
}
