package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/matchpoint/ai/mock"
	"github.com/poiesic/matchpoint/core"
	"github.com/poiesic/matchpoint/storage"
	"github.com/poiesic/matchpoint/storage/badger"
)

func newTestManager(t *testing.T, opts ...Option) (*Manager, *mock.Embedder) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(); backend.Close() })

	embedder := mock.NewEmbedder()
	manager, err := NewManager(repo, embedder, opts...)
	require.NoError(t, err)
	t.Cleanup(manager.Release)

	return manager, embedder
}

func testFeature(id string) core.Feature {
	return core.Feature{
		ID:                  id,
		Name:                "Automated Surveys",
		Category:            "Voice of Customer",
		Description:         "Automated survey distribution across channels",
		Keywords:            []string{"survey", "feedback"},
		PainPointsAddressed: []string{"cannot collect feedback at scale"},
		UseCases:            []string{"post-purchase surveys"},
	}
}

func TestEmbed(t *testing.T) {
	manager, embedder := newTestManager(t, WithDimension(8))
	ctx := context.Background()

	t.Run("blank text yields zero vector without provider call", func(t *testing.T) {
		before := embedder.CallCount()
		vector, err := manager.Embed(ctx, "   ")
		require.NoError(t, err)
		assert.Equal(t, make([]float32, 8), vector)
		assert.Equal(t, before, embedder.CallCount())
	})

	t.Run("non-blank text calls the provider", func(t *testing.T) {
		before := embedder.CallCount()
		vector, err := manager.Embed(ctx, "collect feedback")
		require.NoError(t, err)
		assert.NotEmpty(t, vector)
		assert.Equal(t, before+1, embedder.CallCount())
	})
}

func TestEmbedWithoutEmbedder(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() { repo.Close(); backend.Close() }()

	manager, err := NewManager(repo, nil)
	require.NoError(t, err)
	defer manager.Release()

	ctx := context.Background()

	_, err = manager.Embed(ctx, "anything")
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	f := testFeature("voc-001")
	_, err = manager.BuildFeature(ctx, &f)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = manager.BuildAll(ctx, []core.Feature{f})
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestBuildFeature(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	feature := testFeature("voc-001")
	bundle, err := manager.BuildFeature(ctx, &feature)
	require.NoError(t, err)

	assert.Equal(t, "voc-001", bundle.FeatureID)
	assert.NotEmpty(t, bundle.Description)
	assert.NotEmpty(t, bundle.PainPoints)
	assert.NotEmpty(t, bundle.Keywords)
	assert.NotEmpty(t, bundle.UseCases)
	assert.NotEmpty(t, bundle.Combined)

	assert.Equal(t, "Automated Surveys", bundle.Metadata.Name)
	assert.Equal(t, core.Fingerprint(feature.CombinedText()), bundle.Metadata.Fingerprint)
	assert.False(t, bundle.Metadata.CreatedAt.IsZero())
}

func TestBuildFeatureBlankFields(t *testing.T) {
	manager, _ := newTestManager(t, WithDimension(4))
	ctx := context.Background()

	feature := core.Feature{
		ID:          "voc-002",
		Name:        "Review Monitoring",
		Category:    "Voice of Customer",
		Description: "Monitor reviews",
	}

	bundle, err := manager.BuildFeature(ctx, &feature)
	require.NoError(t, err)

	// Blank fields become zero vectors at the configured dimension.
	assert.Equal(t, make([]float32, 4), bundle.PainPoints)
	assert.Equal(t, make([]float32, 4), bundle.UseCases)
	assert.NotEqual(t, make([]float32, 4), bundle.Combined)
}

func TestBuildAll(t *testing.T) {
	t.Run("builds every feature", func(t *testing.T) {
		manager, _ := newTestManager(t)
		ctx := context.Background()

		features := []core.Feature{testFeature("voc-001"), testFeature("voc-002"), testFeature("voc-003")}
		embeddings, err := manager.BuildAll(ctx, features)
		require.NoError(t, err)

		require.Len(t, embeddings, 3)
		for _, f := range features {
			assert.Contains(t, embeddings, f.ID)
		}
	})

	t.Run("skips features that fail to embed", func(t *testing.T) {
		manager, embedder := newTestManager(t)
		ctx := context.Background()

		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			for _, text := range texts {
				if text == "poison" {
					return nil, errors.New("provider rejected input")
				}
			}
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{1, 2, 3}
			}
			return vectors, nil
		}

		bad := testFeature("voc-bad")
		bad.Description = "poison"
		bad.PainPointsAddressed = nil
		bad.Keywords = nil
		bad.UseCases = nil

		embeddings, err := manager.BuildAll(ctx, []core.Feature{testFeature("voc-001"), bad})
		require.NoError(t, err)

		assert.Len(t, embeddings, 1)
		assert.Contains(t, embeddings, "voc-001")
		assert.NotContains(t, embeddings, "voc-bad")
	})
}

func TestPersistRestore(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	t.Run("restore on empty cache yields empty map", func(t *testing.T) {
		embeddings, err := manager.Restore(ctx)
		require.NoError(t, err)
		assert.Empty(t, embeddings)
	})

	t.Run("round trip", func(t *testing.T) {
		built, err := manager.BuildAll(ctx, []core.Feature{testFeature("voc-001"), testFeature("voc-002")})
		require.NoError(t, err)
		require.NoError(t, manager.Persist(ctx, built))

		restored, err := manager.Restore(ctx)
		require.NoError(t, err)
		require.Len(t, restored, 2)
		assert.Equal(t, built["voc-001"].Combined, restored["voc-001"].Combined)
		assert.Equal(t, built["voc-001"].Metadata.Fingerprint, restored["voc-001"].Metadata.Fingerprint)
	})
}

func TestGet(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	feature := testFeature("voc-001")
	bundle, err := manager.UpdateFeature(ctx, &feature)
	require.NoError(t, err)

	got, err := manager.Get(ctx, "voc-001")
	require.NoError(t, err)
	assert.Equal(t, bundle.Combined, got.Combined)

	_, err = manager.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStats(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	stats, err := manager.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.False(t, stats.CacheExists)

	built, err := manager.BuildAll(ctx, []core.Feature{testFeature("voc-001")})
	require.NoError(t, err)
	require.NoError(t, manager.Persist(ctx, built))

	stats, err = manager.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
	assert.True(t, stats.CacheExists)
	assert.Equal(t, 384, stats.Dimension)
}

func TestVerify(t *testing.T) {
	manager, _ := newTestManager(t)
	ctx := context.Background()

	current := testFeature("voc-001")
	built, err := manager.BuildAll(ctx, []core.Feature{current})
	require.NoError(t, err)
	require.NoError(t, manager.Persist(ctx, built))

	t.Run("unchanged catalog is clean", func(t *testing.T) {
		stale, missing, err := manager.Verify(ctx, []core.Feature{current})
		require.NoError(t, err)
		assert.Empty(t, stale)
		assert.Empty(t, missing)
	})

	t.Run("changed text reports stale", func(t *testing.T) {
		changed := current
		changed.Description = "Completely rewritten description"

		stale, missing, err := manager.Verify(ctx, []core.Feature{changed})
		require.NoError(t, err)
		assert.Equal(t, []string{"voc-001"}, stale)
		assert.Empty(t, missing)
	})

	t.Run("uncached feature reports missing", func(t *testing.T) {
		stale, missing, err := manager.Verify(ctx, []core.Feature{current, testFeature("voc-999")})
		require.NoError(t, err)
		assert.Empty(t, stale)
		assert.Equal(t, []string{"voc-999"}, missing)
	})
}
