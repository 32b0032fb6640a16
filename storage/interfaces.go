package storage

import (
	"context"
	"io"

	"github.com/poiesic/matchpoint/core"
)

// EmbeddingRepository provides durable storage for per-feature embedding
// bundles, keyed by feature id. Implementations must be thread-safe and
// support concurrent reads; writes happen only on explicit (re)builds.
type EmbeddingRepository interface {
	// PutEmbedding stores or replaces the embedding bundle for one feature.
	PutEmbedding(ctx context.Context, embedding *core.FeatureEmbedding) error

	// PutEmbeddings stores or replaces multiple embedding bundles in one
	// transaction.
	PutEmbeddings(ctx context.Context, embeddings map[string]*core.FeatureEmbedding) error

	// GetEmbedding retrieves the embedding bundle for a feature.
	// Returns ErrNotFound if the feature has no cached embedding.
	GetEmbedding(ctx context.Context, featureID string) (*core.FeatureEmbedding, error)

	// GetAllEmbeddings bulk-restores every cached bundle into memory.
	// Returns an empty map, not an error, when the cache is empty.
	GetAllEmbeddings(ctx context.Context) (map[string]*core.FeatureEmbedding, error)

	// DeleteEmbedding removes a feature's cached bundle.
	// Returns ErrNotFound if no bundle exists.
	DeleteEmbedding(ctx context.Context, featureID string) error

	// CountEmbeddings returns the number of cached bundles.
	CountEmbeddings(ctx context.Context) (int, error)

	// ExportJSON writes a human-inspectable JSON rendering of every cached
	// bundle to w, for debugging.
	ExportJSON(ctx context.Context, w io.Writer) error

	// Close closes the storage backend and releases resources.
	Close() error
}
