package badger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/matchpoint/core"
	"github.com/poiesic/matchpoint/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
type EmbeddingRepository struct {
	backend *Backend
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a new EmbeddingRepository.
func NewEmbeddingRepository(backend *Backend) (*EmbeddingRepository, error) {
	return &EmbeddingRepository{
		backend: backend,
	}, nil
}

// Close releases resources. EmbeddingRepository has no resources to release.
func (r *EmbeddingRepository) Close() error {
	return nil
}

// PutEmbedding stores or replaces the embedding bundle for one feature.
func (r *EmbeddingRepository) PutEmbedding(ctx context.Context, embedding *core.FeatureEmbedding) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := putEmbedding(tx, embedding); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// PutEmbeddings stores or replaces multiple embedding bundles in one transaction.
func (r *EmbeddingRepository) PutEmbeddings(ctx context.Context, embeddings map[string]*core.FeatureEmbedding) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, embedding := range embeddings {
			if err := putEmbedding(tx, embedding); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEmbedding retrieves the embedding bundle for a feature.
func (r *EmbeddingRepository) GetEmbedding(ctx context.Context, featureID string) (*core.FeatureEmbedding, error) {
	var result *core.FeatureEmbedding
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEmbeddingKey(featureID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalFeatureEmbedding(val)
			return err
		})
	}, false)
	return result, err
}

// GetAllEmbeddings bulk-restores every cached bundle into memory.
func (r *EmbeddingRepository) GetAllEmbeddings(ctx context.Context) (map[string]*core.FeatureEmbedding, error) {
	result := make(map[string]*core.FeatureEmbedding)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = embeddingKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var embedding *core.FeatureEmbedding
			err := iter.Item().Value(func(val []byte) error {
				var err error
				embedding, err = storage.UnmarshalFeatureEmbedding(val)
				return err
			})
			if err != nil {
				return err
			}
			if embedding != nil {
				result[embedding.FeatureID] = embedding
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteEmbedding removes a feature's cached bundle.
func (r *EmbeddingRepository) DeleteEmbedding(ctx context.Context, featureID string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEmbeddingKey(featureID)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// CountEmbeddings returns the number of cached bundles.
func (r *EmbeddingRepository) CountEmbeddings(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = embeddingKeyPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// ExportJSON writes every cached bundle to w as indented JSON keyed by
// feature id, for debugging.
func (r *EmbeddingRepository) ExportJSON(ctx context.Context, w io.Writer) error {
	embeddings, err := r.GetAllEmbeddings(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(embeddings); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// putEmbedding writes one bundle within an open transaction.
func putEmbedding(tx *badger.Txn, embedding *core.FeatureEmbedding) error {
	value, err := storage.MarshalFeatureEmbedding(embedding)
	if err != nil {
		return err
	}
	return tx.Set(makeEmbeddingKey(embedding.FeatureID), value)
}
