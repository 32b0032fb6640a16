package badger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/poiesic/matchpoint/core"
	"github.com/poiesic/matchpoint/storage"
)

func testBundle(featureID string) *core.FeatureEmbedding {
	return &core.FeatureEmbedding{
		FeatureID:   featureID,
		Description: []float32{0.1, 0.2, 0.3},
		PainPoints:  []float32{0.4, 0.5, 0.6},
		Keywords:    []float32{0.7, 0.8, 0.9},
		UseCases:    []float32{0.0, 0.1, 0.2},
		Combined:    []float32{0.3, 0.4, 0.5},
		Metadata: core.EmbeddingMetadata{
			Name:        "Automated Surveys",
			Category:    "Voice of Customer",
			Fingerprint: core.Fingerprint("some text"),
			CreatedAt:   time.Now().UTC(),
		},
	}
}

func TestEmbeddingBasics(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	// Store a bundle
	bundle := testBundle("voc-001")
	if err := repo.PutEmbedding(ctx, bundle); err != nil {
		t.Fatalf("Failed to put embedding: %v", err)
	}

	// Retrieve it
	retrieved, err := repo.GetEmbedding(ctx, "voc-001")
	if err != nil {
		t.Fatalf("Failed to get embedding: %v", err)
	}
	if retrieved.FeatureID != "voc-001" {
		t.Fatalf("Expected 'voc-001', got '%s'", retrieved.FeatureID)
	}
	if len(retrieved.Combined) != 3 {
		t.Fatalf("Expected combined vector of length 3, got %d", len(retrieved.Combined))
	}
	if retrieved.Metadata.Fingerprint != bundle.Metadata.Fingerprint {
		t.Fatal("Fingerprint did not survive round trip")
	}

	// Missing key maps to storage.ErrNotFound
	if _, err := repo.GetEmbedding(ctx, "missing"); err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// Replacing an existing bundle overwrites it
	bundle.Combined = []float32{9, 9, 9}
	if err := repo.PutEmbedding(ctx, bundle); err != nil {
		t.Fatalf("Failed to replace embedding: %v", err)
	}
	retrieved, err = repo.GetEmbedding(ctx, "voc-001")
	if err != nil {
		t.Fatalf("Failed to get replaced embedding: %v", err)
	}
	if retrieved.Combined[0] != 9 {
		t.Fatalf("Expected replaced vector, got %v", retrieved.Combined)
	}
}

func TestPutEmbeddingsBatch(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	batch := map[string]*core.FeatureEmbedding{
		"voc-001": testBundle("voc-001"),
		"voc-002": testBundle("voc-002"),
		"acs-001": testBundle("acs-001"),
	}
	if err := repo.PutEmbeddings(ctx, batch); err != nil {
		t.Fatalf("Failed to put batch: %v", err)
	}

	count, err := repo.CountEmbeddings(ctx)
	if err != nil {
		t.Fatalf("Failed to count embeddings: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 embeddings, got %d", count)
	}

	all, err := repo.GetAllEmbeddings(ctx)
	if err != nil {
		t.Fatalf("Failed to get all embeddings: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 embeddings, got %d", len(all))
	}
	for id := range batch {
		if _, ok := all[id]; !ok {
			t.Fatalf("Missing embedding for %s", id)
		}
	}
}

func TestGetAllEmbeddingsEmpty(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	all, err := repo.GetAllEmbeddings(context.Background())
	if err != nil {
		t.Fatalf("Expected empty map, got error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("Expected empty map, got %d entries", len(all))
	}
}

func TestDeleteEmbedding(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	if err := repo.PutEmbedding(ctx, testBundle("voc-001")); err != nil {
		t.Fatalf("Failed to put embedding: %v", err)
	}

	if err := repo.DeleteEmbedding(ctx, "voc-001"); err != nil {
		t.Fatalf("Failed to delete embedding: %v", err)
	}

	if _, err := repo.GetEmbedding(ctx, "voc-001"); err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing key reports ErrNotFound
	if err := repo.DeleteEmbedding(ctx, "voc-001"); err != storage.ErrNotFound {
		t.Fatalf("Expected ErrNotFound for double delete, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	if err := repo.PutEmbedding(ctx, testBundle("voc-001")); err != nil {
		t.Fatalf("Failed to put embedding: %v", err)
	}

	var buf bytes.Buffer
	if err := repo.ExportJSON(ctx, &buf); err != nil {
		t.Fatalf("Failed to export: %v", err)
	}

	// The export is valid JSON keyed by feature id
	var exported map[string]*core.FeatureEmbedding
	if err := json.Unmarshal(buf.Bytes(), &exported); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if _, ok := exported["voc-001"]; !ok {
		t.Fatal("Export missing feature voc-001")
	}
	if exported["voc-001"].Metadata.Category != "Voice of Customer" {
		t.Fatalf("Unexpected metadata: %+v", exported["voc-001"].Metadata)
	}
}
