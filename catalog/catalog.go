package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/poiesic/matchpoint/core"
)

// Document is the on-disk shape of the feature catalog.
type Document struct {
	Features []core.Feature `json:"features"`
}

// Store holds the loaded, validated feature catalog.
// It is immutable after construction and safe for concurrent reads.
type Store struct {
	features []core.Feature
	byID     map[string]*core.Feature
}

// Load reads and parses the catalog document at path.
// A missing or unreadable file is a configuration error, not a degraded state.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return Parse(data)
}

// Parse parses a catalog document from raw bytes.
func Parse(data []byte) (*Store, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
	}
	return New(doc.Features)
}

// New builds a Store from a feature slice, validating IDs and normalizing
// absent optional fields to empty defaults.
func New(features []core.Feature) (*Store, error) {
	if err := core.ValidateFeatures(features); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCatalog, err)
	}

	s := &Store{
		features: make([]core.Feature, len(features)),
		byID:     make(map[string]*core.Feature, len(features)),
	}
	copy(s.features, features)
	for i := range s.features {
		core.NormalizeFeature(&s.features[i])
		s.byID[s.features[i].ID] = &s.features[i]
	}
	return s, nil
}

// Features returns all catalog features in document order.
// Callers must treat the returned slice as read-only.
func (s *Store) Features() []core.Feature {
	return s.features
}

// Len returns the number of features in the catalog.
func (s *Store) Len() int {
	return len(s.features)
}

// FeatureByID looks up a feature by its unique identifier.
func (s *Store) FeatureByID(id string) (*core.Feature, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// CategorySummary describes one product category and its features.
type CategorySummary struct {
	Name          string
	FeatureCount  int
	FeatureNames  []string
	Subcategories []string
}

// Categories returns all categories with per-category feature counts and
// subcategory sets, ordered by feature count descending.
func (s *Store) Categories() []CategorySummary {
	byName := make(map[string]*CategorySummary)
	subcats := make(map[string]map[string]bool)

	for i := range s.features {
		f := &s.features[i]
		summary, ok := byName[f.Category]
		if !ok {
			summary = &CategorySummary{Name: f.Category}
			byName[f.Category] = summary
			subcats[f.Category] = make(map[string]bool)
		}
		summary.FeatureCount++
		summary.FeatureNames = append(summary.FeatureNames, f.Name)
		if f.Subcategory != "" {
			subcats[f.Category][f.Subcategory] = true
		}
	}

	result := make([]CategorySummary, 0, len(byName))
	for name, summary := range byName {
		for sub := range subcats[name] {
			summary.Subcategories = append(summary.Subcategories, sub)
		}
		sort.Strings(summary.Subcategories)
		result = append(result, *summary)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].FeatureCount != result[j].FeatureCount {
			return result[i].FeatureCount > result[j].FeatureCount
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// FeaturesByCategory returns all features whose category matches name,
// compared case-insensitively.
func (s *Store) FeaturesByCategory(name string) []*core.Feature {
	var result []*core.Feature
	for i := range s.features {
		if strings.EqualFold(s.features[i].Category, name) {
			result = append(result, &s.features[i])
		}
	}
	return result
}
