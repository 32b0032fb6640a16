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


package core

import "fmt"

// ValidateFeature validates a Feature according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Name must not be empty
//   - Category must not be empty
//
// NOT validated (optional fields that default to empty):
//   - Subcategory, Keywords, PainPointsAddressed, UseCases, Benefits
func ValidateFeature(feature *Feature) error {
	if feature == nil {
		return fmt.Errorf("%w: feature is nil", ErrInvalidFeature)
	}

	if feature.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeature, ErrEmptyFeatureID)
	}

	if feature.Name == "" {
		return fmt.Errorf("%w: %w (id %q)", ErrInvalidFeature, ErrEmptyFeatureName, feature.ID)
	}

	if feature.Category == "" {
		return fmt.Errorf("%w: %w (id %q)", ErrInvalidFeature, ErrEmptyFeatureCategory, feature.ID)
	}

	return nil
}

// NormalizeFeature replaces nil optional slices with empty ones so that
// downstream code never has to distinguish absent from empty.
func NormalizeFeature(feature *Feature) {
	if feature.Keywords == nil {
		feature.Keywords = []string{}
	}
	if feature.PainPointsAddressed == nil {
		feature.PainPointsAddressed = []string{}
	}
	if feature.UseCases == nil {
		feature.UseCases = []string{}
	}
	if feature.Benefits == nil {
		feature.Benefits = []string{}
	}
}

// ValidateFeatures validates a full catalog slice, including ID uniqueness.
func ValidateFeatures(features []Feature) error {
	seen := make(map[string]bool, len(features))
	for i := range features {
		if err := ValidateFeature(&features[i]); err != nil {
			return err
		}
		if seen[features[i].ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateFeatureID, features[i].ID)
		}
		seen[features[i].ID] = true
	}
	return nil
}
