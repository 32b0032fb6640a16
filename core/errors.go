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

import "errors"

// Domain validation errors
var (
	// ErrInvalidFeature indicates a Feature failed validation.
	ErrInvalidFeature = errors.New("invalid feature")

	// ErrEmptyFeatureID indicates the feature ID field is empty.
	ErrEmptyFeatureID = errors.New("feature id cannot be empty")

	// ErrEmptyFeatureName indicates the feature Name field is empty.
	ErrEmptyFeatureName = errors.New("feature name cannot be empty")

	// ErrEmptyFeatureCategory indicates the feature Category field is empty.
	ErrEmptyFeatureCategory = errors.New("feature category cannot be empty")

	// ErrDuplicateFeatureID indicates two catalog features share an ID.
	ErrDuplicateFeatureID = errors.New("duplicate feature id")
)
