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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/matchpoint/core"
)

// Embedding bundles are stored as JSON. The cache doubles as debugging
// output, so one codec serves both the restore path and the export path.

// MarshalFeatureEmbedding serializes a FeatureEmbedding to bytes.
func MarshalFeatureEmbedding(embedding *core.FeatureEmbedding) ([]byte, error) {
	data, err := json.Marshal(embedding)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalFeatureEmbedding deserializes a FeatureEmbedding from bytes.
func UnmarshalFeatureEmbedding(data []byte) (*core.FeatureEmbedding, error) {
	var embedding core.FeatureEmbedding
	if err := json.Unmarshal(data, &embedding); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &embedding, nil
}
