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


package match

import "errors"

var (
	// ErrEmptyQuery is returned when the pain-point text is empty or blank.
	// Rejected before any feature is scored.
	ErrEmptyQuery = errors.New("pain point description cannot be empty")

	// ErrCatalogRequired is returned when a catalog store is not provided.
	ErrCatalogRequired = errors.New("catalog store required")

	// ErrManagerRequired is returned when an embedding manager is not provided.
	ErrManagerRequired = errors.New("embedding manager required")
)
