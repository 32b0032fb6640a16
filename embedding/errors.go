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


package embedding

import "errors"

var (
	// ErrRepositoryRequired is returned when an embedding repository is not provided.
	ErrRepositoryRequired = errors.New("embedding repository required")

	// ErrEmbedderRequired is returned by build and embed operations when the
	// manager was constructed without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrBuildInProgress is returned when a bulk build is already running.
	// Only one build may be in flight at a time.
	ErrBuildInProgress = errors.New("embedding build already in progress")
)
