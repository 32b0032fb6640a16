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


// Package ai provides the abstraction for the embedding service used by the
// matching engine.
//
// The Embedder interface is the only contract the rest of the system depends
// on, following the dependency inversion principle: the embedding cache and
// the matcher work against the abstraction, never a concrete client.
//
// Two implementation sub-packages are provided:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test double for unit testing without external
//     services
//
// Production constructors (openai.NewEmbedder) return the ai.Embedder
// interface to prevent coupling to implementation details. Test constructors
// (mock.NewEmbedder) return the concrete type so tests can inject behavior
// and assert call counts.
//
// Usage:
//
//	cfg := ai.NewConfig(ai.WithEmbeddingModel("embeddinggemma"))
//	embedder, err := openai.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vector, err := embedder.EmbedText(ctx, "collecting customer feedback")
package ai
