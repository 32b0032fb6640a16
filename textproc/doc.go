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


// Package textproc provides text normalization and the non-semantic scoring
// primitives for pain-point matching.
//
// The Processor type implements:
//   - Cleaning, tokenization, and stop-word-filtered keyword extraction
//   - One-hop keyword expansion through a fixed business-domain thesaurus
//   - Business-intent detection over five fixed intent categories
//   - Exact (Jaccard), fuzzy (edit-distance ratio), and domain-relevance
//     scoring primitives
//   - Human-readable explanations for layered scores
//
// String similarity uses the Wagner-Fischer edit distance; the semantic layer
// lives elsewhere, on top of the embedding cache.
package textproc
