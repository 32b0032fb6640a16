// Package mock provides a deterministic test double for the ai.Embedder
// interface. The default behavior derives a stable pseudo-random vector from
// an FNV hash of the input text, so identical inputs always embed identically
// without any external service.
package mock
