// Package match ranks catalog features against free-form pain-point
// descriptions. The full Engine fuses five similarity layers (exact keyword,
// fuzzy text, semantic embedding, business domain, and pain-point intent)
// into a single confidence score; the Basic matcher is a text-only fallback
// for environments with no embedding provider.
package match
