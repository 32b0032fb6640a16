package embedding

import "math"

// Cosine computes the cosine similarity between two vectors.
// Returns 0 when either vector is zero-length or zero-magnitude.
func Cosine(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SemanticScore maps a cosine similarity into [0,1]: negative similarity
// floors at 0, anything above 1 (floating error) caps at 1.
func SemanticScore(similarity float64) float64 {
	if similarity < 0 {
		return 0
	}
	if similarity > 1 {
		return 1
	}
	return similarity
}
