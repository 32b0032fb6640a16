package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        []float32{0.5, 0.5, 0.5},
			b:        []float32{0.5, 0.5, 0.5},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0},
			b:        []float32{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 0},
			b:        []float32{-1, 0},
			expected: -1.0,
		},
		{
			name:     "scale invariant",
			a:        []float32{1, 2, 3},
			b:        []float32{10, 20, 30},
			expected: 1.0,
		},
		{
			name:     "zero vector",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "empty vectors",
			a:        nil,
			b:        nil,
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Cosine(tt.a, tt.b), 1e-6)
		})
	}
}

func TestSemanticScore(t *testing.T) {
	assert.Equal(t, 0.0, SemanticScore(-0.5))
	assert.Equal(t, 0.0, SemanticScore(0))
	assert.Equal(t, 0.42, SemanticScore(0.42))
	assert.Equal(t, 1.0, SemanticScore(1.0000001))
}
