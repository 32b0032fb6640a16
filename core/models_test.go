package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Fingerprint("collect feedback"), Fingerprint("collect feedback"))
	})

	t.Run("distinct inputs diverge", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint("collect feedback"), Fingerprint("collect feedbacks"))
	})

	t.Run("hex encoded 128 bits", func(t *testing.T) {
		assert.Len(t, Fingerprint("anything"), 32)
	})
}

func TestCombinedText(t *testing.T) {
	f := Feature{
		Description:         "Automated survey distribution",
		PainPointsAddressed: []string{"cannot collect feedback at scale"},
		Keywords:            []string{"survey", "feedback"},
		UseCases:            []string{"post-purchase surveys"},
	}

	combined := f.CombinedText()
	assert.Contains(t, combined, "Automated survey distribution")
	assert.Contains(t, combined, "cannot collect feedback at scale")
	assert.Contains(t, combined, "survey feedback")
	assert.Contains(t, combined, "post-purchase surveys")

	t.Run("empty feature collapses to empty string", func(t *testing.T) {
		var empty Feature
		assert.Equal(t, "", empty.CombinedText())
	})

	t.Run("fingerprint tracks combined text", func(t *testing.T) {
		g := f
		assert.Equal(t, Fingerprint(f.CombinedText()), Fingerprint(g.CombinedText()))

		g.Keywords = []string{"survey", "feedback", "nps"}
		assert.NotEqual(t, Fingerprint(f.CombinedText()), Fingerprint(g.CombinedText()))
	})
}

func TestConfidenceFromScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected ConfidenceLevel
	}{
		{1.0, ConfidenceHigh},
		{0.65, ConfidenceHigh},
		{0.6499, ConfidenceMedium},
		{0.40, ConfidenceMedium},
		{0.3999, ConfidenceLow},
		{0.20, ConfidenceLow},
		{0.1999, ConfidenceVeryLow},
		{0.0, ConfidenceVeryLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ConfidenceFromScore(tt.score), "score %v", tt.score)
	}
}

func TestBasicConfidenceFromScore(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, BasicConfidenceFromScore(0.6))
	assert.Equal(t, ConfidenceMedium, BasicConfidenceFromScore(0.3))
	assert.Equal(t, ConfidenceLow, BasicConfidenceFromScore(0.1))
	assert.Equal(t, ConfidenceLow, BasicConfidenceFromScore(0.0))
}
