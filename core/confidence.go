package core

// ConfidenceLevel is the discretized bucket for a fused match score.
type ConfidenceLevel string

const (
	// ConfidenceHigh indicates a strong match.
	ConfidenceHigh ConfidenceLevel = "high"
	// ConfidenceMedium indicates a moderate match.
	ConfidenceMedium ConfidenceLevel = "medium"
	// ConfidenceLow indicates a weak but relevant match.
	ConfidenceLow ConfidenceLevel = "low"
	// ConfidenceVeryLow indicates a score below the result floor.
	// Only reachable internally, since results below the floor are dropped.
	ConfidenceVeryLow ConfidenceLevel = "very_low"
)

// Layered matcher thresholds.
const (
	HighConfidenceThreshold   = 0.65
	MediumConfidenceThreshold = 0.40
	LowConfidenceThreshold    = 0.20
)

// Basic matcher thresholds. The reduced matcher fuses only two signals,
// so its buckets sit lower.
const (
	BasicHighConfidenceThreshold   = 0.6
	BasicMediumConfidenceThreshold = 0.3
)

// ConfidenceFromScore maps a fused score to its confidence level.
// The mapping is total over [0,1]: every score lands in exactly one bucket.
func ConfidenceFromScore(score float64) ConfidenceLevel {
	switch {
	case score >= HighConfidenceThreshold:
		return ConfidenceHigh
	case score >= MediumConfidenceThreshold:
		return ConfidenceMedium
	case score >= LowConfidenceThreshold:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// BasicConfidenceFromScore maps a basic-matcher score to its confidence level.
func BasicConfidenceFromScore(score float64) ConfidenceLevel {
	switch {
	case score >= BasicHighConfidenceThreshold:
		return ConfidenceHigh
	case score >= BasicMediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
