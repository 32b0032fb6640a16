package textproc

import "github.com/xrash/smetrics"

// Ratio computes a normalized string similarity in [0,1] from the
// Wagner-Fischer edit distance with substitution cost 2. Equivalent to the
// classic Levenshtein ratio: identical strings score 1.0, disjoint strings 0.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return float64(total-dist) / float64(total)
}

// PartialRatio computes the best Ratio between the shorter string and any
// equal-length window of the longer one. Useful when one side is a phrase
// embedded in a longer description.
func PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := string(longer[i : i+len(shorter)])
		if r := Ratio(string(shorter), window); r > best {
			best = r
		}
		if best == 1.0 {
			break
		}
	}
	return best
}
