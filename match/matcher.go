package match

import (
	"context"

	"github.com/poiesic/matchpoint/core"
)

// Matcher finds catalog features that address a pain-point description.
// Two implementations exist: the full five-layer Engine and the reduced
// Basic matcher used when the engine cannot initialize. The choice is made
// once at construction, never per call.
type Matcher interface {
	// FindMatches returns up to maxResults features ranked by confidence,
	// highest first. An empty list (not an error) means nothing scored at or
	// above the result floor. Errors are reserved for structural failures
	// and empty input.
	FindMatches(ctx context.Context, painPoint string, maxResults int) ([]*core.MatchResult, error)

	// Method names the matching strategy ("layered" or "basic") so callers
	// can surface which capability answered the query.
	Method() string
}
