package textproc

// Stop words filtered out during keyword extraction.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "were": true, "been": true, "being": true, "to": true,
	"of": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "by": true, "for": true, "with": true, "about": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "from": true, "that": true, "this": true, "these": true,
	"those": true, "have": true, "has": true, "had": true, "it": true,
	"its": true, "not": true, "as": true, "you": true, "your": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"should": true, "could": true, "can": true, "may": true, "might": true,
	"must": true, "we": true, "our": true, "us": true, "they": true,
	"their": true, "them": true, "he": true, "she": true, "his": true,
	"her": true, "i": true, "my": true, "me": true, "what": true,
	"which": true, "who": true, "when": true, "where": true, "why": true,
	"how": true, "all": true, "any": true, "both": true, "each": true,
	"more": true, "most": true, "other": true, "some": true, "such": true,
	"only": true, "own": true, "same": true, "than": true, "too": true,
	"very": true, "just": true, "also": true, "there": true, "here": true,
	"then": true, "now": true, "so": true, "if": true, "because": true,
	"while": true, "out": true, "up": true, "down": true, "off": true,
	"over": true, "under": true, "again": true, "need": true, "want": true,
	"get": true, "lot": true, "lots": true,
}
