package textproc

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/poiesic/matchpoint/core"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Processor provides text normalization, keyword extraction, synonym
// expansion, business-intent detection, and the non-semantic scoring
// primitives used by the matching engine.
//
// A Processor is stateless after construction and safe for concurrent use.
type Processor struct {
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
	}
}

// NewProcessor creates a text processor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clean lowercases the text, strips punctuation except hyphens, and collapses
// whitespace. Never fails; empty input yields empty output.
func (p *Processor) Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = nonWordPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Tokenize splits cleaned text into tokens.
func (p *Processor) Tokenize(text string) []string {
	cleaned := p.Clean(text)
	if cleaned == "" {
		return []string{}
	}
	return strings.Fields(cleaned)
}

// ExtractKeywords tokenizes text and keeps meaningful keywords: tokens longer
// than two characters that are neither stop words nor purely numeric.
// Duplicates are removed; first-seen order is preserved.
func (p *Processor) ExtractKeywords(text string) []string {
	tokens := p.Tokenize(text)

	keywords := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if len(token) <= 2 || stopWords[token] || isNumeric(token) {
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
	}
	return keywords
}

// ExpandWithSynonyms expands keywords through the business thesaurus.
// A keyword that is a canonical concept pulls in its synonyms; a keyword that
// is a listed synonym pulls in its canonical concept and that concept's
// synonym list. Expansion is one-hop only.
func (p *Processor) ExpandWithSynonyms(keywords []string) []string {
	expanded := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))

	add := func(word string) {
		if !seen[word] {
			seen[word] = true
			expanded = append(expanded, word)
		}
	}

	for _, keyword := range keywords {
		add(keyword)
	}
	for _, keyword := range keywords {
		if synonyms, ok := businessSynonyms[keyword]; ok {
			for _, synonym := range synonyms {
				add(synonym)
			}
		}
		if canonical, ok := reverseSynonyms[keyword]; ok {
			add(canonical)
			for _, synonym := range businessSynonyms[canonical] {
				add(synonym)
			}
		}
	}
	return expanded
}

// DetectBusinessIntent scores the text against each of the five fixed intent
// categories. An exact phrase occurrence contributes 1.0; a fuzzy word pair
// above 0.8 similarity contributes 0.5. Each intent score is normalized by
// its phrase-list length and capped at 1.0.
func (p *Processor) DetectBusinessIntent(text string) map[string]float64 {
	textLower := strings.ToLower(text)
	textWords := strings.Fields(textLower)

	scores := make(map[string]float64, len(IntentNames))
	for _, intent := range IntentNames {
		phrases := intentPhrases[intent]
		score := 0.0

		for _, phrase := range phrases {
			if strings.Contains(textLower, phrase) {
				score += 1.0
			}

			for _, phraseWord := range strings.Fields(phrase) {
				for _, textWord := range textWords {
					if Ratio(phraseWord, textWord) > 0.8 {
						score += 0.5
					}
				}
			}
		}

		score /= float64(len(phrases))
		if score > 1.0 {
			score = 1.0
		}
		scores[intent] = score
	}
	return scores
}

// ProcessQuery converts a raw pain-point query into its structured form:
// cleaned text, tokens, expanded keywords, and intent distribution.
// The embedding is left nil for the caller to populate.
func (p *Processor) ProcessQuery(query string) *core.ProcessedQuery {
	cleaned := p.Clean(query)
	return &core.ProcessedQuery{
		Original: query,
		Cleaned:  cleaned,
		Tokens:   strings.Fields(cleaned),
		Keywords: p.ExpandWithSynonyms(p.ExtractKeywords(query)),
		Intent:   p.DetectBusinessIntent(query),
	}
}

// reverseSynonyms maps each synonym back to its canonical concept.
var reverseSynonyms = buildReverseSynonyms()

func buildReverseSynonyms() map[string]string {
	reverse := make(map[string]string)
	for _, canonical := range canonicalOrder {
		for _, synonym := range businessSynonyms[canonical] {
			reverse[synonym] = canonical
		}
	}
	return reverse
}

func isNumeric(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(token) > 0
}
