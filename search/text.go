package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Stop words filtered before token-overlap scoring. RVK labels are German;
// extracted concepts occasionally carry English function words.
var stopWords = map[string]bool{
	// German
	"der": true, "die": true, "das": true, "und": true, "oder": true,
	"ein": true, "eine": true, "einer": true, "eines": true, "im": true,
	"in": true, "an": true, "am": true, "auf": true, "aus": true,
	"mit": true, "von": true, "vom": true, "zu": true, "zur": true,
	"zum": true, "für": true, "über": true, "bei": true, "nach": true,
	"des": true, "dem": true, "den": true, "als": true, "auch": true,
	"sowie": true, "unter": true, "allgemeines": true, "allgemein": true,
	// English
	"the": true, "a": true, "of": true, "and": true,
	"for": true, "on": true, "with": true, "to": true, "by": true,
	"from": true, "at": true, "this": true, "that": true,
}

// normalizeTerm canonicalizes text for comparison: NFKC normalization,
// control characters stripped, lowercased, trimmed.
func normalizeTerm(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(strings.TrimSpace(s))
}

// Tokenize splits text into normalized tokens with punctuation trimmed
// and stop words removed.
func Tokenize(text string) []string {
	return tokenizeAndFilter(text)
}

// tokenizeAndFilter splits normalized text into words, trims punctuation,
// and removes stop words.
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(normalizeTerm(text))
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}/")
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// tokenOverlap returns the share of term tokens that also occur in the
// label, after stop-word filtering. Zero when the term has no tokens left.
func tokenOverlap(term, label string) float64 {
	termTokens := tokenizeAndFilter(term)
	if len(termTokens) == 0 {
		return 0
	}

	labelTokens := tokenizeAndFilter(label)
	labelSet := make(map[string]bool, len(labelTokens))
	for _, token := range labelTokens {
		labelSet[token] = true
	}

	hits := 0
	for _, token := range termTokens {
		if labelSet[token] {
			hits++
		}
	}
	return float64(hits) / float64(len(termTokens))
}
