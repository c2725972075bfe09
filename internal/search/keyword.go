package search

import (
	"regexp"
	"strings"
)

// Keyword scoring tiers. These thresholds are tuned empirically; keep them
// named so recalibration touches one place.
const (
	allWholeWordScore = 0.95
	allMixedScore     = 0.80
	substringWeight   = 0.6
	partialScale      = 0.7
	minWordLength     = 2
)

// keywordScore measures how well a free-text query matches a piece of text.
// An exact phrase hit scores 1.0. Otherwise the query is tokenized and each
// word checked for a whole-word or substring hit; all-whole-word scores just
// below a phrase hit, mixed hits lower, partial hits lower still.
// Comparison is case-insensitive. Empty query or text scores 0.
func keywordScore(query, text string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	text = strings.ToLower(text)
	if query == "" || text == "" {
		return 0
	}

	if strings.Contains(text, query) {
		return 1.0
	}

	var words []string
	for _, word := range strings.Fields(query) {
		if len(word) >= minWordLength {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return 0
	}

	whole, substr := 0, 0
	for _, word := range words {
		switch {
		case wholeWordMatch(text, word):
			whole++
		case strings.Contains(text, word):
			substr++
		}
	}

	matched := whole + substr
	switch {
	case matched == 0:
		return 0
	case whole == len(words):
		return allWholeWordScore
	case matched == len(words):
		return allMixedScore
	default:
		return (float64(whole) + substringWeight*float64(substr)) / float64(len(words)) * partialScale
	}
}

// wholeWordMatch reports whether word occurs in text at word boundaries.
func wholeWordMatch(text, word string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
