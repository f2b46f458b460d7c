// Package keywords extracts a small, de-duplicated keyword set from a
// query string, distinct from the general pkg/tokenize pipeline used by
// the TF-IDF scorer. It backs the heuristic path-match pass and the
// keyword post-adjustment pass.
package keywords

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// MinLen and MaxLen bound the keywords this extractor keeps, a narrower
// band than pkg/tokenize's, since a keyword this short lived needs to be
// distinctive enough to drive a +/- adjustment rather than just inform a
// frequency statistic.
const (
	MinLen = 3
	MaxLen = 40
)

var nonWord = regexp.MustCompile(`[^a-z0-9_\s]`)

// Extract returns the de-duplicated, length-filtered, stopword-filtered
// keyword set for text, in first-seen order.
func Extract(text string) []string {
	lowered := lowerCaser.String(text)
	cleaned := nonWord.ReplaceAllString(lowered, " ")

	seen := make(map[string]bool)
	out := make([]string, 0, 8)
	for _, f := range strings.Fields(cleaned) {
		if len(f) < MinLen || len(f) > MaxLen {
			continue
		}
		if stopwords[f] {
			continue
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// stopwords is the keyword extractor's own list. It is deliberately kept
// separate from pkg/tokenize's stopword set rather than unified with it;
// the two lists serve different passes and drift between them is not a
// bug to fix.
var stopwords = buildStopwords([]string{
	"a", "about", "after", "again", "all", "also", "am", "an", "and",
	"any", "are", "as", "at", "be", "been", "being", "but", "by", "can",
	"could", "did", "do", "does", "doing", "down", "for", "from", "had",
	"has", "have", "having", "how", "into", "its", "just", "more", "most",
	"not", "now", "off", "once", "only", "other", "our", "out", "over",
	"own", "same", "should", "some", "such", "than", "that", "the",
	"their", "them", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "very", "was", "we", "were",
	"what", "when", "where", "which", "while", "who", "why", "will",
	"with", "would", "you", "your",
})

func buildStopwords(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// ContainsAny reports whether haystack contains any of the needles as a
// substring. Callers do not need to lowercase haystack first.
func ContainsAny(haystack string, needles ...string) bool {
	h := lowerCaser.String(haystack)
	for _, n := range needles {
		if strings.Contains(h, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// Any reports whether any of the keywords equals one of the targets.
func Any(kws []string, targets ...string) bool {
	set := make(map[string]bool, len(targets))
	for _, t := range targets {
		set[t] = true
	}
	for _, k := range kws {
		if set[k] {
			return true
		}
	}
	return false
}
