// Package tokenize implements the tokenization and stopword filtering
// pipeline used by the TF-IDF scorer. The keyword extractor in
// pkg/keywords runs its own similar pass with a narrower stopword list.
// Tokenization is pure and deterministic: the same input text always
// yields the same token sequence.
package tokenize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// MinTokenLen and MaxTokenLen bound the tokens kept after stopword removal.
const (
	MinTokenLen = 3
	MaxTokenLen = 49
)

var nonWord = regexp.MustCompile(`[^a-z0-9_\s]`)

// Tokens lowercases text, replaces every character outside [a-z0-9_\s]
// with a single space, splits on whitespace runs, keeps tokens of length
// MinTokenLen..MaxTokenLen, and drops stopwords.
func Tokens(text string) []string {
	lowered := lowerCaser.String(text)
	cleaned := nonWord.ReplaceAllString(lowered, " ")

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < MinTokenLen || len(f) > MaxTokenLen {
			continue
		}
		if stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// stopwords is the fixed set of common English function words and pronouns
// shared by the TF-IDF scorer. It intentionally differs from the keyword
// extractor's narrower list in pkg/keywords; the two lists are kept
// distinct on purpose, not merged, since file-relevance scoring and
// keyword-hint adjustment are separate tuning surfaces.
var stopwords = buildStopwords([]string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can't",
	"cannot", "could", "couldn't", "did", "didn't", "do", "does", "doesn't",
	"doing", "don't", "down", "during", "each", "few", "for", "from",
	"further", "had", "hadn't", "has", "hasn't", "have", "haven't",
	"having", "her", "here", "hers", "herself", "him", "himself", "his",
	"how", "into", "isn't", "its", "itself", "just", "let's", "more",
	"most", "mustn't", "myself", "nor", "not", "now", "off", "once",
	"only", "other", "ought", "ours", "ourselves", "out", "over", "own",
	"same", "shan't", "she", "she'd", "she'll", "she's", "should",
	"shouldn't", "some", "such", "than", "that", "that's", "the", "their",
	"theirs", "them", "themselves", "then", "there", "there's", "these",
	"they", "they'd", "they'll", "they're", "they've", "this", "those",
	"through", "under", "until", "very", "was", "wasn't", "were",
	"weren't", "what", "what's", "when", "when's", "where", "where's",
	"which", "while", "who", "who's", "whom", "why", "why's", "with",
	"won't", "would", "wouldn't", "you", "you'd", "you'll", "you're",
	"you've", "your", "yours", "yourself", "yourselves",
})

func buildStopwords(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
