// Package tfidf implements the offline fallback scorer: a corpus-wide
// TF-IDF index built once per select call, scored per candidate against a
// query with no external calls and no persisted state.
package tfidf

import (
	"math"

	"github.com/ternarylabs/smartctx/pkg/tokenize"
)

// Index is a TF-IDF index over one corpus, built once and queried many
// times within a single select call.
type Index struct {
	// tf[path][term] is the term's frequency in that document, normalized
	// by document token length.
	tf map[string]map[string]float64
	// idf[term] is ln(N / (1+df(term))).
	idf map[string]float64
}

// Document is one corpus entry: a path paired with its raw text.
type Document struct {
	Path string
	Text string
}

// Build constructs an Index over docs. Each document's text is tokenized
// with the shared tokenizer so corpus and query tokenization always
// agree.
func Build(docs []Document) *Index {
	idx := &Index{
		tf:  make(map[string]map[string]float64, len(docs)),
		idf: make(map[string]float64),
	}

	df := make(map[string]int)
	for _, d := range docs {
		tokens := tokenize.Tokens(d.Text)
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}

		docLen := float64(len(tokens))
		termFreq := make(map[string]float64, len(counts))
		for term, c := range counts {
			if docLen > 0 {
				termFreq[term] = float64(c) / docLen
			}
			df[term]++
		}
		idx.tf[d.Path] = termFreq
	}

	n := float64(len(docs))
	for term, count := range df {
		idx.idf[term] = math.Log(n / (1 + float64(count)))
	}

	return idx
}

// Score returns the TF-IDF score of the document at path against query,
// tokenized identically to the corpus. Terms absent from the index
// contribute zero.
func (idx *Index) Score(path, query string) float64 {
	termFreq, ok := idx.tf[path]
	if !ok {
		return 0
	}

	queryTokens := tokenize.Tokens(query)
	seen := make(map[string]bool, len(queryTokens))
	var score float64
	for _, t := range queryTokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		score += termFreq[t] * idx.idf[t]
	}
	return score
}
