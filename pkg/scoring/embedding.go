package scoring

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarylabs/smartctx/pkg/embedcache"
	"github.com/ternarylabs/smartctx/pkg/logging"
	"github.com/ternarylabs/smartctx/pkg/model"
)

// EmbeddingScorer computes candidate.Score via cosine similarity against
// a query embedding, consulting an on-disk cache before calling the
// Embedder. Per-file embedding lookups run with bounded parallelism;
// unbounded fan-out over a large corpus would saturate the Embedder.
type EmbeddingScorer struct {
	Embedder       model.Embedder
	Cache          *embedcache.Cache
	Filesystem     model.Filesystem
	MaxConcurrency int
	Log            *logging.Logger
}

// Score embeds query once; a failure there aborts the whole pass and
// signals the engine to fall back to TF-IDF. It then embeds or
// cache-reads each candidate with bounded parallelism, setting
// candidate.Score to the cosine similarity against the query vector and
// appending a reason. Per-candidate failures are logged and leave that
// candidate's score at 0 from this pass; they do not abort the call.
func (s *EmbeddingScorer) Score(ctx context.Context, candidates []*model.FileCandidate, query string) error {
	queryVec, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		if s.Log != nil {
			s.Log.Warnf("query embedding failed, falling back to tf-idf: %v", err)
		}
		return fmt.Errorf("embedding query: %w", err)
	}

	concurrency := s.MaxConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, c := range candidates {
		c := c
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			s.scoreOne(ctx, c, queryVec)
		}()
	}
	wg.Wait()

	return nil
}

func (s *EmbeddingScorer) scoreOne(ctx context.Context, c *model.FileCandidate, queryVec []float32) {
	var mtimeMs int64
	hasMtime := false
	if s.Filesystem != nil {
		if st, err := s.Filesystem.Stat(c.Path); err == nil {
			mtimeMs = st.MtimeMs
			hasMtime = true
		}
	}

	var vec []float32
	cached := false
	if hasMtime && s.Cache != nil {
		if v, ok := s.Cache.Get(c.Path, c.Content, mtimeMs); ok {
			vec = v
			cached = true
		}
	}

	if !cached {
		v, err := s.Embedder.Embed(ctx, c.Content)
		if err != nil {
			if s.Log != nil {
				s.Log.Warnf("embedding failed for %s: %v", c.Path, err)
			}
			return
		}
		vec = v
		if hasMtime && s.Cache != nil {
			if err := s.Cache.Set(c.Path, c.Content, mtimeMs, vec); err != nil && s.Log != nil {
				s.Log.Warnf("caching embedding for %s: %v", c.Path, err)
			}
		}
	}

	similarity := CosineSimilarity(queryVec, vec)
	c.AddReason(similarity, fmt.Sprintf("embedding similarity: %.3f", similarity))
}
