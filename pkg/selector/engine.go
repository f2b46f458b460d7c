package selector

import (
	"context"
	"fmt"

	"github.com/ternarylabs/smartctx/pkg/embedcache"
	"github.com/ternarylabs/smartctx/pkg/logging"
	"github.com/ternarylabs/smartctx/pkg/model"
	"github.com/ternarylabs/smartctx/pkg/query"
	"github.com/ternarylabs/smartctx/pkg/scoring"
	"github.com/ternarylabs/smartctx/pkg/tfidf"
)

// budgetReservation is the fixed token allowance set aside for system
// prompt (~2000), user prompt (~1000), model output (~4000), and a
// safety margin (~1000) when the caller does not supply an explicit
// token budget.
const budgetReservation = 8000

// minDerivedBudget is the floor applied after subtracting the
// reservation from a model's max context window.
const minDerivedBudget = 10000

// Options bundles everything a select call needs.
type Options struct {
	AppPath       string
	Chat          model.ChatContext
	Prompt        model.PromptContext
	Mode          model.Mode
	Model         string
	TokenBudget   uint32 // 0 means "derive from model"
	MaxConcurrent int
}

// Engine orchestrates the full selection pipeline behind one operation,
// select. It owns the embedding cache directory exclusively but does not
// assume single-process access to it; cache correctness comes from
// content-addressing and atomic-rename writes, not from locking.
type Engine struct {
	Scanner    model.FileScanner
	Estimator  model.TokenEstimator
	ModelMeta  model.ModelMeta
	Embedder   model.Embedder
	Cache      *embedcache.Cache
	Filesystem model.Filesystem
	Clock      model.Clock
	Log        *logging.Logger
}

// Select runs the pipeline described by Options and returns a
// SelectionResult. It never fails for well-formed input; degraded paths
// (no embedder, embedding failures, stat failures) are reflected in the
// result's debug trace rather than returned as errors.
func (e *Engine) Select(ctx context.Context, opts Options) (model.SelectionResult, error) {
	files, err := e.Scanner.Extract(ctx, opts.AppPath, opts.Chat)
	if err != nil {
		return model.SelectionResult{}, fmt.Errorf("extracting candidates: %w", err)
	}

	if opts.Mode == model.ModeOff {
		return e.traditionalPassThrough(files), nil
	}

	candidates := PrepareCandidates(files, opts.Chat, e.Estimator)
	budget := e.resolveBudget(opts)
	q := query.Build(opts.Prompt)

	scoringMethod := e.scoreBase(ctx, candidates, q, opts.MaxConcurrent)

	heuristic := &scoring.HeuristicScorer{Filesystem: e.Filesystem, NowMs: e.nowMs()}
	adjuster := scoring.KeywordAdjuster{}
	for _, c := range candidates {
		heuristic.Score(c, q)
	}
	for _, c := range candidates {
		adjuster.Adjust(c, q)
	}

	selected, excludedCount := Budgeted(candidates, budget, opts.Mode)

	result := buildResult(selected, candidates, budget, scoringMethod, excludedCount)
	if e.Cache != nil {
		stats := e.Cache.Stats()
		result.Debug.CacheHits = stats.Hits
		result.Debug.CacheMisses = stats.Misses
	}
	return result, nil
}

// scoreBase runs the embedding scorer when an Embedder is available and
// the query embeds successfully, falling back to TF-IDF otherwise. It
// returns which method actually ran.
func (e *Engine) scoreBase(ctx context.Context, candidates []*model.FileCandidate, q string, maxConcurrent int) model.ScoringMethod {
	if e.Embedder != nil && e.Embedder.Available() {
		es := &scoring.EmbeddingScorer{
			Embedder:       e.Embedder,
			Cache:          e.Cache,
			Filesystem:     e.Filesystem,
			MaxConcurrency: maxConcurrent,
			Log:            e.Log,
		}
		if err := es.Score(ctx, candidates, q); err == nil {
			return model.ScoringEmbeddings
		}
	}

	e.scoreTFIDF(candidates, q)
	return model.ScoringTFIDF
}

func (e *Engine) scoreTFIDF(candidates []*model.FileCandidate, q string) {
	docs := make([]tfidf.Document, len(candidates))
	for i, c := range candidates {
		docs[i] = tfidf.Document{Path: c.Path, Text: c.Content}
	}
	idx := tfidf.Build(docs)

	for _, c := range candidates {
		score := idx.Score(c.Path, q)
		c.AddReason(score, fmt.Sprintf("tf-idf score: %.3f", score))
	}
}

func (e *Engine) resolveBudget(opts Options) uint32 {
	if opts.TokenBudget > 0 {
		return opts.TokenBudget
	}

	maxTokens := uint32(32000)
	if e.ModelMeta != nil {
		if v, ok := e.ModelMeta.MaxTokens(opts.Model); ok {
			maxTokens = v
		}
	}

	if maxTokens <= budgetReservation {
		return minDerivedBudget
	}
	derived := maxTokens - budgetReservation
	if derived < minDerivedBudget {
		return minDerivedBudget
	}
	return derived
}

func (e *Engine) nowMs() int64 {
	if e.Clock != nil {
		return e.Clock.NowMs()
	}
	return 0
}

func (e *Engine) traditionalPassThrough(files []model.CodebaseFile) model.SelectionResult {
	var tokenUsage uint32
	selected := make([]model.SelectedFile, 0, len(files))
	for _, f := range files {
		tokenUsage += e.Estimator.Estimate(f.Content)
		selected = append(selected, model.SelectedFile{Path: f.Path, Content: f.Content, Force: f.Force})
	}

	return model.SelectionResult{
		SelectedFiles: selected,
		Debug: model.Debug{
			TotalCandidates: len(files),
			SelectedCount:   len(files),
			TokenUsage:      tokenUsage,
			TokenBudget:     tokenUsage,
			ScoringMethod:   model.ScoringTraditional,
			TopScores:       nil,
		},
	}
}

func buildResult(selected, allCandidates []*model.FileCandidate, budget uint32, method model.ScoringMethod, excludedCount int) model.SelectionResult {
	files := make([]model.SelectedFile, 0, len(selected))
	var tokenUsage uint32
	autoIncludes := 0
	for _, c := range selected {
		files = append(files, model.SelectedFile{Path: c.Path, Content: c.Content, Force: c.Force})
		tokenUsage += c.Tokens
		if c.IsAutoInclude {
			autoIncludes++
		}
	}

	topN := selected
	if len(topN) > 10 {
		topN = topN[:10]
	}
	topScores := make([]model.TopScoreEntry, 0, len(topN))
	for _, c := range topN {
		topScores = append(topScores, model.TopScoreEntry{Path: c.Path, Score: c.Score, Reasons: c.Reasons})
	}

	return model.SelectionResult{
		SelectedFiles: files,
		Debug: model.Debug{
			TotalCandidates:   len(allCandidates),
			SelectedCount:     len(selected),
			TokenUsage:        tokenUsage,
			TokenBudget:       budget,
			ScoringMethod:     method,
			TopScores:         topScores,
			AutoIncludesCount: autoIncludes,
			ExcludedCount:     excludedCount,
		},
	}
}
