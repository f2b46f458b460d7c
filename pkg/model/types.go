// Package model holds the data types and provider interfaces shared
// across the selection pipeline: candidate files, chat/prompt context,
// the selection mode, and the collaborator-supplied interfaces the engine
// depends on (file scanning, token estimation, model metadata, the clock,
// and the embedding backend).
package model

import "context"

// Mode controls the file cap and percentile threshold used by the
// budgeted selector, and whether scoring runs at all.
type Mode string

const (
	ModeOff          Mode = "off"
	ModeConservative Mode = "conservative"
	ModeBalanced     Mode = "balanced"
)

// CodebaseFile is a raw file as produced by the FileScanner provider.
type CodebaseFile struct {
	Path    string
	Content string
	// Force marks a file the upstream collaborator always wants included,
	// independent of ChatContext.SmartContextAutoIncludes.
	Force bool
}

// ChatContext carries the caller's auto-include and exclude sets. Excludes
// are applied upstream by the scanner; the engine only ever sees the
// already-filtered candidate set plus the auto-include path list.
type ChatContext struct {
	SmartContextAutoIncludes []string
	ExcludePaths             []string
}

// Message is one turn of chat history. Only Role == "user" messages feed
// the query builder.
type Message struct {
	Role    string
	Content string
}

// PromptContext is the prompt plus recent chat history the query builder
// draws on.
type PromptContext struct {
	UserPrompt     string
	RecentMessages []Message
}

// FileCandidate extends CodebaseFile with everything the scoring pipeline
// attaches as it runs: a running score, a human-readable trail of every
// additive adjustment, the auto-include flag, and an estimated token
// count. State only moves forward, RAW to PREPARED to BASE_SCORED to
// HEURISTIC_SCORED to KEYWORD_ADJUSTED to SELECTED or FILTERED, and
// Score only changes via additive contributions recorded in Reasons.
type FileCandidate struct {
	CodebaseFile
	Score         float64
	Reasons       []string
	IsAutoInclude bool
	Tokens        uint32
}

// AddReason appends delta to Score and records reason, keeping the two in
// lockstep so Reasons always explains how Score arrived where it is.
func (c *FileCandidate) AddReason(delta float64, reason string) {
	c.Score += delta
	c.Reasons = append(c.Reasons, reason)
}

// EmbeddingEntry is the payload of one embedding cache record.
type EmbeddingEntry struct {
	Vector      []float32
	ContentHash string
	MtimeMs     int64
}

// ScoringMethod identifies which base scorer ran for a select call.
type ScoringMethod string

const (
	ScoringEmbeddings  ScoringMethod = "embeddings"
	ScoringTFIDF       ScoringMethod = "tf-idf"
	ScoringTraditional ScoringMethod = "traditional"
)

// SelectedFile is one entry of a SelectionResult's final file list.
type SelectedFile struct {
	Path    string
	Content string
	Force   bool
}

// TopScoreEntry is one entry of a SelectionResult's debug top-scores list.
type TopScoreEntry struct {
	Path    string
	Score   float64
	Reasons []string
}

// Debug is the observability payload attached to every SelectionResult.
type Debug struct {
	TotalCandidates   int
	SelectedCount     int
	TokenUsage        uint32
	TokenBudget       uint32
	ScoringMethod     ScoringMethod
	TopScores         []TopScoreEntry
	AutoIncludesCount int
	ExcludedCount     int
	// CacheHits and CacheMisses report the embedding cache's cumulative
	// lookup counters since the cache was created, not just this call's.
	// A call that does not run the embedding path adds nothing to them;
	// they are 0 in a traditional (off-mode) result.
	CacheHits   int64
	CacheMisses int64
}

// SelectionResult is the output of a single select call.
type SelectionResult struct {
	SelectedFiles []SelectedFile
	Debug         Debug
}

// FileScanner produces candidate files honoring upstream include/exclude,
// auto-include, and size caps. The engine treats it as an opaque provider.
type FileScanner interface {
	Extract(ctx context.Context, appPath string, chat ChatContext) ([]CodebaseFile, error)
}

// TokenEstimator is an opaque, deterministic byte-to-token estimator.
type TokenEstimator interface {
	Estimate(text string) uint32
}

// ModelMeta resolves a model's maximum context window. A false second
// result means "unknown"; callers fall back to a fixed default.
type ModelMeta interface {
	MaxTokens(model string) (uint32, bool)
}

// Clock abstracts wall-clock time so recency scoring and cache eviction
// are testable without sleeping.
type Clock interface {
	NowMs() int64
}

// Embedder produces a fixed-dimension vector for an arbitrary text. Both
// methods may be unavailable; Available reports whether a provider is
// configured at all.
type Embedder interface {
	Available() bool
	Embed(ctx context.Context, text string) ([]float32, error)
}

// StatResult is the subset of filesystem metadata the pipeline needs.
type StatResult struct {
	MtimeMs int64
}

// Filesystem abstracts the stat call used for recency scoring and cache
// keying, so StatMissing can be simulated without touching a real disk.
type Filesystem interface {
	Stat(path string) (StatResult, error)
}
