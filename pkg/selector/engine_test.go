package selector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarylabs/smartctx/pkg/embedcache"
	"github.com/ternarylabs/smartctx/pkg/embedding"
	"github.com/ternarylabs/smartctx/pkg/model"
	"github.com/ternarylabs/smartctx/pkg/tokencount"
)

type fixedScanner struct {
	files []model.CodebaseFile
}

func (f fixedScanner) Extract(ctx context.Context, appPath string, chat model.ChatContext) ([]model.CodebaseFile, error) {
	return f.files, nil
}

type fixedClock struct{ ms int64 }

func (c fixedClock) NowMs() int64 { return c.ms }

type noFS struct{}

func (noFS) Stat(path string) (model.StatResult, error) {
	return model.StatResult{}, errNotFound
}

type errNotFoundType struct{}

func (errNotFoundType) Error() string { return "not found" }

var errNotFound = errNotFoundType{}

type workingFS struct{ mtimeMs int64 }

func (f workingFS) Stat(path string) (model.StatResult, error) {
	return model.StatResult{MtimeMs: f.mtimeMs}, nil
}

type fixedModelMeta struct {
	tokens uint32
	known  bool
}

func (f fixedModelMeta) MaxTokens(model string) (uint32, bool) { return f.tokens, f.known }

func newTestEngine() *Engine {
	return &Engine{
		Estimator:  tokencount.New(),
		ModelMeta:  fixedModelMeta{known: false},
		Filesystem: noFS{},
		Clock:      fixedClock{ms: 1000},
		Embedder:   &embedding.FakeEmbedder{Unavailable: true},
	}
}

func TestSelect_S1_BalancedSelectsThemeToggleFiles(t *testing.T) {
	e := newTestEngine()
	e.Scanner = fixedScanner{files: []model.CodebaseFile{
		{Path: "src/components/ThemeToggle.tsx", Content: "export function ThemeToggle() { return null }"},
		{Path: "src/app/globals.css", Content: ".theme { color: red }"},
		{Path: "src/components/chart/BarChart.tsx", Content: "export function BarChart() { return null }"},
		{Path: "README.md", Content: "# Project\nGeneral documentation with no relevant keywords at all."},
	}}

	result, err := e.Select(context.Background(), Options{
		Mode:   model.ModeBalanced,
		Prompt: model.PromptContext{UserPrompt: "add a dark mode toggle"},
	})
	require.NoError(t, err)

	var paths []string
	for _, f := range result.SelectedFiles {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "src/components/ThemeToggle.tsx")
	assert.Contains(t, paths, "src/app/globals.css")
	assert.NotContains(t, paths, "src/components/chart/BarChart.tsx")
	assert.Equal(t, model.ScoringTFIDF, result.Debug.ScoringMethod)
}

func TestSelect_S3_AutoIncludeBypassesLowScore(t *testing.T) {
	e := newTestEngine()
	e.Scanner = fixedScanner{files: []model.CodebaseFile{
		{Path: "config/secrets.env", Content: "SECRET=1"},
		{Path: "src/login.ts", Content: "export function login() {}"},
	}}

	result, err := e.Select(context.Background(), Options{
		Mode:   model.ModeBalanced,
		Chat:   model.ChatContext{SmartContextAutoIncludes: []string{"config/secrets.env"}},
		Prompt: model.PromptContext{UserPrompt: "fix login bug"},
	})
	require.NoError(t, err)

	var found bool
	for _, f := range result.SelectedFiles {
		if f.Path == "config/secrets.env" {
			found = true
		}
	}
	assert.True(t, found)
	assert.Equal(t, 1, result.Debug.AutoIncludesCount)
}

func TestSelect_S4_EmbeddingQueryFailureFallsBackToTFIDF(t *testing.T) {
	e := newTestEngine()
	e.Embedder = &embedding.FakeEmbedder{Dimension: 4, FailOn: "broken query"}
	e.Scanner = fixedScanner{files: []model.CodebaseFile{
		{Path: "a.ts", Content: "hello"},
	}}

	result, err := e.Select(context.Background(), Options{
		Mode:   model.ModeBalanced,
		Prompt: model.PromptContext{UserPrompt: "broken query"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ScoringTFIDF, result.Debug.ScoringMethod)
}

func TestSelect_S6_OffModePassesThroughScannerOutput(t *testing.T) {
	e := newTestEngine()
	e.Scanner = fixedScanner{files: []model.CodebaseFile{
		{Path: "a.ts", Content: "one two three"},
		{Path: "b.ts", Content: "four five six"},
		{Path: "c.ts", Content: "seven eight nine"},
	}}

	result, err := e.Select(context.Background(), Options{Mode: model.ModeOff})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Debug.SelectedCount)
	assert.Equal(t, result.Debug.TokenUsage, result.Debug.TokenBudget)
	assert.Equal(t, model.ScoringTraditional, result.Debug.ScoringMethod)
	assert.Empty(t, result.Debug.TopScores)
}

func TestSelect_EmbeddingPathReportsCacheStats(t *testing.T) {
	e := newTestEngine()
	e.Embedder = &embedding.FakeEmbedder{Dimension: 4}
	e.Filesystem = workingFS{mtimeMs: 1000}
	cache, err := embedcache.New(t.TempDir())
	require.NoError(t, err)
	e.Cache = cache
	e.Scanner = fixedScanner{files: []model.CodebaseFile{
		{Path: "a.ts", Content: "export function login() {}"},
		{Path: "b.ts", Content: "export function logout() {}"},
	}}

	opts := Options{
		Mode:   model.ModeBalanced,
		Prompt: model.PromptContext{UserPrompt: "fix login bug"},
	}

	first, err := e.Select(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, model.ScoringEmbeddings, first.Debug.ScoringMethod)
	assert.Equal(t, int64(0), first.Debug.CacheHits)
	assert.Equal(t, int64(2), first.Debug.CacheMisses)

	second, err := e.Select(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Debug.CacheHits)
	assert.Equal(t, int64(2), second.Debug.CacheMisses)
}

func TestSelect_ModeConservativeCapsAtEight(t *testing.T) {
	e := newTestEngine()
	var files []model.CodebaseFile
	for i := 0; i < 30; i++ {
		files = append(files, model.CodebaseFile{
			Path:    "file" + string(rune('a'+i)) + ".go",
			Content: "package main\nfunc parse() { return }\n",
		})
	}
	e.Scanner = fixedScanner{files: files}

	result, err := e.Select(context.Background(), Options{
		Mode:   model.ModeConservative,
		Prompt: model.PromptContext{UserPrompt: "refactor parser"},
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Debug.SelectedCount, 8)
}
