package scoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarylabs/smartctx/pkg/model"
)

type fakeFS struct {
	mtimes map[string]int64
}

func (f fakeFS) Stat(path string) (model.StatResult, error) {
	if m, ok := f.mtimes[path]; ok {
		return model.StatResult{MtimeMs: m}, nil
	}
	return model.StatResult{}, errors.New("stat missing")
}

func TestHeuristicScorer_PathMatchBonus(t *testing.T) {
	s := &HeuristicScorer{}
	c := &model.FileCandidate{CodebaseFile: model.CodebaseFile{Path: "src/components/ThemeToggle.tsx"}}
	s.Score(c, "add a dark mode toggle")
	assert.Contains(t, c.Reasons, `path match: "toggle" in filename`)
	assert.Greater(t, c.Score, 0.0)
}

func TestHeuristicScorer_ExtensionAffinityComponent(t *testing.T) {
	s := &HeuristicScorer{}
	c := &model.FileCandidate{CodebaseFile: model.CodebaseFile{Path: "src/Widget.tsx"}}
	s.Score(c, "write a new component")
	assert.Contains(t, c.Reasons, "extension affinity: component file")
}

func TestHeuristicScorer_TestFilePenaltyWithoutTestQuery(t *testing.T) {
	s := &HeuristicScorer{}
	c := &model.FileCandidate{CodebaseFile: model.CodebaseFile{Path: "src/widget.test.ts"}}
	s.Score(c, "add a dark mode toggle")
	assert.Contains(t, c.Reasons, "test file penalty")
	assert.Less(t, c.Score, 0.0)
}

func TestHeuristicScorer_TestFileBonusWithTestQuery(t *testing.T) {
	s := &HeuristicScorer{}
	c := &model.FileCandidate{CodebaseFile: model.CodebaseFile{Path: "src/widget.test.ts"}}
	s.Score(c, "fix the failing test")
	assert.Contains(t, c.Reasons, "test file matches test query")
}

func TestHeuristicScorer_Recency(t *testing.T) {
	now := int64(10_000_000)
	fs := fakeFS{mtimes: map[string]int64{"a.ts": now - 1000}}
	s := &HeuristicScorer{Filesystem: fs, NowMs: now}
	c := &model.FileCandidate{CodebaseFile: model.CodebaseFile{Path: "a.ts"}}
	s.Score(c, "")
	assert.Contains(t, c.Reasons, "recency: modified within 1 day")
}

func TestHeuristicScorer_AutoIncludeBoost(t *testing.T) {
	s := &HeuristicScorer{}
	c := &model.FileCandidate{CodebaseFile: model.CodebaseFile{Path: "a.ts"}, IsAutoInclude: true}
	s.Score(c, "")
	assert.Contains(t, c.Reasons, "auto-include boost")
	assert.GreaterOrEqual(t, c.Score, 10.0)
}
