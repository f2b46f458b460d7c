package scoring

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ternarylabs/smartctx/pkg/keywords"
	"github.com/ternarylabs/smartctx/pkg/model"
)

var configBasenames = map[string]bool{
	"package.json":  true,
	"tsconfig.json": true,
	".env":          true,
}

// HeuristicScorer applies the additive path/extension/config/test/
// recency/auto-include adjustments on top of whatever base score a
// candidate already carries.
type HeuristicScorer struct {
	Filesystem model.Filesystem
	NowMs      int64
}

// Score applies every adjustment that fires to c, recording a reason for
// each. Order does not affect the outcome; every contribution is an
// independent additive term.
func (s *HeuristicScorer) Score(c *model.FileCandidate, query string) {
	kws := keywords.Extract(query)
	base := strings.ToLower(filepath.Base(c.Path))
	parent := strings.ToLower(filepath.Dir(c.Path))
	ext := strings.ToLower(filepath.Ext(c.Path))

	for _, kw := range kws {
		if strings.Contains(base, kw) {
			c.AddReason(0.8, fmt.Sprintf("path match: %q in filename", kw))
		}
		if strings.Contains(parent, kw) {
			c.AddReason(0.4, fmt.Sprintf("path match: %q in parent path", kw))
		}
	}

	if (ext == ".tsx" || ext == ".jsx") && keywords.ContainsAny(query, "component") {
		c.AddReason(0.6, "extension affinity: component file")
	}
	if (ext == ".ts" || ext == ".js") && keywords.ContainsAny(query, "function") {
		c.AddReason(0.4, "extension affinity: function file")
	}
	if ext == ".css" && keywords.ContainsAny(query, "style") {
		c.AddReason(0.6, "extension affinity: style file")
	}

	if configBasenames[base] && keywords.ContainsAny(query, "config", "setup") {
		c.AddReason(0.7, "config file match")
	}

	isTestFile := strings.Contains(base, "test") || strings.Contains(base, "spec")
	if isTestFile {
		if keywords.ContainsAny(query, "test") {
			c.AddReason(0.5, "test file matches test query")
		} else {
			c.AddReason(-0.3, "test file penalty")
		}
	}

	if s.Filesystem != nil {
		if st, err := s.Filesystem.Stat(c.Path); err == nil {
			ageMs := s.NowMs - st.MtimeMs
			switch {
			case ageMs < dayMs:
				c.AddReason(0.5, "recency: modified within 1 day")
			case ageMs < 7*dayMs:
				c.AddReason(0.3, "recency: modified within 7 days")
			case ageMs < 30*dayMs:
				c.AddReason(0.1, "recency: modified within 30 days")
			}
		}
	}

	if c.IsAutoInclude {
		c.AddReason(10.0, "auto-include boost")
	}
}

const dayMs = 24 * 60 * 60 * 1000
