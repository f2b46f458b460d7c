package scoring

import (
	"path/filepath"
	"strings"

	"github.com/ternarylabs/smartctx/pkg/keywords"
	"github.com/ternarylabs/smartctx/pkg/model"
)

var negativeCategories = []string{"chart", "charts", "graph", "analytics", "test", "stories", "storybook"}

var themeTokens = []string{
	"theme", "toggle", "globals.css", "tailwind.config", "index.html",
	"app.css", "layout", "themetoggle", "toggle-group",
}

// KeywordAdjuster applies the second keyword pass: watermark/theme topic
// boosts, negative-category penalties, and a final keyword-hint
// adjustment driven by both path and file content.
type KeywordAdjuster struct{}

// Adjust applies every rule that fires to c, using query's keyword set.
func (KeywordAdjuster) Adjust(c *model.FileCandidate, query string) {
	kws := keywords.Extract(query)
	base := strings.ToLower(filepath.Base(c.Path))
	path := strings.ToLower(c.Path)
	content := strings.ToLower(c.Content)

	if keywords.Any(kws, "watermark", "ternary", "made") &&
		(strings.Contains(base, "made-with-ternary") || strings.Contains(base, "watermark") || strings.Contains(content, "made with ternary")) {
		c.AddReason(2.0, "watermark topic match")
	}

	if keywords.Any(kws, "theme", "toggle", "dark", "light") && keywords.ContainsAny(path, themeTokens...) {
		c.AddReason(1.5, "theme/toggle topic match")
	}

	for _, neg := range negativeCategories {
		if !strings.Contains(path, neg) {
			continue
		}
		if keywords.Any(kws, neg) {
			continue
		}
		if anyKeywordMatches(kws, path, content) {
			continue
		}
		c.AddReason(-5.0, "negative category: "+neg)
		break
	}

	if anyKeywordMatches(kws, path, content) {
		c.AddReason(0.5, "keyword hint: match")
	} else {
		c.AddReason(-0.5, "keyword hint: no match")
	}
}

func anyKeywordMatches(kws []string, path, content string) bool {
	for _, kw := range kws {
		if strings.Contains(path, kw) || strings.Contains(content, kw) {
			return true
		}
	}
	return false
}
