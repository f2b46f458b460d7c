package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_DedupesAndOrders(t *testing.T) {
	got := Extract("add a dark mode toggle toggle for theme theme")
	assert.Equal(t, []string{"add", "dark", "mode", "toggle", "theme"}, got)
}

func TestExtract_DropsStopwordsAndShortTokens(t *testing.T) {
	got := Extract("fix the login bug in my app")
	assert.Equal(t, []string{"fix", "login", "bug", "app"}, got)
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("src/components/ThemeToggle.tsx", "theme", "toggle"))
	assert.False(t, ContainsAny("src/app/page.tsx", "theme", "toggle"))
}

func TestAny(t *testing.T) {
	kws := []string{"watermark", "ternary"}
	assert.True(t, Any(kws, "watermark", "made"))
	assert.False(t, Any(kws, "dark", "light"))
}
