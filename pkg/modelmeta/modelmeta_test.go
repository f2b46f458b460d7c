package modelmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxTokens_KnownModel(t *testing.T) {
	p := Provider{}
	got, ok := p.MaxTokens("claude-3-opus")
	assert.True(t, ok)
	assert.Equal(t, uint32(200000), got)
}

func TestMaxTokens_ProviderPrefixedModel(t *testing.T) {
	p := Provider{}
	got, ok := p.MaxTokens("openrouter/gpt-4o-mini")
	assert.True(t, ok)
	assert.Equal(t, uint32(128000), got)
}

func TestMaxTokens_UnknownModel(t *testing.T) {
	p := Provider{}
	_, ok := p.MaxTokens("some-unknown-model-xyz")
	assert.False(t, ok)
}

func TestMaxTokens_LongestPrefixWins(t *testing.T) {
	p := Provider{}
	got, ok := p.MaxTokens("gemini-1.5-pro")
	assert.True(t, ok)
	assert.Equal(t, uint32(1000000), got)
}
