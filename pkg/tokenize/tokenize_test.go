package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokens_LowercasesAndSplits(t *testing.T) {
	got := Tokens("Parse the UserAccount, and validate_Token!")
	assert.Equal(t, []string{"parse", "useraccount", "validate_token"}, got)
}

func TestTokens_DropsStopwords(t *testing.T) {
	got := Tokens("this is the way that it works")
	assert.Equal(t, []string{"way", "works"}, got)
}

func TestTokens_DropsShortAndLongTokens(t *testing.T) {
	long := ""
	for i := 0; i < MaxTokenLen+5; i++ {
		long += "x"
	}
	got := Tokens("ab abc " + long)
	assert.Equal(t, []string{"abc"}, got)
}

func TestTokens_EmptyInput(t *testing.T) {
	assert.Empty(t, Tokens(""))
	assert.Empty(t, Tokens("   \t\n  "))
}
