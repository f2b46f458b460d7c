// Package query builds the scoring query string from a prompt and recent
// chat history.
package query

import (
	"strings"

	"github.com/ternarylabs/smartctx/pkg/model"
)

// Build joins promptCtx.UserPrompt with the content of the last three
// user-role messages in promptCtx.RecentMessages, preserving their source
// order. Assistant and system messages are ignored.
func Build(promptCtx model.PromptContext) string {
	var userMessages []string
	for _, m := range promptCtx.RecentMessages {
		if m.Role == "user" {
			userMessages = append(userMessages, m.Content)
		}
	}

	if len(userMessages) > 3 {
		userMessages = userMessages[len(userMessages)-3:]
	}

	parts := append([]string{promptCtx.UserPrompt}, userMessages...)
	return strings.Join(parts, " ")
}
