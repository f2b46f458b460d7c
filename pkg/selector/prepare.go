// Package selector implements the candidate preparer, the budgeted
// selector, and the engine that orchestrates the full pipeline behind
// the single select operation.
package selector

import (
	"path/filepath"

	"github.com/ternarylabs/smartctx/pkg/model"
)

// PrepareCandidates converts raw scanner output into scored candidates:
// each gets an estimated token count, an auto-include flag derived from
// CodebaseFile.Force or membership in chat's auto-include set, and a
// zeroed score with no reasons yet.
func PrepareCandidates(files []model.CodebaseFile, chat model.ChatContext, estimator model.TokenEstimator) []*model.FileCandidate {
	autoIncludes := make(map[string]bool, len(chat.SmartContextAutoIncludes))
	for _, p := range chat.SmartContextAutoIncludes {
		autoIncludes[filepath.ToSlash(p)] = true
	}

	candidates := make([]*model.FileCandidate, 0, len(files))
	for _, f := range files {
		candidates = append(candidates, &model.FileCandidate{
			CodebaseFile:  f,
			Tokens:        estimator.Estimate(f.Content),
			IsAutoInclude: f.Force || autoIncludes[filepath.ToSlash(f.Path)],
		})
	}
	return candidates
}
