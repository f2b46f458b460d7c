package selector

import (
	"fmt"
	"math"
	"sort"

	"github.com/ternarylabs/smartctx/pkg/model"
)

// AbsoluteFloor is the minimum score a non-auto-include candidate must
// clear regardless of how low the dynamic percentile cut falls.
const AbsoluteFloor = 0.15

// MaxFiles returns the file cap for mode.
func MaxFiles(mode model.Mode) int {
	if mode == model.ModeConservative {
		return 8
	}
	return 20
}

// Percentile returns the dynamic threshold percentile for mode.
func Percentile(mode model.Mode) float64 {
	if mode == model.ModeConservative {
		return 0.85
	}
	return 0.70
}

// Budgeted runs the budgeted selection procedure: auto-includes are
// added first, in the order they appear in candidates, and never dropped
// for budget; remaining candidates are ranked by score and packed
// against tokenBudget, the mode's file cap, and a dynamic percentile
// threshold. candidates does not need to be pre-sorted; Budgeted sorts
// the non-auto-include remainder itself, breaking ties by input order
// via a stable sort.
func Budgeted(candidates []*model.FileCandidate, tokenBudget uint32, mode model.Mode) (selected []*model.FileCandidate, excludedCount int) {
	var autoIncludes, rest []*model.FileCandidate
	for _, c := range candidates {
		if c.IsAutoInclude {
			autoIncludes = append(autoIncludes, c)
		} else {
			rest = append(rest, c)
		}
	}

	var usedTokens uint32
	selected = append(selected, autoIncludes...)
	for _, c := range autoIncludes {
		usedTokens += c.Tokens
	}

	maxFiles := MaxFiles(mode)
	minScore := dynamicMinScore(rest, mode)

	sort.SliceStable(rest, func(i, j int) bool { return rest[i].Score > rest[j].Score })

	for _, c := range rest {
		if c.Score < minScore {
			c.Reasons = append(c.Reasons, fmt.Sprintf("filtered: below threshold %.3f", minScore))
			excludedCount++
			continue
		}
		if len(selected) >= maxFiles {
			break
		}
		if usedTokens+c.Tokens > tokenBudget {
			break
		}
		selected = append(selected, c)
		usedTokens += c.Tokens
	}

	return selected, excludedCount
}

// dynamicMinScore computes the percentile-based cutoff over rest's
// scores, floored at AbsoluteFloor.
func dynamicMinScore(rest []*model.FileCandidate, mode model.Mode) float64 {
	if len(rest) == 0 {
		return AbsoluteFloor
	}

	scores := make([]float64, len(rest))
	for i, c := range rest {
		scores[i] = c.Score
	}
	sort.Float64s(scores)

	pct := Percentile(mode)
	idx := int(math.Floor(float64(len(scores)) * pct))
	if idx < 0 {
		idx = 0
	}
	if idx > len(scores)-1 {
		idx = len(scores) - 1
	}

	percentileCut := scores[idx]
	return math.Max(percentileCut, AbsoluteFloor)
}
